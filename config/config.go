package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	domainerrors "authsvc/internal/domain/errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultBcryptCost         = 10
	defaultTokenTTL           = 2 * time.Hour
	defaultQueryTimeout       = 5 * time.Second
	defaultConnectRetries     = 3
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Env  EnvConfig  `json:"env" yaml:"env"`
	HTTP HTTPConfig `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Store *StoreConfig `json:"store" yaml:"store"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type EnvConfig struct {
	Env         string `json:"env" yaml:"env"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Debug       bool   `json:"debug" yaml:"debug"`
	Log         Log    `json:"log" yaml:"log"`
}

type HTTPConfig struct {
	Port               int    `json:"port" yaml:"port"`
	MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	Timeouts           struct {
		ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	} `json:"timeouts" yaml:"timeouts"`
}

// SecretKeyConfig holds the HS256 signing secret.
type SecretKeyConfig struct {
	Access string `json:"access" yaml:"access"`
}

// AuthConfig defines password hashing and token settings.
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

// StoreConfig selects the identity store adapter.
type StoreConfig struct {
	Driver         string        `json:"driver" yaml:"driver"`
	Migrate        bool          `json:"migrate" yaml:"migrate"`
	QueryTimeout   time.Duration `json:"queryTimeout" yaml:"queryTimeout"`
	ConnectRetries *int          `json:"connectRetries" yaml:"connectRetries"` // nil means the default; 0 disables retries.
	MySQL          MySQLConfig   `json:"mysql" yaml:"mysql"`
	SQLite         SQLiteConfig  `json:"sqlite" yaml:"sqlite"`
}

type MySQLConfig struct {
	DSN string `json:"dsn" yaml:"dsn"`
}

type SQLiteConfig struct {
	// Path to the database file, or ":memory:".
	Path string `json:"path" yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// SECRETKEY_ACCESS -> secretKey.access, following the casing of keys already in the YAML.
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Store.Driver == DriverPostgres && cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills unset sections.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverPostgres
	}
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	if c.Store.QueryTimeout == 0 {
		c.Store.QueryTimeout = defaultQueryTimeout
	}
	if c.Store.ConnectRetries == nil {
		retries := defaultConnectRetries
		c.Store.ConnectRetries = &retries
	}

	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
}

// Validate reports a ConfigError for settings the service cannot start with.
// Call ApplyDefaults first.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey.Access) == "" {
		return domainerrors.ErrConfigInvalid.WithDetails("secretKey.access").WrapMessage("signing secret must be provided")
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return domainerrors.ErrConfigInvalid.WithDetails("auth.bcryptCost").WrapMessage(
			"bcrypt cost must be between " + strconv.Itoa(bcrypt.MinCost) + " and " + strconv.Itoa(bcrypt.MaxCost))
	}

	if c.Store.ConnectRetries != nil && *c.Store.ConnectRetries < 0 {
		return domainerrors.ErrConfigInvalid.WithDetails("store.connectRetries").WrapMessage("connect retries must not be negative")
	}

	if c.Auth.TokenTTL < 0 {
		return domainerrors.ErrConfigInvalid.WithDetails("auth.tokenTTL").WrapMessage("token ttl must be positive")
	}

	switch c.Store.Driver {
	case DriverPostgres:
		if c.Postgres == nil {
			return domainerrors.ErrConfigInvalid.WithDetails("postgres").WrapMessage("postgres driver selected without postgres section")
		}
	case DriverMySQL:
		if c.Store.MySQL.DSN == "" {
			return domainerrors.ErrConfigInvalid.WithDetails("store.mysql.dsn").WrapMessage("mysql driver selected without dsn")
		}
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			return domainerrors.ErrConfigInvalid.WithDetails("store.sqlite.path").WrapMessage("sqlite driver selected without path")
		}
	case DriverMemory:
	default:
		return domainerrors.ErrConfigInvalid.WithDetails("store.driver").WrapMessage("unknown store driver " + c.Store.Driver)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}
// until the first index without host or port.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
