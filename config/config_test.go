package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domainerrors "authsvc/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: authsvc
  log:
    level: debug
http:
  port: 8080
  timeouts:
    readTimeout: 10s
secretKey:
  access: from-yaml
auth:
  bcryptCost: 11
store:
  driver: sqlite
  sqlite:
    path: ":memory:"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := writeConfig(t, "authsvc-test", testYAML)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("STORE_QUERYTIMEOUT", "750ms")

	cfg, err := LoadWithEnv[Config]("authsvc-test", dir)
	require.NoError(t, err)

	assert.Equal(t, "authsvc", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 11, cfg.Auth.BcryptCost)
	require.NotNil(t, cfg.Store)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.SQLite.Path)
	assert.Equal(t, 750*time.Millisecond, cfg.Store.QueryTimeout)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.QueryTimeout)
	require.NotNil(t, cfg.Store.ConnectRetries)
	assert.Equal(t, 3, *cfg.Store.ConnectRetries)
	assert.NotNil(t, cfg.Metrics)
}

func TestApplyDefaults_KeepsExplicitZeroRetries(t *testing.T) {
	dir := writeConfig(t, "authsvc-retries", testYAML+"  connectRetries: 0\n")

	cfg, err := LoadWithEnv[Config]("authsvc-retries", dir)
	require.NoError(t, err)
	cfg.ApplyDefaults()

	require.NotNil(t, cfg.Store.ConnectRetries)
	assert.Equal(t, 0, *cfg.Store.ConnectRetries)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			SecretKey: SecretKeyConfig{Access: "secret"},
			Store:     &StoreConfig{Driver: DriverMemory},
		}
		cfg.ApplyDefaults()

		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SecretKey.Access = "  " }, field: "secretKey.access"},
		{name: "cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 2 }, field: "auth.bcryptCost"},
		{name: "cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = 32 }, field: "auth.bcryptCost"},
		{name: "negative ttl", mutate: func(c *Config) { c.Auth.TokenTTL = -time.Minute }, field: "auth.tokenTTL"},
		{name: "negative retries", mutate: func(c *Config) { *c.Store.ConnectRetries = -1 }, field: "store.connectRetries"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "oracle" }, field: "store.driver"},
		{name: "postgres without section", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, field: "postgres"},
		{name: "mysql without dsn", mutate: func(c *Config) { c.Store.Driver = DriverMySQL }, field: "store.mysql.dsn"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Store.Driver = DriverSQLite }, field: "store.sqlite.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrConfigInvalid))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "CONFIG_INVALID", appErr.ErrorCode())
			assert.Equal(t, tt.field, appErr.Details())
		})
	}
}
