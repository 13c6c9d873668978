// Package sqlstore implements the identity store and context repository on
// top of GORM for PostgreSQL, MySQL and SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"authsvc/config"
	"authsvc/internal/domain/lifecycle"
	"authsvc/internal/errors"
	"authsvc/internal/infra/persistence/migrations"

	"github.com/sethvargo/go-retry"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
	connectRetryBase            = 200 * time.Millisecond

	sqliteInMemory = ":memory:"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured SQL database, retrying transient connect failures,
// and registers migrations and pool monitoring on the lifecycle.
func New(params Params) (*gorm.DB, error) {
	cfg := params.Config

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancelConnect()

	db, err := connect(connectCtx, cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{
		// Every write is a single statement.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, cfg),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	if cfg.Store.Driver == config.DriverSQLite && cfg.Store.SQLite.Path == sqliteInMemory {
		// Each new connection to :memory: would see an empty database.
		sqlDB.SetMaxOpenConns(1)
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", cfg.Store.Driver)
			}

			if cfg.Store.Migrate {
				if _, err := migrations.Up(ctx, sqlDB, cfg.Store.Driver, params.Logger); err != nil {
					return errors.Wrap(err, "failed to migrate schema")
				}
			}

			go monitorDBPool(monitorCtx, params.Logger, cfg.Store.Driver, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// connect opens the dialect, backing off exponentially between attempts.
// gorm.Open pings the server, so a refused connection surfaces here.
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
	default:
		return nil, errors.Errorf("store driver %q has no SQL dialect", cfg.Store.Driver)
	}

	retries := 0
	if cfg.Store.ConnectRetries != nil {
		retries = max(*cfg.Store.ConnectRetries, 0)
	}
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewExponential(connectRetryBase))

	var db *gorm.DB
	attempt := 0
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		attempt++

		opened, err := openDialect(cfg)
		if err != nil {
			logger.Warn("Store connection failed",
				slog.String("driver", cfg.Store.Driver),
				slog.Int("attempt", attempt),
				slog.Any("error", err),
			)

			return retry.RetryableError(err)
		}
		db = opened

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", cfg.Store.Driver)
	}

	return db, nil
}

func openDialect(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
		db.TranslateError = true

		return db, nil
	case config.DriverMySQL:
		db, err := gorm.Open(mysql.Open(cfg.Store.MySQL.DSN), &gorm.Config{TranslateError: true})

		return db, errors.Wrap(err, "failed to open MySQL")
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Store.SQLite.Path), &gorm.Config{TranslateError: true})

		return db, errors.Wrap(err, "failed to open SQLite")
	default:
		return nil, errors.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, driver string, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration
			prev = cur

			if waitDelta <= 0 {
				continue
			}

			level := slog.LevelDebug
			if waitDurationDelta >= dbPoolWarnDurationThreshold {
				level = slog.LevelWarn
			}
			logger.LogAttrs(ctx, level, "Store pool wait",
				slog.String("driver", driver),
				slog.Int64("waitCountDelta", waitDelta),
				slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
				slog.Int("maxOpenConns", cur.MaxOpenConnections),
				slog.Int("inUseConns", cur.InUse),
				slog.Int("idleConns", cur.Idle),
			)
		}
	}
}
