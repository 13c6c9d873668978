// Package migrations embeds the schema for every supported SQL dialect and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"

	"authsvc/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql sqlite3/*.sql
var files embed.FS

var dialects = map[string]goose.Dialect{
	"postgres": goose.DialectPostgres,
	"mysql":    goose.DialectMySQL,
	"sqlite":   goose.DialectSQLite3,
}

var dirs = map[string]string{
	"postgres": "postgres",
	"mysql":    "mysql",
	"sqlite":   "sqlite3",
}

// Up applies all pending migrations for driver and returns how many ran.
func Up(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) (int, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return 0, errors.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(files, dirs[driver])
	if err != nil {
		return 0, errors.Wrap(err, "open embedded migrations")
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, errors.Wrap(err, "create migration provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "apply migrations")
	}

	for _, result := range results {
		logger.LogAttrs(ctx, slog.LevelInfo, "Migration applied",
			slog.String("driver", driver),
			slog.Int64("version", result.Source.Version),
			slog.Duration("duration", result.Duration),
		)
	}

	return len(results), nil
}
