package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLEmailColumnIsCaseSensitive(t *testing.T) {
	content, err := fs.ReadFile(files, "mysql/00001_create_users.sql")
	require.NoError(t, err)

	var emailColumn string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "email ") {
			emailColumn = line
		}
	}

	require.NotEmpty(t, emailColumn)
	// A binary collation keeps both the unique index and lookups case-sensitive.
	assert.Contains(t, emailColumn, "COLLATE utf8mb4_bin")
	assert.Contains(t, emailColumn, "UNIQUE")
}

func TestEveryDialectHasTheSameMigrations(t *testing.T) {
	var want []string
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		entries, err := fs.ReadDir(files, dirs[driver])
		require.NoError(t, err)

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}

		if want == nil {
			want = names

			continue
		}
		assert.Equal(t, want, names, driver)
	}
}

func TestUp_UnknownDriver(t *testing.T) {
	_, err := Up(context.Background(), (*sql.DB)(nil), "oracle", slog.New(slog.DiscardHandler))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no migrations")
}
