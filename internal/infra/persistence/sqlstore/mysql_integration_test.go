//go:build integration

package sqlstore

import (
	"context"
	"log/slog"
	"testing"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/infra/persistence/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMySQLDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	mysqlContainer, err := mysql.Run(ctx,
		"mysql:8.0",
		mysql.WithDatabase("authsvc"),
		mysql.WithUsername("authsvc"),
		mysql.WithPassword("authsvc"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlContainer.Terminate(ctx) })

	dsn, err := mysqlContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrations.Up(ctx, sqlDB, config.DriverMySQL, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return db
}

func TestMySQLIdentityStore_EmailIsCaseSensitive(t *testing.T) {
	store := NewIdentityStore(newMySQLDB(t), testConfig())
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleCredential("V1StGXR8_Z", "ana@x.com")))
	require.NoError(t, store.Insert(ctx, sampleCredential("Uakgb_J5m9", "Ana@x.com")))

	_, err := store.FindByEmail(ctx, "ANA@X.COM")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	found, err := store.FindByEmail(ctx, "Ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Uakgb_J5m9", found.ID)

	err = store.Insert(ctx, sampleCredential("xZ3_k9Lm2Q", "ana@x.com"))
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateIdentity)
}
