package sqlstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"authsvc/config"
	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var record map[string]any
		require.NoError(t, dec.Decode(&record))
		records = append(records, record)
	}

	return records
}

func TestGormSlogLogger_ParamsFilterDropsValues(t *testing.T) {
	l := newGormSlogLogger(slog.New(slog.DiscardHandler), &config.Config{}).(*gormSlogLogger)

	sql, params := l.ParamsFilter(context.Background(), "INSERT INTO users VALUES (?,?)", "id", "$2a$10$hash")
	assert.Equal(t, "INSERT INTO users VALUES (?,?)", sql)
	assert.Nil(t, params)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT * FROM users WHERE email = ?", 1 }

	t.Run("error is logged", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{})

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "ERROR", records[0]["level"])
		assert.Equal(t, "boom", records[0]["error"])
		assert.Equal(t, "SELECT * FROM users WHERE email = ?", records[0]["sql"])
	})

	t.Run("record not found is silent", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{})

		l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query warns", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{})

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		records := decodeLines(t, &buf)
		require.Len(t, records, 1)
		assert.Equal(t, "WARN", records[0]["level"])
	})

	t.Run("silent mode", func(t *testing.T) {
		var buf bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), &config.Config{}).LogMode(logger.Silent)

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

		assert.Empty(t, buf.String())
	})

	t.Run("uses request logger", func(t *testing.T) {
		var base, scoped bytes.Buffer
		l := newGormSlogLogger(slog.New(slog.NewJSONHandler(&base, nil)), &config.Config{})

		reqLogger := slog.New(slog.NewJSONHandler(&scoped, nil)).With(slog.String("request_id", "req-1"))
		ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

		l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

		assert.Empty(t, base.String())
		records := decodeLines(t, &scoped)
		require.Len(t, records, 1)
		assert.Equal(t, "req-1", records[0]["request_id"])
	})
}
