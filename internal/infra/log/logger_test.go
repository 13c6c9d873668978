package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"authsvc/config"
	"authsvc/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_JSONWithServiceAttr(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "authsvc"
	cfg.Env.Log.Level = "info"

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "authsvc", line["service"])
}

func TestNewLogger_RedactsCredentialHash(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Pretty = true

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	logger.Info("stored", slog.Any("credential", &entity.Credential{
		ID:           "AbC123_-xY",
		Email:        "ana@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}))

	out := buf.String()
	assert.Contains(t, out, "ana@x.com")
	assert.Contains(t, out, entity.RedactedMarker)
	assert.NotContains(t, out, "$2a$10$")
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "loud"

	_, err := newLogger(cfg, &bytes.Buffer{})
	require.Error(t, err)
}
