package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/alkime/vaultlaunch/internal/config"
	"github.com/alkime/vaultlaunch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		cfg  config.Config
		want slog.Level
	}{
		{cfg: config.Config{Env: "production", LogLevel: "info"}, want: slog.LevelInfo},
		{cfg: config.Config{Env: "production", LogLevel: "debug"}, want: slog.LevelDebug},
		{cfg: config.Config{Env: "production", LogLevel: "WARN"}, want: slog.LevelWarn},
		{cfg: config.Config{Env: "production", LogLevel: "loud"}, want: slog.LevelInfo},
		{cfg: config.Config{Env: "development", LogLevel: "error"}, want: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Env+"/"+tt.cfg.LogLevel, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(&tt.cfg))
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l := logger.SetupLogger(&config.Config{LogLevel: "info", LogFormat: "json"}, &buf)

		l.Info("Launch failed", "editor", "zed")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Launch failed", entry["msg"])
		assert.Equal(t, "zed", entry["editor"])
	})

	t.Run("text is the default and becomes slog.Default", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetupLogger(&config.Config{LogLevel: "info"}, &buf)

		slog.Debug("hidden")
		slog.Info("shown", "attempt", 2)

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown attempt=2")
	})
}
