package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alkime/vaultlaunch/internal/config"
)

// Level determines the log level from the environment and LOG_LEVEL.
// Development always logs at debug.
func Level(cfg *config.Config) slog.Level {
	if cfg.IsDevelopment() {
		return slog.LevelDebug
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// SetupLogger configures structured logging to w and sets it as the default.
// LOG_FORMAT "json" selects the JSON handler; anything else is text.
func SetupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	opts := &slog.HandlerOptions{
		Level: Level(cfg),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
