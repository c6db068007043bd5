package game

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lingotrail/internal/config"
)

// NewLogger builds a slog.Logger from the log configuration and sets it as
// the default. The terminal owns stdout while the game runs, so the sink
// defaults to game.log inside the data directory; an unwritable log file
// degrades to discarding, never to crashing the game.
func NewLogger(cfg config.LogConfig, dataDir string) *slog.Logger {
	path := cfg.File
	if path == "" {
		path = filepath.Join(dataDir, "game.log")
	}

	var out io.Writer = io.Discard
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
