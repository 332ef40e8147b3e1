package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg, os.Getenv("HOOKROUTE_LOG_LEVEL"))
}

func newLogger(w io.Writer, cfg *config.RuntimeConfig, levelName string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(levelName),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	// Keep stderr machine readable when stdout carries JSON output
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps a level name to a slog level, unknown values keep info
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	// Try to make paths relative to project root
	if idx := strings.Index(file, "hookroute/"); idx != -1 {
		return file[idx+len("hookroute/"):]
	}
	// Otherwise, relative to this module's checkout
	_, f, _, _ := runtime.Caller(0)
	if idx := strings.LastIndex(f, "/internal/logging/"); idx != -1 {
		if idx2 := strings.Index(file, f[:idx]); idx2 != -1 {
			return strings.TrimPrefix(file[idx2+idx:], "/")
		}
	}
	// Last resort: just the filename
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
