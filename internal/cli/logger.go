package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", levelStr)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	switch strings.ToLower(formatStr) {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", formatStr)
	}

	return slog.New(handler), nil
}
