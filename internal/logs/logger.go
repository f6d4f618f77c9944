// Package logs builds the slog loggers shared by both binaries.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// EnvLevel names the environment variable holding the default log level.
const EnvLevel = "RELSTAMP_LOG_LEVEL"

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn or error. Empty falls back to EnvLevel, then warn.
	Level string
	// Terminal receives human-readable records. Nil disables terminal output.
	Terminal io.Writer
	// FilePath receives JSON records when set.
	FilePath string
}

// New returns a logger fanning out to the configured sinks and a closer for the log file.
func New(options Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOptions := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if options.Terminal != nil {
		handlers = append(handlers, slog.NewTextHandler(options.Terminal, handlerOptions))
	}

	closer := func() error { return nil }
	if options.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(options.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(options.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions))
		closer = file.Close
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		name = os.Getenv(EnvLevel)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}
