// Package log configures the application-wide slog logger: a text handler
// on stderr, plus an optional rotating JSON file log for debugging viewer
// sessions after the fact.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	Level string // debug, info, warn, error
	File  string // optional rotated file log path
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// L returns the application logger, initializing with defaults on first
// use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(Options{})
	return L()
}

// Init configures the application logger and slog's default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)

	var w io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		w = io.MultiWriter(os.Stderr, &lj.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))

	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

// WithComponent returns the application logger tagged with a component
// name.
func WithComponent(name string) *slog.Logger {
	return L().With(slog.String("component", name))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
