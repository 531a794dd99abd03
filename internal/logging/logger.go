// Package logging provides component loggers for the dashboard.
//
// The terminal belongs to the TUI, so log output goes to a file (or is
// discarded) rather than stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config controls where and how loudly the dashboard logs.
type Config struct {
	Level  string // logrus level name, default "info"
	File   string // empty = discard
	Format string // "text" (default) or "json"
}

var (
	base      = newBase()
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// NewLogger returns the shared logger for component. Loggers are created
// once per component and all share the output configured by Configure.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies cfg to every component logger and returns a cleanup
// function closing the log file.
func Configure(cfg Config) (func(), error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return func() {}, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	base.SetLevel(level)

	switch cfg.Format {
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		base.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if cfg.File == "" {
		base.SetOutput(io.Discard)
		return func() {}, nil
	}

	path := expandPath(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}, fmt.Errorf("logging: open log file: %w", err)
	}
	base.SetOutput(f)

	return func() {
		base.SetOutput(io.Discard)
		_ = f.Close()
	}, nil
}

// DefaultFile returns ~/.local/state/syncflow/syncflow.log.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "syncflow.log")
	}
	return filepath.Join(home, ".local", "state", "syncflow", "syncflow.log")
}

func expandPath(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
