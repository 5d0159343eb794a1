// Package logging provides component-scoped logrus loggers for sheetdash.
//
// The terminal UI owns stdout/stderr while it runs, so log output goes to a
// file by default and reaches stderr only for non-interactive commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "SHEETDASH_LOG_LEVEL"

// Config controls where and how log entries are written.
type Config struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	Level string `toml:"level"`
	// File is the log file path; "~" is expanded. Empty disables the file sink.
	File string `toml:"file"`
	// Format is "json" (default) or "text".
	Format string `toml:"format"`
	// Stderr is "auto" (default), "always" or "never".
	Stderr string `toml:"stderr"`
	// Interactive suppresses stderr entirely; set while a full-screen UI runs.
	Interactive bool `toml:"-"`
}

var (
	mu      sync.Mutex
	base    = newBase()
	loggers = make(map[string]*logrus.Entry)
	closer  io.Closer
)

func newBase() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

// NewLogger returns the logger for a component. Loggers are cached per
// component and share one underlying logrus.Logger, so Setup applies to
// loggers created before it ran.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Setup configures the shared logger. It returns the resolved log file path
// (empty when no file sink is active).
func Setup(cfg Config) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	levelStr := "info"
	if env := strings.TrimSpace(os.Getenv(LevelEnv)); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "text":
		base.SetFormatter(&TextFormatter{})
	default:
		base.SetFormatter(&logrus.JSONFormatter{})
	}

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}

	var writers []io.Writer
	var path string
	if strings.TrimSpace(cfg.File) != "" {
		path = expandPath(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return "", fmt.Errorf("open log file: %w", err)
		}
		closer = file
		writers = append(writers, file)
	}

	if wantStderr(cfg, level) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		base.SetOutput(io.Discard)
	case 1:
		base.SetOutput(writers[0])
	default:
		base.SetOutput(io.MultiWriter(writers...))
	}
	return path, nil
}

// SetOutput redirects all component loggers, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// SetLevel changes the level of all component loggers.
func SetLevel(level logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	base.SetLevel(level)
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	base.SetOutput(io.Discard)
	return err
}

func wantStderr(cfg Config, level logrus.Level) bool {
	if cfg.Interactive {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Stderr)) {
	case "always":
		return true
	case "never":
		return false
	}
	// auto: only when debugging or when stderr is not a terminal
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return level >= logrus.DebugLevel || !interactive
}

func expandPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
		}
	}
	return trimmed
}
