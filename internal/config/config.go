package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/1broseidon/winstate/internal/statedir"
	"github.com/1broseidon/winstate/internal/store"
	"github.com/1broseidon/winstate/internal/winstate"
)

// Backend selects where window state is persisted.
type Backend string

const (
	BackendFile   Backend = "file"   // JSON file at path/file.
	BackendSQLite Backend = "sqlite" // Key-value row in a SQLite database.
)

const (
	defaultDatabaseName = "state.db"
	DefaultDebounceMS   = 100
)

// Config is the effective winstate configuration.
type Config struct {
	// StoreKey is the key used by key-value backends.
	StoreKey string `yaml:"store_key"`
	// File is the state file name used by the file backend.
	File string `yaml:"file"`
	// Path is the directory holding the state file.
	Path          string `yaml:"path"`
	DefaultWidth  int    `yaml:"default_width"`
	DefaultHeight int    `yaml:"default_height"`
	// Maximize restores a remembered maximized window on manage.
	Maximize bool `yaml:"maximize"`
	// FullScreen restores a remembered fullscreen window on manage.
	FullScreen bool    `yaml:"full_screen"`
	DebounceMS int     `yaml:"debounce_ms"`
	Backend    Backend `yaml:"backend"`
	Database   string  `yaml:"database,omitempty"`
	LogLevel   string  `yaml:"log_level"`
	// Display overrides $DISPLAY for the X11 connection.
	Display string `yaml:"display,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	dir, err := statedir.Dir()
	if err != nil {
		dir = "."
	}
	return &Config{
		StoreKey:      winstate.DefaultStoreKey,
		File:          winstate.DefaultFileName,
		Path:          dir,
		DefaultWidth:  winstate.DefaultWidth,
		DefaultHeight: winstate.DefaultHeight,
		Maximize:      true,
		FullScreen:    true,
		DebounceMS:    DefaultDebounceMS,
		Backend:       BackendFile,
		Database:      filepath.Join(dir, defaultDatabaseName),
		LogLevel:      "info",
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if strings.TrimSpace(c.File) == "" {
			return &ValidationError{Path: "file", Err: fmt.Errorf("file is required for the file backend")}
		}
		if c.File != filepath.Base(c.File) {
			return &ValidationError{Path: "file", Err: fmt.Errorf("file must be a bare file name, got %q", c.File)}
		}
		if strings.TrimSpace(c.Path) == "" {
			return &ValidationError{Path: "path", Err: fmt.Errorf("path is required for the file backend")}
		}
	case BackendSQLite:
		if strings.TrimSpace(c.StoreKey) == "" {
			return &ValidationError{Path: "store_key", Err: fmt.Errorf("store_key is required for the sqlite backend")}
		}
		if strings.TrimSpace(c.Database) == "" {
			return &ValidationError{Path: "database", Err: fmt.Errorf("database is required for the sqlite backend")}
		}
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: file, sqlite")}
	}
	if c.DefaultWidth <= 0 {
		return &ValidationError{Path: "default_width", Err: fmt.Errorf("default_width must be > 0")}
	}
	if c.DefaultHeight <= 0 {
		return &ValidationError{Path: "default_height", Err: fmt.Errorf("default_height must be > 0")}
	}
	if c.DebounceMS <= 0 {
		return &ValidationError{Path: "debounce_ms", Err: fmt.Errorf("debounce_ms must be > 0")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}

// Debounce returns the resize/move quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// DefaultSize returns the configured fallback window size.
func (c *Config) DefaultSize() winstate.Size {
	return winstate.Size{Width: c.DefaultWidth, Height: c.DefaultHeight}
}

// SlogLevel converts LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// OpenPersister builds the persister for the configured backend. The returned
// closer releases backend resources and is never nil.
func (c *Config) OpenPersister() (winstate.Persister, io.Closer, error) {
	switch c.Backend {
	case BackendSQLite:
		s, err := store.NewSQLiteStore(c.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state database: %w", err)
		}
		return winstate.NewStorePersister(s, c.StoreKey), s, nil
	default:
		return winstate.NewFilePersister(c.Path, c.File), nopCloser{}, nil
	}
}

// ControllerOptions maps the config onto controller options. The caller
// supplies the collaborators.
func (c *Config) ControllerOptions(p winstate.Persister, displays winstate.DisplayLister, logger *slog.Logger) winstate.Options {
	return winstate.Options{
		DefaultSize:   c.DefaultSize(),
		Maximize:      c.Maximize,
		FullScreen:    c.FullScreen,
		DebounceDelay: c.Debounce(),
		Persister:     p,
		Displays:      displays,
		Logger:        logger,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
