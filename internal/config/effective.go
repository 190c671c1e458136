package config

import (
	"fmt"
	"path/filepath"
)

type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig and validates the result.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.StoreKey != nil {
		cfg.StoreKey = *raw.StoreKey
	}
	if raw.File != nil {
		cfg.File = *raw.File
	}
	if raw.Path != nil {
		cfg.Path = expandHome(*raw.Path)
	}
	if raw.DefaultWidth != nil {
		cfg.DefaultWidth = *raw.DefaultWidth
	}
	if raw.DefaultHeight != nil {
		cfg.DefaultHeight = *raw.DefaultHeight
	}
	if raw.Maximize != nil {
		cfg.Maximize = *raw.Maximize
	}
	if raw.FullScreen != nil {
		cfg.FullScreen = *raw.FullScreen
	}
	if raw.DebounceMS != nil {
		cfg.DebounceMS = *raw.DebounceMS
	}
	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.Database != nil {
		cfg.Database = expandHome(*raw.Database)
	} else if raw.Path != nil {
		cfg.Database = filepath.Join(cfg.Path, defaultDatabaseName)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
