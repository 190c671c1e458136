package config

// RawConfig mirrors the YAML file. Pointer fields distinguish "unset" from a
// zero value so that only keys present in the file override defaults.
type RawConfig struct {
	StoreKey      *string  `yaml:"store_key"`
	File          *string  `yaml:"file"`
	Path          *string  `yaml:"path"`
	DefaultWidth  *int     `yaml:"default_width"`
	DefaultHeight *int     `yaml:"default_height"`
	Maximize      *bool    `yaml:"maximize"`
	FullScreen    *bool    `yaml:"full_screen"`
	DebounceMS    *int     `yaml:"debounce_ms"`
	Backend       *Backend `yaml:"backend"`
	Database      *string  `yaml:"database"`
	LogLevel      *string  `yaml:"log_level"`
	Display       *string  `yaml:"display"`
}
