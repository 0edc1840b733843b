package config

import (
	"fmt"
	"strings"
)

// UIConfig holds user-interface settings.
type UIConfig struct {
	Theme string `json:"theme"`
}

// DatasetConfig says where the state boundaries come from.
type DatasetConfig struct {
	// Source is a file path or an http(s) URL serving a GeoJSON
	// FeatureCollection.
	Source          string `json:"source"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
}

// WebConfig holds settings for the browser mirror.
type WebConfig struct {
	Port        int  `json:"port"`
	OpenBrowser bool `json:"open_browser"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `json:"level"`
	ToConsole  bool   `json:"to_console"`
	RotationMB int    `json:"rotation_mb"`
}

// Config is the top-level configuration for indiamap.
// Stored as config.json inside the indiamap home directory.
type Config struct {
	UI      UIConfig      `json:"ui"`
	Dataset DatasetConfig `json:"dataset"`
	Web     WebConfig     `json:"web"`
	Logging LoggingConfig `json:"logging"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme: "light",
		},
		Dataset: DatasetConfig{
			Source:          "india_states_simplified.geojson",
			CacheTTLMinutes: 60,
			TimeoutSeconds:  30,
		},
		Web: WebConfig{
			Port:        8742,
			OpenBrowser: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			// The terminal viewer owns the screen; mirroring to stderr would
			// corrupt it.
			ToConsole:  false,
			RotationMB: 10,
		},
	}
}

// Load reads a config from the JSON file at path and merges it with defaults
// so that any missing fields receive their default values. If the file does
// not exist, a fully-default Config is returned. Environment overrides are
// applied before validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadJSON(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	EnsureDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to path as indented JSON. Parent directories are
// created if they do not already exist.
func Save(cfg *Config, path string) error {
	if err := saveJSON(path, cfg, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func isValidLogLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// Validate checks cfg for constraint violations and returns a combined error
// describing every problem found, or nil if the config is valid.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.UI.Theme != "light" && cfg.UI.Theme != "dark" {
		errs = append(errs, fmt.Sprintf("ui.theme must be one of light, dark; got %q", cfg.UI.Theme))
	}

	if strings.TrimSpace(cfg.Dataset.Source) == "" {
		errs = append(errs, "dataset.source must not be empty")
	}

	if cfg.Dataset.CacheTTLMinutes < 0 {
		errs = append(errs, fmt.Sprintf("dataset.cache_ttl_minutes must be >= 0; got %d", cfg.Dataset.CacheTTLMinutes))
	}

	if cfg.Dataset.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("dataset.timeout_seconds must be >= 1; got %d", cfg.Dataset.TimeoutSeconds))
	}

	if cfg.Web.Port < 0 || cfg.Web.Port > 65535 {
		errs = append(errs, fmt.Sprintf("web.port must be between 0 and 65535; got %d", cfg.Web.Port))
	}

	if !isValidLogLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level))
	}

	if cfg.Logging.RotationMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.rotation_mb must be >= 1; got %d", cfg.Logging.RotationMB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	return nil
}

// EnsureDefaults fills in zero-value string fields in cfg with their default
// values. Numeric fields are left alone: Load unmarshals on top of
// DefaultConfig, so missing JSON fields already carry defaults.
func EnsureDefaults(cfg *Config) {
	d := DefaultConfig()

	if cfg.UI.Theme == "" {
		cfg.UI.Theme = d.UI.Theme
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = d.Dataset.Source
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
}
