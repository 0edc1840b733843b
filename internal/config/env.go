package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataset  = "INDIAMAP_DATASET"
	EnvTheme    = "INDIAMAP_THEME"
	EnvLogLevel = "INDIAMAP_LOG_LEVEL"
	EnvWebPort  = "INDIAMAP_WEB_PORT"
)

// LoadDotEnv loads variables from the given .env files (".env" in the
// working directory when none are named). Variables already set in the
// process environment win. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// ApplyEnv copies any INDIAMAP_* overrides from the environment into cfg.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvDataset); ok && v != "" {
		cfg.Dataset.Source = v
	}
	if v, ok := os.LookupEnv(EnvTheme); ok && v != "" {
		cfg.UI.Theme = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvWebPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWebPort, v, err)
		}
		cfg.Web.Port = port
	}
	return nil
}
