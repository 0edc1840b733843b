package app

import (
	"os"
	"path/filepath"
)

// DefaultHome returns ~/.indiamap, or .indiamap in the working directory when
// the home directory cannot be determined.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".indiamap"
	}
	return filepath.Join(home, ".indiamap")
}

// ConfigPath is the config file inside home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config.json")
}

// DBPath is the dataset cache database inside home.
func DBPath(home string) string {
	return filepath.Join(home, "cache.db")
}

// DotEnvFiles lists the .env files consulted at startup, nearest first.
func DotEnvFiles(home string) []string {
	return []string{".env", filepath.Join(home, ".env")}
}
