// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the application-level configuration resolved from the
// environment. Account and refresh settings live in the settings file
// (see Settings) and are consumed read-only by the core pipeline.
type Config struct {
	SettingsPath string
	BaseURL      string
}

// Default values
const (
	defaultBaseURL = "https://right.codes"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		SettingsPath: getEnvString("RIGHTCODE_CONFIG_PATH", getDefaultSettingsPath()),
		BaseURL:      getEnvString("RIGHTCODE_BASE_URL", defaultBaseURL),
	}

	// Ensure settings directory exists
	if err := ensureDir(filepath.Dir(cfg.SettingsPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "rightcode-tui", ".env"),
			filepath.Join(home, ".rightcode", ".env"),
		)
	}

	return paths
}

// getDefaultSettingsPath returns the default path for the settings file.
func getDefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rightcode.json"
	}
	return filepath.Join(home, ".config", "rightcode-tui", "rightcode.json")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
