package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/logger"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// Settings is the user-editable settings file. The account list accepts
// both the array and the alias->secret object shape; everything else is
// plain fields. A missing file decodes to defaults.
type Settings struct {
	Accounts                 models.RawAccounts `json:"accounts"`
	ActiveAccount            string             `json:"activeAccount,omitempty"`
	RefreshIntervalSeconds   *int               `json:"refreshIntervalSeconds,omitempty"`
	RequestTimeoutMs         *int               `json:"requestTimeoutMs,omitempty"`
	ShowExpiredSubscriptions bool               `json:"showExpiredSubscriptions,omitempty"`

	// Token is the legacy single-credential field, superseded by Accounts.
	// Cleared by migration on startup.
	Token string `json:"token,omitempty"`
}

const (
	defaultRefreshIntervalSeconds = 300
	defaultRequestTimeoutMs       = 15000
)

// RefreshInterval returns the configured refresh interval. Zero or negative
// disables periodic refresh.
func (s *Settings) RefreshInterval() time.Duration {
	if s.RefreshIntervalSeconds == nil {
		return defaultRefreshIntervalSeconds * time.Second
	}
	return time.Duration(*s.RefreshIntervalSeconds) * time.Second
}

// RequestTimeout returns the configured per-request timeout.
func (s *Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutMs == nil || *s.RequestTimeoutMs <= 0 {
		return defaultRequestTimeoutMs * time.Millisecond
	}
	return time.Duration(*s.RequestTimeoutMs) * time.Millisecond
}

// LoadSettings reads the settings file. A missing file yields empty
// settings rather than an error; a malformed file is an error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// SaveSettings writes the settings file atomically (temp file then rename).
func SaveSettings(path string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
