// Package accounts resolves credentials from the multi-account settings
// and keeps them fresh via file watching.
package accounts

import (
	"regexp"
	"strings"
	"sync"

	"github.com/rightcode-tools/rightcode-tui/internal/logger"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

var (
	authPrefixRe   = regexp.MustCompile(`(?i)^authorization\s*:\s*`)
	bearerPrefixRe = regexp.MustCompile(`(?i)^bearer\s+`)
	cookiePrefixRe = regexp.MustCompile(`(?i)^cookie\s*:\s*`)
)

// warnMissingActiveOnce gates the missing-active-alias diagnostic to once
// per process lifetime, not once per call.
var warnMissingActiveOnce sync.Once

// NormalizeSecret strips a leading Authorization:/Bearer/Cookie: prefix
// (case-insensitive), matching surrounding quotes, and whitespace. Users
// paste whole header lines; we only want the token.
func NormalizeSecret(value string) string {
	normalized := strings.TrimSpace(value)
	normalized = authPrefixRe.ReplaceAllString(normalized, "")
	normalized = cookiePrefixRe.ReplaceAllString(normalized, "")
	normalized = bearerPrefixRe.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(normalized)

	if len(normalized) >= 2 {
		first, last := normalized[0], normalized[len(normalized)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			normalized = strings.TrimSpace(normalized[1 : len(normalized)-1])
		}
	}
	return normalized
}

// ResolveAccounts normalizes raw entries into the canonical account list and
// resolves which alias is active. Deduplication is by alias, first
// occurrence wins; entries whose secret is empty after normalization are
// dropped. When activeAlias names no surviving entry the first entry wins
// and a diagnostic is emitted once per process.
func ResolveAccounts(entries []models.AccountCredential, activeAlias string) ([]models.AccountCredential, string) {
	seen := make(map[string]struct{}, len(entries))
	resolved := make([]models.AccountCredential, 0, len(entries))

	for _, e := range entries {
		alias := strings.TrimSpace(e.Alias)
		secret := NormalizeSecret(e.Secret)
		if alias == "" || secret == "" {
			continue
		}
		if _, dup := seen[alias]; dup {
			continue
		}
		seen[alias] = struct{}{}
		resolved = append(resolved, models.AccountCredential{Alias: alias, Secret: secret})
	}

	if len(resolved) == 0 {
		return resolved, ""
	}

	if activeAlias != "" {
		if _, ok := seen[activeAlias]; ok {
			return resolved, activeAlias
		}
		warnMissingActiveOnce.Do(func() {
			logger.Warn("configured active account not found, falling back to first entry",
				"alias", activeAlias)
		})
	}

	return resolved, resolved[0].Alias
}

// ResolveAuth derives the active credential from raw entries. An empty list
// yields the unconfigured sentinel.
func ResolveAuth(entries []models.AccountCredential, activeAlias string) models.ResolvedAuth {
	resolved, active := ResolveAccounts(entries, activeAlias)
	if len(resolved) == 0 {
		return models.Unconfigured()
	}

	for _, e := range resolved {
		if e.Alias == active {
			return models.ResolvedAuth{
				Secret:       e.Secret,
				AccountLabel: e.Alias,
				AccountAlias: e.Alias,
			}
		}
	}
	return models.Unconfigured()
}
