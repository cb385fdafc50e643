package accounts

import (
	"fmt"

	"github.com/rightcode-tools/rightcode-tui/internal/config"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// legacyAliasBase is the alias synthesized for a migrated legacy token.
const legacyAliasBase = "default"

// MigrateLegacyToken upgrades the legacy single-token field into the
// multi-account list, in memory. Returns true when the settings changed and
// need saving. Running it again on already-migrated settings is a no-op.
func MigrateLegacyToken(s *config.Settings) bool {
	changed := false

	token := NormalizeSecret(s.Token)
	if token != "" && !secretExists(s.Accounts.Entries, token) {
		alias := freeLegacyAlias(s.Accounts.Entries)
		s.Accounts.Entries = append(s.Accounts.Entries, models.AccountCredential{
			Alias:  alias,
			Secret: token,
		})
		if s.ActiveAccount == "" {
			s.ActiveAccount = alias
		}
		changed = true
	}

	// The legacy field is cleared whether or not an entry was synthesized.
	if s.Token != "" {
		s.Token = ""
		changed = true
	}

	return changed
}

func secretExists(entries []models.AccountCredential, normalized string) bool {
	for _, e := range entries {
		if NormalizeSecret(e.Secret) == normalized {
			return true
		}
	}
	return false
}

// freeLegacyAlias picks "default", or "default-N" with the smallest N >= 2
// that does not collide with an existing alias.
func freeLegacyAlias(entries []models.AccountCredential) string {
	taken := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		taken[e.Alias] = struct{}{}
	}

	if _, ok := taken[legacyAliasBase]; !ok {
		return legacyAliasBase
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", legacyAliasBase, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
