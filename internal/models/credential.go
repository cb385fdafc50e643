// Package models defines data structures and domain types.
package models

import (
	"encoding/json"
	"strings"
)

// AccountCredential is one named credential entry from the configuration.
// Alias is unique within a resolved list; Secret is an opaque bearer token.
type AccountCredential struct {
	Alias  string `json:"alias"`
	Secret string `json:"secret"`
}

// ResolvedAuth is the ephemeral "which credential is active now" result.
// It is recomputed on every pipeline run and never stored.
type ResolvedAuth struct {
	Secret       string
	AccountLabel string
	AccountAlias string
}

// UnconfiguredLabel is the label shown when no credential exists.
const UnconfiguredLabel = "Not configured"

// Unconfigured returns the sentinel auth used when the account list is empty.
func Unconfigured() ResolvedAuth {
	return ResolvedAuth{AccountLabel: UnconfiguredLabel}
}

// IsConfigured reports whether a usable secret was resolved.
func (a ResolvedAuth) IsConfigured() bool {
	return a.Secret != ""
}

// RawAccounts accepts the two configuration shapes for the account list:
// an ordered array of {alias, secret} records, or an object mapping
// alias -> secret. Both decode into the ordered Entries slice; for the
// object form, entries keep the order they appear in the file.
type RawAccounts struct {
	Entries []AccountCredential
}

// UnmarshalJSON implements the dual-shape decoding.
func (r *RawAccounts) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		r.Entries = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []AccountCredential
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		r.Entries = list
		return nil
	}

	// Object form: decode token by token to preserve key order, which
	// json.Unmarshal into a map would lose.
	dec := json.NewDecoder(strings.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "accounts", Type: nil}
	}

	var entries []AccountCredential
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		alias, _ := keyTok.(string)

		var secret string
		if err := dec.Decode(&secret); err != nil {
			return err
		}
		entries = append(entries, AccountCredential{Alias: alias, Secret: secret})
	}

	r.Entries = entries
	return nil
}

// MarshalJSON always emits the canonical array form.
func (r RawAccounts) MarshalJSON() ([]byte, error) {
	if r.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Entries)
}
