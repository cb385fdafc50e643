package accounts

import (
	"testing"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

func TestNormalizeSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "tok-123", "tok-123"},
		{"whitespace", "  tok-123  ", "tok-123"},
		{"bearer prefix", "Bearer tok-123", "tok-123"},
		{"bearer lowercase", "bearer tok-123", "tok-123"},
		{"authorization header", "Authorization: Bearer tok-123", "tok-123"},
		{"authorization no bearer", "authorization:tok-123", "tok-123"},
		{"cookie header", "Cookie: cf_clearance=abc", "cf_clearance=abc"},
		{"double quotes", `"tok-123"`, "tok-123"},
		{"single quotes", "'tok-123'", "tok-123"},
		{"quoted bearer", `Bearer "tok-123"`, "tok-123"},
		{"empty", "", ""},
		{"only prefix", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSecret(tt.input); got != tt.want {
				t.Errorf("NormalizeSecret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveAccountsDedup(t *testing.T) {
	entries := []models.AccountCredential{
		{Alias: "A", Secret: "x"},
		{Alias: "A", Secret: "y"},
	}

	resolved, active := ResolveAccounts(entries, "")
	if len(resolved) != 1 {
		t.Fatalf("expected 1 entry after dedup, got %d", len(resolved))
	}
	if resolved[0].Alias != "A" || resolved[0].Secret != "x" {
		t.Errorf("first occurrence must win, got %+v", resolved[0])
	}
	if active != "A" {
		t.Errorf("active = %q, want A", active)
	}
}

func TestResolveAccountsOrderPreserved(t *testing.T) {
	entries := []models.AccountCredential{
		{Alias: "c", Secret: "1"},
		{Alias: "a", Secret: "2"},
		{Alias: "b", Secret: "3"},
		{Alias: "a", Secret: "dup"},
	}

	resolved, _ := ResolveAccounts(entries, "")
	want := []string{"c", "a", "b"}
	if len(resolved) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(resolved))
	}
	for i, alias := range want {
		if resolved[i].Alias != alias {
			t.Errorf("entry %d = %q, want %q", i, resolved[i].Alias, alias)
		}
	}
}

func TestResolveAccountsRejectsEmptySecrets(t *testing.T) {
	entries := []models.AccountCredential{
		{Alias: "empty", Secret: "   "},
		{Alias: "prefix-only", Secret: "Bearer "},
		{Alias: "ok", Secret: "tok"},
	}

	resolved, active := ResolveAccounts(entries, "")
	if len(resolved) != 1 || resolved[0].Alias != "ok" {
		t.Errorf("empty-after-normalization entries must be dropped, got %+v", resolved)
	}
	if active != "ok" {
		t.Errorf("active = %q, want ok", active)
	}
}

func TestResolveAccountsFallback(t *testing.T) {
	entries := []models.AccountCredential{
		{Alias: "first", Secret: "1"},
		{Alias: "second", Secret: "2"},
	}

	// Missing alias falls back to first, and the fallback is stable
	// across repeated calls with the same input.
	for i := 0; i < 3; i++ {
		_, active := ResolveAccounts(entries, "ghost")
		if active != "first" {
			t.Fatalf("call %d: active = %q, want first", i, active)
		}
	}

	_, active := ResolveAccounts(entries, "second")
	if active != "second" {
		t.Errorf("existing alias must be honored, got %q", active)
	}
}

func TestResolveAuth(t *testing.T) {
	t.Run("empty list yields sentinel", func(t *testing.T) {
		auth := ResolveAuth(nil, "")
		if auth.IsConfigured() {
			t.Error("empty list must resolve to unconfigured")
		}
		if auth.AccountLabel != models.UnconfiguredLabel {
			t.Errorf("label = %q, want sentinel", auth.AccountLabel)
		}
	})

	t.Run("active credential resolved", func(t *testing.T) {
		entries := []models.AccountCredential{
			{Alias: "work", Secret: "Bearer tok-1"},
			{Alias: "home", Secret: "tok-2"},
		}
		auth := ResolveAuth(entries, "home")
		if auth.Secret != "tok-2" || auth.AccountAlias != "home" || auth.AccountLabel != "home" {
			t.Errorf("unexpected auth: %+v", auth)
		}
	})

	t.Run("secret normalized", func(t *testing.T) {
		entries := []models.AccountCredential{
			{Alias: "work", Secret: `Authorization: Bearer "tok-1"`},
		}
		auth := ResolveAuth(entries, "work")
		if auth.Secret != "tok-1" {
			t.Errorf("secret = %q, want normalized tok-1", auth.Secret)
		}
	})
}
