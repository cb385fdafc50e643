package accounts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/config"
)

func newTestService(t *testing.T, content string) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rightcode.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	svc, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})
	return svc
}

func TestServiceLoadsAndResolves(t *testing.T) {
	svc := newTestService(t, `{
		"accounts": [{"alias":"work","secret":"Bearer tok-1"},{"alias":"home","secret":"tok-2"}],
		"activeAccount": "home"
	}`)

	auth := svc.ResolveAuth()
	if auth.Secret != "tok-2" || auth.AccountAlias != "home" {
		t.Errorf("unexpected auth: %+v", auth)
	}

	accs := svc.Accounts()
	if len(accs) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accs))
	}
	if accs[0].Secret != "tok-1" {
		t.Errorf("secret should be normalized, got %q", accs[0].Secret)
	}
}

func TestServiceMigratesOnStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rightcode.json")
	if err := os.WriteFile(path, []byte(`{"token":"Bearer legacy"}`), 0600); err != nil {
		t.Fatal(err)
	}

	svc, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	}()

	auth := svc.ResolveAuth()
	if auth.Secret != "legacy" || auth.AccountAlias != "default" {
		t.Errorf("migration did not take effect: %+v", auth)
	}

	// The migrated state must be on disk with the legacy field cleared.
	persisted, err := config.LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if persisted.Token != "" {
		t.Error("legacy field still present on disk after migration")
	}
	if len(persisted.Accounts.Entries) != 1 {
		t.Errorf("migrated account not persisted: %+v", persisted.Accounts.Entries)
	}
}

func TestServiceSetActiveAccount(t *testing.T) {
	svc := newTestService(t, `{
		"accounts": [{"alias":"a","secret":"1"},{"alias":"b","secret":"2"}]
	}`)

	if err := svc.SetActiveAccount("b"); err != nil {
		t.Fatalf("SetActiveAccount failed: %v", err)
	}
	if svc.ActiveAlias() != "b" {
		t.Errorf("active = %q, want b", svc.ActiveAlias())
	}

	if err := svc.SetActiveAccount("ghost"); err == nil {
		t.Error("switching to an unknown alias must fail")
	}
}

func TestServiceAddAndRemoveAccount(t *testing.T) {
	svc := newTestService(t, "")

	if err := svc.AddAccount("first", "Bearer tok-1"); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	if svc.ActiveAlias() != "first" {
		t.Error("first account should become active")
	}

	if err := svc.AddAccount("first", "other"); err == nil {
		t.Error("duplicate alias must be rejected")
	}
	if err := svc.AddAccount("empty", "Bearer "); err == nil {
		t.Error("empty-after-normalization secret must be rejected")
	}

	if err := svc.AddAccount("second", "tok-2"); err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	if err := svc.RemoveAccount("first"); err != nil {
		t.Fatalf("RemoveAccount failed: %v", err)
	}
	if svc.ActiveAlias() != "second" {
		t.Errorf("active should move to remaining account, got %q", svc.ActiveAlias())
	}
}

func TestServiceWatchesExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rightcode.json")
	if err := os.WriteFile(path, []byte(`{"accounts":[{"alias":"a","secret":"1"}]}`), 0600); err != nil {
		t.Fatal(err)
	}

	svc, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	}()

	drainEvents(svc)

	if err := os.WriteFile(path, []byte(`{"accounts":[{"alias":"a","secret":"1"},{"alias":"b","secret":"2"}]}`), 0600); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if ev.Type == EventSettingsChanged {
				if len(svc.Accounts()) != 2 {
					t.Errorf("expected 2 accounts after reload, got %d", len(svc.Accounts()))
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for settings change event")
		}
	}
}

func drainEvents(svc *Service) {
	for {
		select {
		case <-svc.Events():
		default:
			return
		}
	}
}
