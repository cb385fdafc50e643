package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rightcode-tools/rightcode-tui/internal/config"
	"github.com/rightcode-tools/rightcode-tui/internal/logger"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// Event represents an accounts service event.
type Event struct {
	Type  EventType
	Error error
	Alias string
}

// EventType defines the type of accounts event.
type EventType int

const (
	// EventSettingsLoaded fires once after the initial load and migration.
	EventSettingsLoaded EventType = iota
	// EventSettingsChanged fires when the settings file changes on disk.
	EventSettingsChanged
	// EventActiveAccountChanged fires when the active account is switched.
	EventActiveAccountChanged
	// EventAccountAdded fires when a new account is added.
	EventAccountAdded
	// EventAccountRemoved fires when an account is removed.
	EventAccountRemoved
	// EventError reports watcher or reload failures.
	EventError
)

// Service owns the settings file: it loads and migrates it at startup,
// watches it for external edits, and serializes mutations.
type Service struct {
	mu            sync.RWMutex
	settings      *config.Settings
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates the accounts service, running legacy migration before the
// first caller can resolve credentials.
func New(filePath string) (*Service, error) {
	s := &Service{
		filePath:  filePath,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	settings, err := config.LoadSettings(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	s.settings = settings

	if MigrateLegacyToken(settings) {
		// A save failure here means the legacy field stays on disk; the
		// in-memory migration still holds, so this is diagnostic only.
		if err := config.SaveSettings(filePath, settings); err != nil {
			logger.Warn("failed to persist legacy token migration", "error", err)
		}
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start settings watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventSettingsLoaded})
	return s, nil
}

// Events returns the event channel for subscribing to settings changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Settings returns a snapshot copy of the current settings.
func (s *Service) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := *s.settings
	snapshot.Accounts.Entries = make([]models.AccountCredential, len(s.settings.Accounts.Entries))
	copy(snapshot.Accounts.Entries, s.settings.Accounts.Entries)
	return snapshot
}

// Accounts returns the resolved, deduplicated account list.
func (s *Service) Accounts() []models.AccountCredential {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resolved, _ := ResolveAccounts(s.settings.Accounts.Entries, s.settings.ActiveAccount)
	return resolved
}

// ResolveAuth derives the active credential for the next pipeline run.
func (s *Service) ResolveAuth() models.ResolvedAuth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ResolveAuth(s.settings.Accounts.Entries, s.settings.ActiveAccount)
}

// ActiveAlias returns the resolved active alias, empty when unconfigured.
func (s *Service) ActiveAlias() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, active := ResolveAccounts(s.settings.Accounts.Entries, s.settings.ActiveAccount)
	return active
}

// SetActiveAccount switches the active account by alias.
func (s *Service) SetActiveAccount(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved, _ := ResolveAccounts(s.settings.Accounts.Entries, s.settings.ActiveAccount)
	found := false
	for _, e := range resolved {
		if e.Alias == alias {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("account not found: %s", alias)
	}

	s.settings.ActiveAccount = alias
	if err := config.SaveSettings(s.filePath, s.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.sendEvent(Event{Type: EventActiveAccountChanged, Alias: alias})
	return nil
}

// AddAccount appends a new credential entry. The secret is normalized the
// same way configuration secrets are.
func (s *Service) AddAccount(alias, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := NormalizeSecret(secret)
	if alias == "" {
		return fmt.Errorf("account alias must not be empty")
	}
	if normalized == "" {
		return fmt.Errorf("account secret must not be empty")
	}
	for _, e := range s.settings.Accounts.Entries {
		if e.Alias == alias {
			return fmt.Errorf("account with alias %s already exists", alias)
		}
	}

	s.settings.Accounts.Entries = append(s.settings.Accounts.Entries, models.AccountCredential{
		Alias:  alias,
		Secret: normalized,
	})
	if s.settings.ActiveAccount == "" {
		s.settings.ActiveAccount = alias
	}

	if err := config.SaveSettings(s.filePath, s.settings); err != nil {
		// Rollback
		s.settings.Accounts.Entries = s.settings.Accounts.Entries[:len(s.settings.Accounts.Entries)-1]
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.sendEvent(Event{Type: EventAccountAdded, Alias: alias})
	return nil
}

// RemoveAccount deletes a credential entry by alias.
func (s *Service) RemoveAccount(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.settings.Accounts.Entries {
		if e.Alias == alias {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("account not found: %s", alias)
	}

	s.settings.Accounts.Entries = append(
		s.settings.Accounts.Entries[:idx], s.settings.Accounts.Entries[idx+1:]...)

	if s.settings.ActiveAccount == alias {
		s.settings.ActiveAccount = ""
		if len(s.settings.Accounts.Entries) > 0 {
			s.settings.ActiveAccount = s.settings.Accounts.Entries[0].Alias
		}
	}

	if err := config.SaveSettings(s.filePath, s.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.sendEvent(Event{Type: EventAccountRemoved, Alias: alias})
	return nil
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation/deletion)
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads settings from disk after an external edit.
func (s *Service) handleFileChange() {
	settings, err := config.LoadSettings(s.filePath)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.sendEvent(Event{Type: EventSettingsChanged})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
