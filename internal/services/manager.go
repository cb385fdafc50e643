// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/rightcode-tools/rightcode-tui/internal/accounts"
	"github.com/rightcode-tools/rightcode-tui/internal/api"
	"github.com/rightcode-tools/rightcode-tui/internal/config"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
	"github.com/rightcode-tools/rightcode-tui/internal/services/billing"
	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
)

// lowQuotaFraction is the remaining-quota threshold for the desktop
// notification.
const lowQuotaFraction = 0.05

type (
	// AccountEvent announces the active account. Changed marks an account
	// switch; it is always delivered before the refresh it precedes.
	AccountEvent struct {
		Payload projection.AccountPayload
	}

	// StatusEvent carries a fresh status summary.
	StatusEvent struct {
		Status projection.Status
	}

	// SubscriptionsEvent carries one subscriptions fetch outcome.
	SubscriptionsEvent struct {
		Payload projection.SubscriptionsPayload
	}

	// UsageEvent carries one usage-stats fetch outcome.
	UsageEvent struct {
		Payload projection.UsagePayload
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (AccountEvent) isServiceEvent()       {}
func (StatusEvent) isServiceEvent()        {}
func (SubscriptionsEvent) isServiceEvent() {}
func (UsageEvent) isServiceEvent()         {}
func (ErrorEvent) isServiceEvent()         {}

// Manager orchestrates the accounts, billing and projection layers and fans
// events out to subscribers.
type Manager struct {
	mu          sync.RWMutex
	accounts    *accounts.Service
	billing     *billing.Service
	client      *api.Client
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	lastAlias     string
	lastStatus    projection.Status
	lastAccount   projection.AccountPayload
	lastSubs      projection.SubscriptionsPayload
	lastUsage     projection.UsagePayload
	prevFractions map[int]float64
}

// NewManager creates a new service manager. The settings-loaded event from
// the accounts service drives the initial refresh; consumers that subscribe
// later catch up through the Last* snapshots.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		eventChan:     make(chan ServiceEvent, 100),
		stopChan:      make(chan struct{}),
		prevFractions: make(map[int]float64),
	}

	var err error
	m.accounts, err = accounts.New(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}

	settings := m.accounts.Settings()
	m.client = api.NewClient(cfg.BaseURL, settings.RequestTimeout())
	m.billing = billing.New(m.client, m.accounts)

	auth := m.accounts.ResolveAuth()
	m.lastAlias = auth.AccountAlias
	m.lastAccount = projection.ProjectAccount(auth, false, time.Now())
	m.lastStatus = projection.ProjectStatus(auth, nil, nil, time.Time{})

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.accounts.Events():
			m.handleAccountEvent(event)

		case event := <-m.billing.Events():
			m.handleBillingEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleAccountEvent reacts to configuration changes: the account payload is
// broadcast before any refresh is triggered, so consumers never pair a stale
// account label with fresh data from another account.
func (m *Manager) handleAccountEvent(event accounts.Event) {
	switch event.Type {
	case accounts.EventSettingsLoaded, accounts.EventSettingsChanged,
		accounts.EventActiveAccountChanged, accounts.EventAccountAdded,
		accounts.EventAccountRemoved:

		auth := m.accounts.ResolveAuth()

		m.mu.Lock()
		changed := auth.AccountAlias != m.lastAlias
		m.lastAlias = auth.AccountAlias
		payload := projection.ProjectAccount(auth, changed, time.Now())
		m.lastAccount = payload
		m.mu.Unlock()

		m.broadcast(AccountEvent{Payload: payload})

		settings := m.accounts.Settings()
		m.client.SetTimeout(settings.RequestTimeout())
		m.billing.Rearm(settings.RefreshInterval())
		m.billing.RefreshAll()

	case accounts.EventError:
		m.broadcast(ErrorEvent{Service: "accounts", Error: event.Error})
	}
}

func (m *Manager) handleBillingEvent(event billing.Event) {
	switch event.Type {
	case billing.EventSubscriptionsUpdated:
		auth := m.accounts.ResolveAuth()
		status := projection.ProjectStatus(auth, event.Subscriptions.Subscriptions, nil, event.At)
		subsPayload := projection.ProjectSubscriptions(event.Subscriptions, nil, event.At)

		m.mu.Lock()
		m.lastStatus = status
		m.lastSubs = subsPayload
		m.mu.Unlock()

		m.broadcast(SubscriptionsEvent{Payload: subsPayload})
		m.broadcast(StatusEvent{Status: status})

		if status.Selected != nil {
			m.checkNotifications(auth.AccountLabel, *status.Selected)
		}

	case billing.EventSubscriptionsError:
		auth := m.accounts.ResolveAuth()
		status := projection.ProjectStatus(auth, nil, event.Error, event.At)
		subsPayload := projection.ProjectSubscriptions(nil, event.Error, event.At)

		m.mu.Lock()
		m.lastStatus = status
		m.lastSubs = subsPayload
		m.mu.Unlock()

		m.broadcast(SubscriptionsEvent{Payload: subsPayload})
		m.broadcast(StatusEvent{Status: status})

	case billing.EventUsageUpdated:
		payload := projection.ProjectUsage(event.Usage, nil, event.At)
		m.mu.Lock()
		m.lastUsage = payload
		m.mu.Unlock()
		m.broadcast(UsageEvent{Payload: payload})

	case billing.EventUsageError:
		payload := projection.ProjectUsage(nil, event.Error, event.At)
		m.mu.Lock()
		m.lastUsage = payload
		m.mu.Unlock()
		m.broadcast(UsageEvent{Payload: payload})
	}
}

// checkNotifications raises a desktop notification when the displayed
// subscription's remaining fraction crosses below the threshold.
func (m *Manager) checkNotifications(accountLabel string, sub models.Subscription) {
	if sub.TotalQuota <= 0 {
		return
	}
	fraction := sub.RemainingQuota / sub.TotalQuota

	m.mu.Lock()
	prev, seen := m.prevFractions[sub.ID]
	m.prevFractions[sub.ID] = fraction
	m.mu.Unlock()

	if !seen {
		return
	}

	// Only notify on the downward crossing, not on every refresh below it.
	if fraction < lowQuotaFraction && prev >= lowQuotaFraction {
		title := fmt.Sprintf("Low quota: %s", accountLabel)
		body := fmt.Sprintf("%s has %.1f%% quota remaining", sub.Name, fraction*100)
		_ = beeep.Notify(title, body, "")
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Refresh triggers both fetch tracks. Triggers on tracks already fetching
// are dropped.
func (m *Manager) Refresh() {
	m.billing.RefreshAll()
}

// Login exchanges credentials for a user token via the billing API.
func (m *Manager) Login(username, password string) (*models.LoginResult, error) {
	return m.client.Login(context.Background(), username, password)
}

// AddAccountFromLogin stores the token obtained by a login flow as a new
// account entry.
func (m *Manager) AddAccountFromLogin(alias string, result *models.LoginResult) error {
	return m.accounts.AddAccount(alias, result.UserToken)
}

// LastStatus returns the most recent status summary.
func (m *Manager) LastStatus() projection.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastStatus
}

// LastAccount returns the most recent account payload.
func (m *Manager) LastAccount() projection.AccountPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAccount
}

// LastSubscriptions returns the most recent subscriptions payload.
func (m *Manager) LastSubscriptions() projection.SubscriptionsPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSubs
}

// LastUsage returns the most recent usage payload.
func (m *Manager) LastUsage() projection.UsagePayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUsage
}

// Accounts returns the accounts service.
func (m *Manager) Accounts() *accounts.Service {
	return m.accounts
}

// Billing returns the billing service.
func (m *Manager) Billing() *billing.Service {
	return m.billing
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.accounts.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := m.billing.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
