package app

import (
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
	"github.com/rightcode-tools/rightcode-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// RefreshMsg requests a refresh of both fetch tracks.
type RefreshMsg struct{}

// SwitchAccountMsg requests switching to a different active account.
type SwitchAccountMsg struct {
	Alias string
}

// SwitchAccountResultMsg contains the result of an account switch.
type SwitchAccountResultMsg struct {
	Alias   string
	Success bool
	Error   error
}

// RemoveAccountMsg requests removal of an account.
type RemoveAccountMsg struct {
	Alias string
}

// RemoveAccountResultMsg contains the result of an account removal.
type RemoveAccountResultMsg struct {
	Alias   string
	Success bool
	Error   error
}

// LoginResultMsg contains the outcome of a credential exchange.
type LoginResultMsg struct {
	Result *models.LoginResult
	Error  error
}

// AccountAddedMsg contains the result of storing a new account.
type AccountAddedMsg struct {
	Alias   string
	Success bool
	Error   error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}
