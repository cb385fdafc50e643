package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rightcode-tools/rightcode-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// refreshCmd returns a command that triggers both fetch tracks.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Refresh()
		return StartLoadingMsg{Resource: "subscriptions"}
	}
}

// switchAccountCmd returns a command that switches the active account.
func switchAccountCmd(mgr *services.Manager, alias string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Accounts().SetActiveAccount(alias)
		return SwitchAccountResultMsg{
			Alias:   alias,
			Success: err == nil,
			Error:   err,
		}
	}
}

// removeAccountCmd returns a command that removes an account.
func removeAccountCmd(mgr *services.Manager, alias string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Accounts().RemoveAccount(alias)
		return RemoveAccountResultMsg{
			Alias:   alias,
			Success: err == nil,
			Error:   err,
		}
	}
}

// loginCmd returns a command that exchanges credentials for a token.
func loginCmd(mgr *services.Manager, username, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := mgr.Login(username, password)
		return LoginResultMsg{Result: result, Error: err}
	}
}

// addAccountCmd returns a command that stores a freshly obtained token as a
// new account.
func addAccountCmd(mgr *services.Manager, alias, token string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Accounts().AddAccount(alias, token)
		return AccountAddedMsg{
			Alias:   alias,
			Success: err == nil,
			Error:   err,
		}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// Refresh returns a command that triggers both fetch tracks.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// SwitchAccount returns a command that switches the active account.
func (c *Commands) SwitchAccount(alias string) tea.Cmd {
	return switchAccountCmd(c.manager, alias)
}

// RemoveAccount returns a command that removes an account.
func (c *Commands) RemoveAccount(alias string) tea.Cmd {
	return removeAccountCmd(c.manager, alias)
}

// Login returns a command that exchanges credentials for a token.
func (c *Commands) Login(username, password string) tea.Cmd {
	return loginCmd(c.manager, username, password)
}

// AddAccount returns a command that stores a token as a new account.
func (c *Commands) AddAccount(alias, token string) tea.Cmd {
	return addAccountCmd(c.manager, alias, token)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}
