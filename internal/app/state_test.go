package app

import (
	"testing"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if !s.IsInitialLoading() {
		t.Error("new state must start in initial loading")
	}
	if len(s.GetNotifications()) != 0 {
		t.Error("new state must have no notifications")
	}
}

func TestState_Loading(t *testing.T) {
	s := NewState()

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("nothing should be loading")
	}

	s.SetLoading("subscriptions", true)
	if !s.AnyLoading() {
		t.Error("subscriptions loading not tracked")
	}
	s.SetLoading("subscriptions", false)

	s.SetLoading("usage", true)
	if !s.AnyLoading() {
		t.Error("usage loading not tracked")
	}
	s.SetLoading("usage", false)

	// Unknown resources are ignored.
	s.SetLoading("bogus", true)
	if s.AnyLoading() {
		t.Error("unknown resource must not flip any flag")
	}
}

func TestState_Payloads(t *testing.T) {
	s := NewState()

	status := projection.Status{State: projection.StatusOK, Line: "work · Pro remaining 62.50"}
	s.SetStatus(status)
	if got := s.GetStatus(); got.Line != status.Line {
		t.Errorf("status = %+v", got)
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("SetStatus must stamp LastUpdated")
	}

	s.SetAccount(projection.AccountPayload{Label: "work", Changed: true})
	if got := s.GetAccount(); got.Label != "work" || !got.Changed {
		t.Errorf("account = %+v", got)
	}

	s.SetSubscriptions(projection.SubscriptionsPayload{OK: true, Total: 2})
	if got := s.GetSubscriptions(); !got.OK || got.Total != 2 {
		t.Errorf("subscriptions = %+v", got)
	}

	s.SetUsage(projection.UsagePayload{OK: true, TotalTokens: 1000})
	if got := s.GetUsage(); !got.OK || got.TotalTokens != 1000 {
		t.Errorf("usage = %+v", got)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationSuccess, "done", time.Minute)
	if id == "" {
		t.Fatal("AddNotification returned empty ID")
	}
	if len(s.GetNotifications()) != 1 {
		t.Fatal("notification not stored")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification not removed")
	}
}

func TestState_NotificationExpiry(t *testing.T) {
	s := NewState()

	s.AddNotification(NotificationInfo, "short lived", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification still visible")
	}

	s.ClearExpiredNotifications()
	s.AddNotification(NotificationInfo, "sticky", 0)
	if len(s.GetNotifications()) != 1 {
		t.Error("zero-duration notification must never expire")
	}
}

func TestState_NotificationCap(t *testing.T) {
	s := NewState()
	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}
	if got := len(s.GetNotifications()); got != 10 {
		t.Errorf("notifications = %d, want capped at 10", got)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	notifications := s.GetNotifications()
	if len(notifications) != 1 || notifications[0].ID != LoadingNotificationID {
		t.Fatalf("notifications = %+v", notifications)
	}

	// Updating replaces the message instead of stacking.
	s.SetLoadingNotification("Refreshing...")
	notifications = s.GetNotifications()
	if len(notifications) != 1 || notifications[0].Message != "Refreshing..." {
		t.Errorf("notifications = %+v", notifications)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification not cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("zero LastUpdated must report zero duration")
	}

	s.SetStatus(projection.Status{})
	if s.TimeSinceUpdate() < 0 {
		t.Error("negative duration")
	}
}
