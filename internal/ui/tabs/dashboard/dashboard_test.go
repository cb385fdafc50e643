package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/app"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
)

func newTestModel() (*Model, *app.State) {
	state := app.NewState()
	state.SetLoading("initial", false)
	m := New(state)
	m.SetSize(100, 40)
	return m, state
}

func TestView_Subscriptions(t *testing.T) {
	m, state := newTestModel()

	state.SetSubscriptions(projection.SubscriptionsPayload{
		OK:    true,
		Total: 2,
		Subscriptions: []models.Subscription{
			{ID: 1, Name: "Pro", TotalQuota: 100, RemainingQuota: 62.5},
			{ID: 2, Name: "Old", TotalQuota: 100, RemainingQuota: 5,
				ExpiredAt: "2020-01-01T00:00:00Z"},
		},
		At: time.Now(),
	})

	view := m.View()
	if !strings.Contains(view, "Pro") {
		t.Error("view missing subscription name")
	}
	// The long-expired subscription renders as an expired bar.
	if !strings.Contains(view, "EXPIRED") {
		t.Error("view missing expired marker")
	}
}

func TestView_SubscriptionsError(t *testing.T) {
	m, state := newTestModel()

	state.SetSubscriptions(projection.SubscriptionsPayload{
		Error: "request timed out",
		At:    time.Now(),
	})

	if view := m.View(); !strings.Contains(view, "request timed out") {
		t.Errorf("view missing error:\n%s", view)
	}
}

func TestView_Usage(t *testing.T) {
	m, state := newTestModel()

	state.SetUsage(projection.UsagePayload{
		OK:            true,
		TotalRequests: 50,
		TotalTokens:   1000,
		TotalCost:     1.25,
		Distribution: []projection.ModelSlice{
			{ModelRatio: models.ModelRatio{ModelUsage: models.ModelUsage{Model: "gpt", TotalTokens: 800}, Ratio: 80}, Color: "#7aa2f7"},
			{ModelRatio: models.ModelRatio{ModelUsage: models.ModelUsage{Model: "claude", TotalTokens: 200}, Ratio: 20}, Color: "#9ece6a"},
		},
		TrendTokens: []float64{400, 600},
		TrendDates:  []string{"2026-08-27", "2026-08-28"},
		At:          time.Now(),
	})

	view := m.View()
	if !strings.Contains(view, "gpt") || !strings.Contains(view, "claude") {
		t.Error("view missing model distribution")
	}
	if !strings.Contains(view, "80.0%") {
		t.Error("view missing ratio")
	}
	if !strings.Contains(view, "1000") {
		t.Error("view missing token total")
	}
	if !strings.Contains(view, "2026-08-27 .. 2026-08-28") {
		t.Error("view missing trend caption")
	}
}

func TestView_UsageError(t *testing.T) {
	m, state := newTestModel()

	state.SetUsage(projection.UsagePayload{Error: "boom", At: time.Now()})
	if view := m.View(); !strings.Contains(view, "boom") {
		t.Errorf("view missing usage error:\n%s", view)
	}
}

func TestAnimationStopsWhenIdle(t *testing.T) {
	m, state := newTestModel()
	state.SetLoading("subscriptions", false)

	_, cmd := m.Update(animationTickMsg(time.Now()))
	if cmd != nil {
		t.Error("animation must stop when nothing is loading")
	}

	state.SetLoading("subscriptions", true)
	_, cmd = m.Update(animationTickMsg(time.Now()))
	if cmd == nil {
		t.Error("animation must continue while loading")
	}
}

func TestHelpBindings(t *testing.T) {
	m, _ := newTestModel()
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
