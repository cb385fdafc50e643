package status

import (
	"strings"
	"testing"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/app"
	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
)

func newTestModel() (*Model, *app.State) {
	state := app.NewState()
	state.SetLoading("initial", false)
	m := New(state)
	m.SetSize(100, 30)
	return m, state
}

func TestView_OK(t *testing.T) {
	m, state := newTestModel()

	state.SetAccount(projection.AccountPayload{Label: "work", Alias: "work"})
	state.SetStatus(projection.Status{
		State: projection.StatusOK,
		Line:  "work · Pro remaining 62.50",
		Detail: []projection.DetailRow{
			{Name: "Pro", Used: "37.50", Remaining: "62.50", Total: "100.00",
				Expires: "2027-03-01", LastReset: "08-27", ResetToday: "yes", Selected: true},
			{Name: "Extra", Used: "90.00", Remaining: "10.00", Total: "100.00",
				Expires: "-", LastReset: "-", ResetToday: "-"},
		},
		RefreshedAt: time.Now(),
	})

	view := m.View()
	if !strings.Contains(view, "work · Pro remaining 62.50") {
		t.Errorf("view missing status line:\n%s", view)
	}
	if !strings.Contains(view, "Pro") || !strings.Contains(view, "Extra") {
		t.Error("view missing detail rows")
	}
	if !strings.Contains(view, "Last refresh:") {
		t.Error("view missing refresh timestamp")
	}
}

func TestView_Sentinels(t *testing.T) {
	m, state := newTestModel()

	state.SetStatus(projection.Status{
		State: projection.StatusNotConfigured,
		Line:  "RightCode: not configured",
	})
	if view := m.View(); !strings.Contains(view, "RightCode: not configured") {
		t.Errorf("view = %q", view)
	}

	state.SetStatus(projection.Status{
		State:   projection.StatusError,
		Line:    "RightCode: fetch failed",
		Message: "request timed out",
	})
	view := m.View()
	if !strings.Contains(view, "RightCode: fetch failed") || !strings.Contains(view, "request timed out") {
		t.Errorf("view = %q", view)
	}
}

func TestView_InitialLoading(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Fetching subscriptions") {
		t.Errorf("loading view = %q", view)
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
	if m.Init() == nil {
		t.Error("Init should return the spinner tick")
	}
}
