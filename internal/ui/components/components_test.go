package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if s.View() == "" {
		t.Error("View returned empty")
	}
	if s.ViewWithLabel() == "" {
		t.Error("ViewWithLabel returned empty")
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	m, cmd := s.Update(spinner.TickMsg{})
	_ = m
	if cmd == nil {
		t.Error("Update should return command for tick")
	}

	if s.Tick() == nil {
		t.Error("Tick should return command")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	s := RenderLineChart(data, 20, 5, "Tokens")
	if s == "" {
		t.Error("RenderLineChart returned empty")
	}
}

func TestRenderLineChartEmpty(t *testing.T) {
	s := RenderLineChart(nil, 20, 5, "Tokens")
	if !strings.Contains(s, "No data available") {
		t.Errorf("empty chart = %q", s)
	}
}

func TestRenderBarChart(t *testing.T) {
	values := []float64{80, 20}
	labels := []string{"gpt", "claude"}
	colors := []lipgloss.Color{lipgloss.Color("#ff6b6b"), lipgloss.Color("#51cf66")}

	s := RenderBarChart(values, labels, colors, 60)
	if s == "" {
		t.Fatal("RenderBarChart returned empty")
	}
	if !strings.Contains(s, "gpt") || !strings.Contains(s, "80.0%") {
		t.Errorf("bar chart missing label or value: %q", s)
	}
	if len(strings.Split(s, "\n")) != 2 {
		t.Error("expected one line per model")
	}
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderSparkline(data, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "gpt", Color: lipgloss.Color("#ffffff")},
	}
	s := RenderLegend(items)
	if !strings.Contains(s, "gpt") {
		t.Error("RenderLegend missing label")
	}
}
