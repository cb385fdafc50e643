package components

import (
	"strings"
	"testing"
)

func TestNewQuotaBar(t *testing.T) {
	bar := NewQuotaBar()
	if bar.percent != 0 {
		t.Errorf("percent = %f, want 0.0", bar.percent)
	}
}

func TestQuotaBar_Setters(t *testing.T) {
	bar := NewQuotaBar()
	bar.SetPercent(75.5)
	if bar.percent != 75.5 {
		t.Errorf("percent = %f, want 75.5", bar.percent)
	}

	bar.SetLabel("Pro")
	if bar.label != "Pro" {
		t.Errorf("label = %s, want Pro", bar.label)
	}

	bar.SetWidth(20)
}

func TestQuotaBar_View(t *testing.T) {
	bar := NewQuotaBar()
	view := bar.View(50.0, "Pro", 40)
	if view == "" {
		t.Error("View() returned empty string")
	}
}

func TestQuotaBar_ViewCompact(t *testing.T) {
	bar := NewQuotaBar()
	view := bar.ViewCompact(50.0, 20)
	if !strings.Contains(view, "50%") {
		t.Error("ViewCompact() should contain percentage")
	}
}

func TestQuotaBar_ViewExpired(t *testing.T) {
	bar := NewQuotaBar()
	view := bar.ViewExpired("Pro", 40)
	if !strings.Contains(view, "EXPIRED") {
		t.Error("ViewExpired() should contain marker")
	}
}

func TestRenderGradientBar(t *testing.T) {
	s := RenderGradientBar(50.0, 10)
	if len(s) == 0 {
		t.Error("RenderGradientBar returned empty")
	}
}

func TestSimpleQuotaBar(t *testing.T) {
	s := SimpleQuotaBar(50.0, "Pro", 40)
	if len(s) == 0 {
		t.Error("SimpleQuotaBar returned empty")
	}
}

func TestSimpleQuotaBarLoading(t *testing.T) {
	s := SimpleQuotaBarLoading("Pro", 40, 0)
	if len(s) == 0 {
		t.Error("SimpleQuotaBarLoading returned empty")
	}
}

func TestNewQuotaBarWithWidth(t *testing.T) {
	bar := NewQuotaBarWithWidth(30)
	_ = bar
}

func TestQuotaBar_InitUpdate(t *testing.T) {
	bar := NewQuotaBar()
	if bar.Init() != nil {
		t.Error("Init should return nil")
	}

	model, _ := bar.Update(nil)
	_ = model
}
