package projection

import (
	"errors"
	"testing"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

func configuredAuth() models.ResolvedAuth {
	return models.ResolvedAuth{Secret: "tok", AccountLabel: "work", AccountAlias: "work"}
}

func TestProjectStatusOK(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, Name: "Pro", TotalQuota: 100, RemainingQuota: 20},
		{ID: 2, Name: "Fresh", TotalQuota: 100, RemainingQuota: 62.5},
	}

	status := ProjectStatus(configuredAuth(), subs, nil, time.Now())
	if status.State != StatusOK {
		t.Fatalf("state = %d, want StatusOK", status.State)
	}
	// Fresh has the smaller used quota and becomes the display subscription.
	if status.Line != "work · Fresh remaining 62.50" {
		t.Errorf("line = %q", status.Line)
	}
	if status.Selected == nil || status.Selected.ID != 2 {
		t.Errorf("selected = %+v", status.Selected)
	}

	if len(status.Detail) != 2 {
		t.Fatalf("detail rows = %d", len(status.Detail))
	}
	// Detail rows are least-used first, selected row flagged.
	if status.Detail[0].Name != "Fresh" || !status.Detail[0].Selected {
		t.Errorf("first row = %+v", status.Detail[0])
	}
	if status.Detail[1].Selected {
		t.Error("non-selected row flagged")
	}
	if status.Detail[0].Used != "37.50" || status.Detail[0].Remaining != "62.50" {
		t.Errorf("row formatting: %+v", status.Detail[0])
	}
}

func TestProjectStatusSentinels(t *testing.T) {
	now := time.Now()

	t.Run("not configured", func(t *testing.T) {
		status := ProjectStatus(models.Unconfigured(), nil, nil, now)
		if status.State != StatusNotConfigured || status.Line != notConfiguredLine {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("no subscription", func(t *testing.T) {
		status := ProjectStatus(configuredAuth(), nil, nil, now)
		if status.State != StatusNoSubscription || status.Line != noSubscriptionLine {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("fetch error wins over stale data", func(t *testing.T) {
		subs := []models.Subscription{{ID: 1, Name: "Pro", TotalQuota: 10, RemainingQuota: 5}}
		status := ProjectStatus(configuredAuth(), subs, errors.New("request timed out"), now)
		if status.State != StatusError {
			t.Fatalf("state = %d, want StatusError", status.State)
		}
		if status.Message != "request timed out" {
			t.Errorf("message = %q", status.Message)
		}
		if status.Selected != nil {
			t.Error("error status must not carry a stale selection")
		}
	})
}

func TestProjectStatusDetailFormatting(t *testing.T) {
	yes := true
	subs := []models.Subscription{{
		ID: 1, Name: "Pro", TotalQuota: 100, RemainingQuota: 40,
		ExpiredAt:   "2027-03-01T00:00:00Z",
		LastResetAt: models.OptionalString{Present: true, Value: "2026-08-27"},
		ResetToday:  &yes,
	}, {
		ID: 2, Name: "Bare", TotalQuota: 100, RemainingQuota: 10,
		LastResetAt: models.OptionalString{Present: true, Null: true},
	}}

	status := ProjectStatus(configuredAuth(), subs, nil, time.Now())
	rows := status.Detail

	if rows[0].Expires != "2027-03-01" || rows[0].LastReset != "08-27" || rows[0].ResetToday != "yes" {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[1].Expires != "-" || rows[1].LastReset != "-" || rows[1].ResetToday != "-" {
		t.Errorf("placeholder row = %+v", rows[1])
	}
}

func TestProjectAccount(t *testing.T) {
	at := time.Now()
	payload := ProjectAccount(configuredAuth(), true, at)
	if payload.Label != "work" || payload.Alias != "work" || !payload.Changed || !payload.At.Equal(at) {
		t.Errorf("payload = %+v", payload)
	}
}

func TestProjectSubscriptions(t *testing.T) {
	at := time.Now()
	result := &models.SubscriptionListResult{
		Total:         1,
		Subscriptions: []models.Subscription{{ID: 1, Name: "Pro"}},
	}

	ok := ProjectSubscriptions(result, nil, at)
	if !ok.OK || ok.Total != 1 || len(ok.Subscriptions) != 1 || !ok.At.Equal(at) {
		t.Errorf("payload = %+v", ok)
	}

	bad := ProjectSubscriptions(nil, errors.New("boom"), at)
	if bad.OK || bad.Error != "boom" {
		t.Errorf("payload = %+v", bad)
	}
}

func TestProjectUsage(t *testing.T) {
	at := time.Now()
	stats := &models.UsageStats{
		TotalRequests: 50,
		TotalTokens:   1000,
		TotalCost:     1.25,
		PerModel: []models.ModelUsage{
			{Model: "claude", TotalTokens: 200},
			{Model: "gpt", TotalTokens: 800},
		},
		Trend: []models.TrendPoint{
			{Date: "2026-08-27", TotalTokens: 400},
			{Date: "2026-08-28", TotalTokens: 600},
		},
	}

	payload := ProjectUsage(stats, nil, at)
	if !payload.OK {
		t.Fatalf("payload = %+v", payload)
	}
	// Distribution sorted descending by tokens.
	if payload.Distribution[0].Model != "gpt" || payload.Distribution[1].Model != "claude" {
		t.Errorf("order: %+v", payload.Distribution)
	}
	if payload.Distribution[0].Ratio != 80.0 || payload.Distribution[1].Ratio != 20.0 {
		t.Errorf("ratios: %+v", payload.Distribution)
	}
	if payload.Distribution[0].Color != usagePalette[0] || payload.Distribution[1].Color != usagePalette[1] {
		t.Errorf("colors: %+v", payload.Distribution)
	}
	if len(payload.TrendTokens) != 2 || payload.TrendTokens[1] != 600 {
		t.Errorf("trend: %v", payload.TrendTokens)
	}

	bad := ProjectUsage(nil, errors.New("boom"), at)
	if bad.OK || bad.Error != "boom" {
		t.Errorf("payload = %+v", bad)
	}
}

func TestUsagePaletteCycles(t *testing.T) {
	perModel := make([]models.ModelUsage, len(usagePalette)+2)
	for i := range perModel {
		perModel[i] = models.ModelUsage{Model: string(rune('a' + i)), TotalTokens: 100 - i}
	}
	stats := &models.UsageStats{TotalTokens: 1000, PerModel: perModel}

	payload := ProjectUsage(stats, nil, time.Now())
	last := payload.Distribution[len(usagePalette)]
	if last.Color != usagePalette[0] {
		t.Errorf("palette must cycle: %q", last.Color)
	}
}
