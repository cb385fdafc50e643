package api

import (
	"errors"
	"testing"
)

func TestParseSubscriptionList(t *testing.T) {
	raw := `{
		"total": 3,
		"subscriptions": [
			{"id": 1, "name": "Pro", "total_quota": 100, "remaining_quota": 37.5, "expired_at": "2027-01-01", "last_reset_at": null, "reset_today": true},
			{"id": 2, "name": "Trial", "total_quota": 10, "remaining_quota": 10},
			{"name": "missing id", "total_quota": 5, "remaining_quota": 5},
			{"id": 4, "total_quota": 5, "remaining_quota": 5},
			"not an object"
		]
	}`

	result, err := ParseSubscriptionList(raw)
	if err != nil {
		t.Fatalf("ParseSubscriptionList failed: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("total = %d, want 3", result.Total)
	}
	if len(result.Subscriptions) != 2 {
		t.Fatalf("expected 2 valid subscriptions, got %d", len(result.Subscriptions))
	}

	first := result.Subscriptions[0]
	if first.UsedQuota() != 62.5 {
		t.Errorf("UsedQuota = %v, want 62.5", first.UsedQuota())
	}
	if !first.LastResetAt.Present || !first.LastResetAt.Null {
		t.Errorf("explicit null last_reset_at lost: %+v", first.LastResetAt)
	}
	if first.ResetToday == nil || !*first.ResetToday {
		t.Error("reset_today not carried through")
	}

	second := result.Subscriptions[1]
	if second.LastResetAt.Present {
		t.Error("absent last_reset_at must not read as present")
	}
	if second.ExpiredAt != "" {
		t.Errorf("absent expired_at = %q", second.ExpiredAt)
	}
}

func TestParseSubscriptionListDefaults(t *testing.T) {
	result, err := ParseSubscriptionList(`{}`)
	if err != nil {
		t.Fatalf("empty object should parse: %v", err)
	}
	if result.Total != 0 || len(result.Subscriptions) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestParseSubscriptionListNotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `42`, `not json at all`} {
		_, err := ParseSubscriptionList(raw)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) || parseErr.Kind != ParseNotAnObject {
			t.Errorf("ParseSubscriptionList(%q) = %v, want NotAnObject", raw, err)
		}
	}
}

func TestParseUsageStats(t *testing.T) {
	raw := `{
		"total_requests": 50,
		"total_tokens": 1000,
		"total_cost": 1.25,
		"details_by_model": [
			{"model": "gpt", "requests": 40, "total_tokens": 800, "total_cost": 1.0},
			{"model": "claude", "requests": 10, "total_tokens": 200, "total_cost": 0.25},
			{"model": "broken", "requests": 1}
		],
		"trend": [
			{"date": "2026-08-27", "requests": 20, "total_tokens": 400, "total_cost": 0.5},
			{"date": "2026-08-28", "total_tokens": 600},
			{"requests": 5, "total_tokens": 100}
		]
	}`

	stats, err := ParseUsageStats(raw)
	if err != nil {
		t.Fatalf("ParseUsageStats failed: %v", err)
	}
	if stats.TotalRequests != 50 || stats.TotalTokens != 1000 || stats.TotalCost != 1.25 {
		t.Errorf("totals: %+v", stats)
	}
	if len(stats.PerModel) != 2 {
		t.Fatalf("expected 2 valid model entries, got %d", len(stats.PerModel))
	}
	if len(stats.Trend) != 2 {
		t.Fatalf("expected 2 valid trend points, got %d", len(stats.Trend))
	}
	if stats.Trend[1].Requests != 0 {
		t.Errorf("absent trend requests should default to 0, got %d", stats.Trend[1].Requests)
	}

	ratios := stats.TokenRatios()
	if ratios[0].Ratio != 80.0 || ratios[1].Ratio != 20.0 {
		t.Errorf("ratios = %v and %v, want 80 and 20", ratios[0].Ratio, ratios[1].Ratio)
	}
}

func TestParseUsageStatsTokensByModelFallback(t *testing.T) {
	raw := `{
		"total_tokens": 1000,
		"tokens_by_model": {"gpt": 800, "claude": 200}
	}`

	stats, err := ParseUsageStats(raw)
	if err != nil {
		t.Fatalf("ParseUsageStats failed: %v", err)
	}
	if len(stats.PerModel) != 2 {
		t.Fatalf("expected 2 synthesized entries, got %d", len(stats.PerModel))
	}
	// Sorted by tokens descending.
	if stats.PerModel[0].Model != "gpt" || stats.PerModel[1].Model != "claude" {
		t.Errorf("order: %+v", stats.PerModel)
	}

	ratios := stats.TokenRatios()
	sum := ratios[0].Ratio + ratios[1].Ratio
	if ratios[0].Ratio != 80.0 || ratios[1].Ratio != 20.0 || sum != 100.0 {
		t.Errorf("ratios = %v, want 80 + 20 = 100", ratios)
	}
}

func TestParseUsageStatsDefaults(t *testing.T) {
	stats, err := ParseUsageStats(`{"total_tokens": "not a number"}`)
	if err != nil {
		t.Fatalf("defaulting parse failed: %v", err)
	}
	if stats.TotalTokens != 0 {
		t.Errorf("non-numeric total must default to 0, got %d", stats.TotalTokens)
	}
}

func TestParseLoginResult(t *testing.T) {
	result, err := ParseLoginResult(`{"user_token": "tok", "username": "u", "email": "u@x"}`)
	if err != nil {
		t.Fatalf("ParseLoginResult failed: %v", err)
	}
	if result.UserToken != "tok" || result.Username != "u" || result.Email != "u@x" {
		t.Errorf("unexpected result: %+v", result)
	}

	_, err = ParseLoginResult(`{"username": "u"}`)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != ParseMissingField || parseErr.Field != "user_token" {
		t.Errorf("missing token: %v", err)
	}

	_, err = ParseLoginResult(`{"user_token": ""}`)
	if !errors.As(err, &parseErr) || parseErr.Kind != ParseMissingField {
		t.Errorf("empty token: %v", err)
	}
}
