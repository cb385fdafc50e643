package models

import (
	"testing"
	"time"
)

func TestUsedQuota(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		remaining float64
		want      float64
	}{
		{"normal", 100, 37.5, 62.5},
		{"fully remaining", 50, 50, 0},
		{"float noise below zero", 10, 10 + 1e-9, 0},
		{"clearly negative clamps", 10, 20, 0},
		{"exhausted", 30, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subscription{TotalQuota: tt.total, RemainingQuota: tt.remaining}
			got := s.UsedQuota()
			if got != tt.want {
				t.Errorf("UsedQuota() = %v, want %v", got, tt.want)
			}
			if got < 0 {
				t.Errorf("UsedQuota() = %v, must never be negative", got)
			}
		})
	}
}

func TestFilterExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	subs := []Subscription{
		{ID: 1, Name: "past", ExpiredAt: "2026-05-01T00:00:00Z"},
		{ID: 2, Name: "future", ExpiredAt: "2026-07-01T00:00:00Z"},
		{ID: 3, Name: "no expiry"},
		{ID: 4, Name: "garbage expiry", ExpiredAt: "not-a-date"},
	}

	filtered := FilterExpired(subs, now, false)
	if len(filtered) != 3 {
		t.Fatalf("expected 3 subscriptions after filtering, got %d", len(filtered))
	}
	for _, s := range filtered {
		if s.ID == 1 {
			t.Error("expired subscription should have been filtered")
		}
	}

	// includeExpired keeps everything
	all := FilterExpired(subs, now, true)
	if len(all) != 4 {
		t.Errorf("includeExpired should keep all 4, got %d", len(all))
	}
}

func TestFilterExpiredNullExpiry(t *testing.T) {
	// totalQuota=100, remainingQuota=37.5, expiredAt null: used 62.5, kept
	s := Subscription{ID: 1, Name: "basic", TotalQuota: 100, RemainingQuota: 37.5}
	if got := s.UsedQuota(); got != 62.5 {
		t.Errorf("UsedQuota() = %v, want 62.5", got)
	}

	filtered := FilterExpired([]Subscription{s}, time.Now(), false)
	if len(filtered) != 1 {
		t.Error("subscription without expiry must never be treated as expired")
	}
}

func TestPickDisplay(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := PickDisplay(nil); got != nil {
			t.Errorf("PickDisplay(nil) = %v, want nil", got)
		}
	})

	t.Run("smallest used wins", func(t *testing.T) {
		subs := []Subscription{
			{ID: 1, Name: "heavy", TotalQuota: 100, RemainingQuota: 10},
			{ID: 2, Name: "light", TotalQuota: 100, RemainingQuota: 90},
		}
		got := PickDisplay(subs)
		if got == nil || got.ID != 2 {
			t.Errorf("PickDisplay picked %+v, want ID 2", got)
		}
	})

	t.Run("ties keep original order", func(t *testing.T) {
		subs := []Subscription{
			{ID: 7, Name: "first", TotalQuota: 100, RemainingQuota: 50},
			{ID: 8, Name: "second", TotalQuota: 100, RemainingQuota: 50},
		}
		got := PickDisplay(subs)
		if got == nil || got.ID != 7 {
			t.Errorf("PickDisplay picked %+v, want first of equals (ID 7)", got)
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		subs := []Subscription{
			{ID: 1, TotalQuota: 100, RemainingQuota: 10},
			{ID: 2, TotalQuota: 100, RemainingQuota: 90},
		}
		PickDisplay(subs)
		if subs[0].ID != 1 || subs[1].ID != 2 {
			t.Error("PickDisplay reordered the caller's slice")
		}
	})
}

func TestExpiryTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"rfc3339", "2026-07-01T00:00:00Z", true},
		{"date only", "2026-07-01", true},
		{"no timezone", "2026-07-01T10:30:00", true},
		{"empty", "", false},
		{"garbage", "soon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subscription{ExpiredAt: tt.value}
			_, ok := s.ExpiryTime()
			if ok != tt.ok {
				t.Errorf("ExpiryTime() ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}
