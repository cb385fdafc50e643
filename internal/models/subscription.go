package models

import (
	"sort"
	"time"
)

// usedQuotaEpsilon absorbs floating-point noise just below zero.
const usedQuotaEpsilon = 1e-8

// OptionalString carries a string field that distinguishes an explicit
// JSON null from an absent key.
type OptionalString struct {
	Value   string
	Null    bool
	Present bool
}

// Subscription is one quota allowance returned by the subscriptions endpoint.
// Reconstructed fresh on every fetch; never persisted.
type Subscription struct {
	ID             int
	Name           string
	TotalQuota     float64
	RemainingQuota float64
	ExpiredAt      string
	LastResetAt    OptionalString
	ResetToday     *bool
}

// UsedQuota returns total minus remaining, floor-clamped at zero. Values in
// (-1e-8, 0) are treated as exactly zero.
func (s Subscription) UsedQuota() float64 {
	used := s.TotalQuota - s.RemainingQuota
	if used < 0 && used > -usedQuotaEpsilon {
		return 0
	}
	if used < 0 {
		return 0
	}
	return used
}

// ExpiryTime parses the expiry timestamp. The second return is false when
// the field is absent or unparsable; such subscriptions are never treated
// as expired.
func (s Subscription) ExpiryTime() (time.Time, bool) {
	return ParseTimestamp(s.ExpiredAt)
}

// ParseTimestamp parses the timestamp formats the billing API emits.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SubscriptionListResult is the parsed subscriptions endpoint response.
type SubscriptionListResult struct {
	Total         int
	Subscriptions []Subscription
}

// FilterExpired drops subscriptions whose expiry is before now, unless
// includeExpired is set. Absent or unparsable expiry never counts as expired.
func FilterExpired(subs []Subscription, now time.Time, includeExpired bool) []Subscription {
	if includeExpired {
		return subs
	}
	filtered := make([]Subscription, 0, len(subs))
	for _, s := range subs {
		if t, ok := s.ExpiryTime(); ok && t.Before(now) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// PickDisplay selects the subscription with the smallest used quota. The
// sort is stable, so ties keep original order. Returns nil for an empty list.
func PickDisplay(subs []Subscription) *Subscription {
	if len(subs) == 0 {
		return nil
	}
	sorted := make([]Subscription, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsedQuota() < sorted[j].UsedQuota()
	})
	pick := sorted[0]
	return &pick
}
