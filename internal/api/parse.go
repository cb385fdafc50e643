package api

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// The parsers validate field by field: required fields missing from an array
// entry drop that entry, never the whole batch; aggregate totals default to
// zero; only a non-object top level is fatal.

func decodeObject(raw string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, &ParseError{Kind: ParseNotAnObject}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ParseError{Kind: ParseNotAnObject}
	}
	return obj, nil
}

func finiteNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func boolValue(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// numberOrZero reads an aggregate total, defaulting to 0 when absent or
// non-finite.
func numberOrZero(obj map[string]any, key string) float64 {
	if f, ok := finiteNumber(obj[key]); ok {
		return f
	}
	return 0
}

// ParseSubscriptionList validates the subscriptions endpoint response.
func ParseSubscriptionList(raw string) (*models.SubscriptionListResult, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	result := &models.SubscriptionListResult{
		Total: int(numberOrZero(obj, "total")),
	}

	entries, _ := obj["subscriptions"].([]any)
	for _, e := range entries {
		if sub, ok := parseSubscription(e); ok {
			result.Subscriptions = append(result.Subscriptions, sub)
		}
	}
	return result, nil
}

// parseSubscription validates one array entry. Entries missing any required
// field are dropped by returning false.
func parseSubscription(v any) (models.Subscription, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Subscription{}, false
	}

	id, ok := finiteNumber(obj["id"])
	if !ok {
		return models.Subscription{}, false
	}
	name, ok := stringValue(obj["name"])
	if !ok {
		return models.Subscription{}, false
	}
	totalQuota, ok := finiteNumber(obj["total_quota"])
	if !ok {
		return models.Subscription{}, false
	}
	remainingQuota, ok := finiteNumber(obj["remaining_quota"])
	if !ok {
		return models.Subscription{}, false
	}

	sub := models.Subscription{
		ID:             int(id),
		Name:           name,
		TotalQuota:     totalQuota,
		RemainingQuota: remainingQuota,
	}

	if s, ok := stringValue(obj["expired_at"]); ok {
		sub.ExpiredAt = s
	}
	// last_reset_at distinguishes an explicit null from an absent key.
	if v, present := obj["last_reset_at"]; present {
		sub.LastResetAt.Present = true
		if v == nil {
			sub.LastResetAt.Null = true
		} else if s, ok := stringValue(v); ok {
			sub.LastResetAt.Value = s
		} else {
			sub.LastResetAt = models.OptionalString{}
		}
	}
	if b, ok := boolValue(obj["reset_today"]); ok {
		sub.ResetToday = &b
	}

	return sub, true
}

// ParseUsageStats validates the usage-stats endpoint response.
func ParseUsageStats(raw string) (*models.UsageStats, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	stats := &models.UsageStats{
		TotalRequests: int(numberOrZero(obj, "total_requests")),
		TotalTokens:   int(numberOrZero(obj, "total_tokens")),
		TotalCost:     numberOrZero(obj, "total_cost"),
	}

	details, _ := obj["details_by_model"].([]any)
	for _, e := range details {
		if mu, ok := parseModelUsage(e); ok {
			stats.PerModel = append(stats.PerModel, mu)
		}
	}

	// Older responses carry only the tokens_by_model map; synthesize
	// per-model entries from it when the detail list is absent.
	if len(stats.PerModel) == 0 {
		if byModel, ok := obj["tokens_by_model"].(map[string]any); ok {
			stats.PerModel = modelUsageFromTokens(byModel)
		}
	}

	trend, _ := obj["trend"].([]any)
	for _, e := range trend {
		if tp, ok := parseTrendPoint(e); ok {
			stats.Trend = append(stats.Trend, tp)
		}
	}

	return stats, nil
}

func parseModelUsage(v any) (models.ModelUsage, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.ModelUsage{}, false
	}
	model, ok := stringValue(obj["model"])
	if !ok {
		return models.ModelUsage{}, false
	}
	requests, ok := finiteNumber(obj["requests"])
	if !ok {
		return models.ModelUsage{}, false
	}
	tokens, ok := finiteNumber(obj["total_tokens"])
	if !ok {
		return models.ModelUsage{}, false
	}
	cost, ok := finiteNumber(obj["total_cost"])
	if !ok {
		return models.ModelUsage{}, false
	}
	return models.ModelUsage{
		Model:       model,
		Requests:    int(requests),
		TotalTokens: int(tokens),
		TotalCost:   cost,
	}, true
}

func modelUsageFromTokens(byModel map[string]any) []models.ModelUsage {
	usages := make([]models.ModelUsage, 0, len(byModel))
	for model, v := range byModel {
		tokens, ok := finiteNumber(v)
		if !ok {
			continue
		}
		usages = append(usages, models.ModelUsage{Model: model, TotalTokens: int(tokens)})
	}
	// Map iteration order is random; sort by tokens descending, name as
	// tiebreak, so repeated parses agree.
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].TotalTokens != usages[j].TotalTokens {
			return usages[i].TotalTokens > usages[j].TotalTokens
		}
		return usages[i].Model < usages[j].Model
	})
	return usages
}

func parseTrendPoint(v any) (models.TrendPoint, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.TrendPoint{}, false
	}
	date, ok := stringValue(obj["date"])
	if !ok {
		return models.TrendPoint{}, false
	}
	tokens, ok := finiteNumber(obj["total_tokens"])
	if !ok {
		return models.TrendPoint{}, false
	}
	return models.TrendPoint{
		Date:        date,
		Requests:    int(numberOrZero(obj, "requests")),
		TotalTokens: int(tokens),
		TotalCost:   numberOrZero(obj, "total_cost"),
	}, true
}

// ParseLoginResult validates the login endpoint response.
func ParseLoginResult(raw string) (*models.LoginResult, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	token, ok := stringValue(obj["user_token"])
	if !ok || token == "" {
		return nil, &ParseError{Kind: ParseMissingField, Field: "user_token"}
	}

	result := &models.LoginResult{UserToken: token}
	if s, ok := stringValue(obj["username"]); ok {
		result.Username = s
	}
	if s, ok := stringValue(obj["email"]); ok {
		result.Email = s
	}
	return result, nil
}
