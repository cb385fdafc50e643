package projection

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// usagePalette is the fixed color set for the usage distribution; slices
// beyond its length cycle back to the start.
var usagePalette = []string{
	"#7aa2f7", // blue
	"#9ece6a", // green
	"#e0af68", // yellow
	"#f7768e", // red
	"#bb9af7", // purple
	"#7dcfff", // cyan
}

// AccountPayload announces the active account to the dashboard. Changed is
// set when the payload follows an account switch rather than a plain refresh.
type AccountPayload struct {
	Label   string
	Alias   string
	Changed bool
	At      time.Time
}

// SubscriptionsPayload carries one subscriptions fetch outcome.
type SubscriptionsPayload struct {
	OK            bool
	Total         int
	Subscriptions []models.Subscription
	Error         string
	At            time.Time
}

// ModelSlice is one entry of the usage distribution, colored for display.
type ModelSlice struct {
	models.ModelRatio
	Color string
}

// UsagePayload carries one usage-stats fetch outcome.
type UsagePayload struct {
	OK            bool
	TotalRequests int
	TotalTokens   int
	TotalCost     float64
	Distribution  []ModelSlice
	TrendTokens   []float64
	TrendDates    []string
	Error         string
	At            time.Time
}

// ProjectAccount builds the account payload.
func ProjectAccount(auth models.ResolvedAuth, changed bool, at time.Time) AccountPayload {
	return AccountPayload{
		Label:   auth.AccountLabel,
		Alias:   auth.AccountAlias,
		Changed: changed,
		At:      at,
	}
}

// ProjectSubscriptions builds the subscriptions payload from a fetch outcome.
func ProjectSubscriptions(result *models.SubscriptionListResult, err error, at time.Time) SubscriptionsPayload {
	if err != nil {
		return SubscriptionsPayload{Error: err.Error(), At: at}
	}
	return SubscriptionsPayload{
		OK:            true,
		Total:         result.Total,
		Subscriptions: result.Subscriptions,
		At:            at,
	}
}

// ProjectUsage builds the usage payload from a fetch outcome. The
// distribution is sorted descending by token total with palette colors
// cycling by index.
func ProjectUsage(stats *models.UsageStats, err error, at time.Time) UsagePayload {
	if err != nil {
		return UsagePayload{Error: err.Error(), At: at}
	}

	ratios := stats.TokenRatios()
	sort.SliceStable(ratios, func(i, j int) bool {
		return ratios[i].TotalTokens > ratios[j].TotalTokens
	})

	return UsagePayload{
		OK:            true,
		TotalRequests: stats.TotalRequests,
		TotalTokens:   stats.TotalTokens,
		TotalCost:     stats.TotalCost,
		Distribution: lo.Map(ratios, func(r models.ModelRatio, i int) ModelSlice {
			return ModelSlice{ModelRatio: r, Color: usagePalette[i%len(usagePalette)]}
		}),
		TrendTokens: stats.TrendTokens(),
		TrendDates: lo.Map(stats.Trend, func(p models.TrendPoint, _ int) string {
			return p.Date
		}),
		At: at,
	}
}
