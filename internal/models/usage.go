package models

import "github.com/samber/lo"

// Granularity is the time-bucket size for usage statistics.
type Granularity string

const (
	// GranularityDay buckets usage per day.
	GranularityDay Granularity = "day"
	// GranularityHour buckets usage per hour.
	GranularityHour Granularity = "hour"
)

// Valid reports whether g is one of the two supported granularities.
func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityHour
}

// ModelUsage is the usage detail for a single model.
type ModelUsage struct {
	Model       string
	Requests    int
	TotalTokens int
	TotalCost   float64
}

// TrendPoint is one bucket of the usage trend series.
type TrendPoint struct {
	Date        string
	Requests    int
	TotalTokens int
	TotalCost   float64
}

// UsageStats is the parsed usage-statistics endpoint response.
// Fetch-scoped, never persisted.
type UsageStats struct {
	TotalRequests int
	TotalTokens   int
	TotalCost     float64
	PerModel      []ModelUsage
	Trend         []TrendPoint
}

// ModelRatio is a model's share of the overall token total.
type ModelRatio struct {
	ModelUsage
	Ratio float64
}

// TokenRatios derives each model's percentage of the overall token total,
// zero for every model when the overall total is zero. Order follows PerModel.
func (u UsageStats) TokenRatios() []ModelRatio {
	return lo.Map(u.PerModel, func(m ModelUsage, _ int) ModelRatio {
		ratio := 0.0
		if u.TotalTokens > 0 {
			ratio = float64(m.TotalTokens) / float64(u.TotalTokens) * 100
		}
		return ModelRatio{ModelUsage: m, Ratio: ratio}
	})
}

// TrendTokens extracts the token series from the trend, for charting.
func (u UsageStats) TrendTokens() []float64 {
	return lo.Map(u.Trend, func(p TrendPoint, _ int) float64 {
		return float64(p.TotalTokens)
	})
}

// LoginResult is the parsed login endpoint response.
type LoginResult struct {
	UserToken string
	Username  string
	Email     string
}
