package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

const usageStatsPath = "/usage/stats"

// FetchUsageStats retrieves and parses usage statistics for the given date
// range. Dates are YYYY-MM-DD strings; granularity is day or hour.
func (c *Client) FetchUsageStats(ctx context.Context, auth models.ResolvedAuth, startDate, endDate string, granularity models.Granularity) (*models.UsageStats, error) {
	if !auth.IsConfigured() {
		return nil, ErrAuthMissing
	}
	if !granularity.Valid() {
		return nil, fmt.Errorf("invalid granularity: %q", granularity)
	}

	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("granularity", string(granularity))

	header := http.Header{}
	header.Set("Authorization", "Bearer "+auth.Secret)

	raw, err := c.fetchText(ctx, http.MethodGet, c.baseURL+usageStatsPath+"?"+q.Encode(), header, nil)
	if err != nil {
		return nil, err
	}
	return ParseUsageStats(raw)
}
