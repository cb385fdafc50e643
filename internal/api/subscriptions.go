package api

import (
	"context"
	"net/http"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

const subscriptionsPath = "/subscriptions/list"

// FetchSubscriptions retrieves and parses the subscription list for the
// resolved credential.
func (c *Client) FetchSubscriptions(ctx context.Context, auth models.ResolvedAuth) (*models.SubscriptionListResult, error) {
	if !auth.IsConfigured() {
		return nil, ErrAuthMissing
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+auth.Secret)

	raw, err := c.fetchText(ctx, http.MethodGet, c.baseURL+subscriptionsPath, header, nil)
	if err != nil {
		return nil, err
	}
	return ParseSubscriptionList(raw)
}
