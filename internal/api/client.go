// Package api talks to the RightCode billing API: a single fetch primitive
// with a hard timeout, defensive response parsers, and one function per
// endpoint.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/logger"
)

// bodySnippetLen bounds how much of an error body is kept for diagnostics.
const bodySnippetLen = 200

// Client issues requests against one base URL with a per-request timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    atomic.Int64
}

// NewClient creates a client for the given base URL. The timeout applies to
// each individual request, not to the client's lifetime.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
	c.timeout.Store(int64(timeout))
	return c
}

// SetTimeout replaces the per-request timeout, used when the configured
// request timeout changes. Safe to call while a request is in flight; the
// new value applies from the next request.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout.Store(int64(timeout))
}

// fetchText issues one request and returns the raw response body. The
// timeout context is armed at call start and released on every exit path.
// Non-2xx responses keep the first 200 characters of the body for
// diagnostics.
func (c *Client) fetchText(ctx context.Context, method, url string, header http.Header, body io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.timeout.Load()))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return "", &RequestError{Kind: KindNetwork, Err: err}
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(ctx, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := bodySnippet(string(data))
		logger.Warn("request failed",
			"method", method, "url", url, "status", resp.StatusCode, "body", snippet)
		return "", &RequestError{Kind: KindHTTPStatus, Status: resp.StatusCode, Body: snippet}
	}

	return string(data), nil
}

// transportError maps a transport failure to Timeout or Network.
func transportError(ctx context.Context, err error) *RequestError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &RequestError{Kind: KindTimeout, Err: err}
	}
	return &RequestError{Kind: KindNetwork, Err: err}
}

func bodySnippet(body string) string {
	if len(body) > bodySnippetLen {
		return body[:bodySnippetLen]
	}
	return body
}
