// SPDX-License-Identifier: MIT

package tv123

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the 123TV guide endpoints. All requests share one rate
// limiter so concurrent day workers cannot hammer the provider.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
}

// Options controls client construction.
type Options struct {
	Timeout        time.Duration // per-request timeout (default 30s)
	RequestsPerSec int           // provider request budget (default 5)
}

// New creates a client for the given API base URL.
func New(base string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 5
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.RequestsPerSec),
	}
}

// ChannelGuide fetches the raw schedule payload for one provider feed id.
// A failed fetch is reported as ErrFeedUnavailable; callers treat it as
// non-fatal and classify the referencing channels as missing.
func (c *Client) ChannelGuide(ctx context.Context, feedID string) (*Feed, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.base + "/123tv/v1/epg/" + url.PathEscape(feedID) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("tv123: build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &ProviderError{Sentinel: ErrFeedUnavailable, Operation: "fetch", FeedID: feedID, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &ProviderError{Sentinel: ErrFeedUnavailable, Operation: "fetch", FeedID: feedID, Status: res.StatusCode}
	}

	var feed Feed
	if err := json.NewDecoder(res.Body).Decode(&feed); err != nil {
		return nil, &ProviderError{Sentinel: ErrBadResponse, Operation: "decode", FeedID: feedID, Err: err}
	}
	return &feed, nil
}
