// SPDX-License-Identifier: MIT

package epg

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cabernetwork/provider-video-123tv/internal/cache"
	"github.com/cabernetwork/provider-video-123tv/internal/log"
	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// FeedCache hands out raw feed payloads, fetching each feed id at most once
// per run. A failed fetch marks the feed id unavailable for the remainder of
// the run; there is no retry inside a run. Channels sharing one feed id share
// the cached payload.
type FeedCache struct {
	fetcher Fetcher
	store   cache.PayloadStore
	logger  zerolog.Logger

	mu     sync.Mutex
	failed map[string]struct{} // run-scoped negative entries
}

// NewFeedCache creates a cache over the given fetcher and backing store.
// Pass cache.NewMemoryStore() for the run-scoped default.
func NewFeedCache(fetcher Fetcher, store cache.PayloadStore) *FeedCache {
	return &FeedCache{
		fetcher: fetcher,
		store:   store,
		logger:  log.WithComponent("feedcache"),
		failed:  make(map[string]struct{}),
	}
}

// Get returns the payload for the feed id, fetching it on first request.
// Returns tv123.ErrFeedUnavailable for feed ids whose fetch already failed
// this run.
func (c *FeedCache) Get(ctx context.Context, feedID string) (*tv123.Feed, error) {
	c.mu.Lock()
	_, unavailable := c.failed[feedID]
	c.mu.Unlock()
	if unavailable {
		return nil, tv123.ErrFeedUnavailable
	}

	if feed, ok := c.store.Get(ctx, feedID); ok {
		return feed, nil
	}

	feed, err := c.fetcher.ChannelGuide(ctx, feedID)
	if err != nil {
		c.logger.Warn().Err(err).Str(log.FieldFeedID, feedID).
			Str(log.FieldEvent, "feed.fetch_failed").
			Msg("feed unavailable for the rest of this run")
		c.mu.Lock()
		c.failed[feedID] = struct{}{}
		c.mu.Unlock()
		return nil, err
	}

	c.store.Put(ctx, feedID, feed)
	return feed, nil
}
