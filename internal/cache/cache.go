// SPDX-License-Identifier: MIT

// Package cache stores raw feed payloads keyed by provider feed id. The
// memory store lives exactly as long as one aggregation run; the Redis store
// lets callers keep payloads across runs. Keys never include the day: a
// cached payload contains all days the provider published for that feed.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// PayloadStore is the backing store for fetched feed payloads.
type PayloadStore interface {
	// Get returns the cached payload for the feed id, if present.
	Get(ctx context.Context, feedID string) (*tv123.Feed, bool)
	// Put stores a payload for the feed id.
	Put(ctx context.Context, feedID string, feed *tv123.Feed)
}

// memoryStore is the run-scoped in-memory implementation. Entries are never
// evicted; the store is discarded with the run.
type memoryStore struct {
	mu    sync.RWMutex
	feeds map[string]*tv123.Feed
}

// NewMemoryStore creates an empty run-scoped payload store.
func NewMemoryStore() PayloadStore {
	return &memoryStore{feeds: make(map[string]*tv123.Feed)}
}

func (s *memoryStore) Get(_ context.Context, feedID string) (*tv123.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feed, ok := s.feeds[feedID]
	return feed, ok
}

func (s *memoryStore) Put(_ context.Context, feedID string, feed *tv123.Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds[feedID] = feed
}

// TTL used when a RedisStore is constructed with a non-positive TTL.
const defaultTTL = 6 * time.Hour
