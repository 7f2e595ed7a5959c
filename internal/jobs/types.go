// SPDX-License-Identifier: MIT

// Package jobs drives a full guide refresh: list channels, aggregate each day
// of the provider horizon, persist the listings and write the XMLTV guide.
package jobs

import (
	"context"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/cache"
	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/config"
	"github.com/cabernetwork/provider-video-123tv/internal/epg"
)

// ChannelLister reads the channel lineup for one provider instance.
type ChannelLister interface {
	List(ctx context.Context, instance string) (map[string]channels.Record, error)
}

// ListingStore persists finished day listings.
type ListingStore interface {
	SaveProgramList(ctx context.Context, instance string, day time.Time, programs []epg.NormalizedProgram) error
}

// Deps holds all dependencies for a refresh run.
type Deps struct {
	Config   config.AppConfig
	Fetcher  epg.Fetcher
	Resolver epg.DetailResolver
	Channels ChannelLister
	Store    ListingStore
	Metrics  epg.MetricsRecorder
	// Clock supplies "now"; nil means time.Now.
	Clock func() time.Time
	// NewPayloadStore builds the feed-payload store for one day worker.
	// Each worker gets its own instance so concurrent day aggregations
	// never share a cache. Nil means run-scoped memory stores.
	NewPayloadStore func() cache.PayloadStore
}

// Status is the outcome of one refresh run.
type Status struct {
	RunID    string    `json:"run_id"`
	LastRun  time.Time `json:"last_run"`
	Days     int       `json:"days"`
	Programs int       `json:"programs"`
	Error    string    `json:"error,omitempty"`
}

// DaysToPull returns the day offsets one refresh covers. The provider
// publishes at most 3 days of EPG; each channel differs in how many it has.
func DaysToPull(horizon int) []int {
	if horizon < 1 {
		horizon = 1
	}
	if horizon > 3 {
		horizon = 3
	}
	days := make([]int, horizon)
	for i := range days {
		days[i] = i
	}
	return days
}
