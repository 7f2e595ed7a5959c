// SPDX-License-Identifier: MIT

package epg

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/log"
	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// Config holds the derivation knobs the aggregator needs.
type Config struct {
	StartAdjustment int  // seconds added to every event start
	EndAdjustment   int  // seconds added to every event end
	EpisodeAdj      int  // offset added to provider episode numbers
	DetailsEnabled  bool // program detail resolution on/off
}

// Aggregator builds the full-day program listing for one provider instance.
// One aggregation run is single-threaded; concurrent day workers must each
// use their own FeedCache instance.
type Aggregator struct {
	cfg      Config
	cache    *FeedCache
	resolver DetailResolver
	metrics  MetricsRecorder
	loc      *time.Location
	logger   zerolog.Logger
}

// NewAggregator wires an aggregator. loc resolves output timestamps; nil
// selects the system local zone. metrics may be nil.
func NewAggregator(cfg Config, cache *FeedCache, resolver DetailResolver, metrics MetricsRecorder, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &Aggregator{
		cfg:      cfg,
		cache:    cache,
		resolver: resolver,
		metrics:  metrics,
		loc:      loc,
		logger:   log.WithComponent("aggregator"),
	}
}

// acceptedEvent is one deduplicated raw event awaiting normalization,
// retained in first-seen order so output is deterministic.
type acceptedEvent struct {
	ch  channels.Record
	raw tv123.RawEvent
}

// DayStart returns the UTC midnight `dayOffset` days after now's UTC day.
func DayStart(now time.Time, dayOffset int) time.Time {
	utcNow := now.UTC()
	midnight := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, dayOffset)
}

// AggregateDay builds the listing for the UTC day `dayOffset` days after
// now's UTC midnight. The provider documents a 3-day horizon (offsets 0-2).
func (a *Aggregator) AggregateDay(ctx context.Context, directory map[string]channels.Record, dayOffset int, now time.Time) []NormalizedProgram {
	dayStart := DayStart(now, dayOffset)
	programs := a.aggregate(ctx, directory, dayOffset, dayStart, now)

	a.metrics.RecordDayPrograms(dayOffset, len(programs))
	return programs
}

// aggregate scans every enabled channel for the given day start, dedupes
// events by (channel, start) identity, normalizes accepted events and
// gap-fills channels without usable data.
func (a *Aggregator) aggregate(ctx context.Context, directory map[string]channels.Record, dayOffset int, dayStart, now time.Time) []NormalizedProgram {
	startSeconds := dayStart.Unix()
	nowSeconds := now.UTC().Unix()

	var (
		accepted  []acceptedEvent
		missing   []string
		seen      = make(map[EventKey]struct{})
		dataFound = false
	)

	for _, id := range channels.SortedIDs(directory) {
		ch := directory[id]
		if !ch.Enabled {
			continue
		}
		if ch.EPGID == nil {
			// Provider has no feed for this channel; it only ever gets placeholders.
			missing = append(missing, id)
			continue
		}

		feed, err := a.cache.Get(ctx, *ch.EPGID)
		if err != nil {
			a.metrics.IncFeedFailure()
			missing = append(missing, id)
			continue
		}

		bucket, ok := feed.Day(startSeconds)
		if !ok {
			// An absent bucket only counts as missing once another channel
			// has proven the provider published this day at all. Before that
			// it is "no information", or every channel would be flooded with
			// placeholders on days the provider has not populated yet.
			if dataFound {
				missing = append(missing, id)
			}
			continue
		}

		fresh := false
		for _, ev := range bucket {
			if ev.End > nowSeconds {
				fresh = true
				break
			}
		}
		if !fresh {
			// Bucket exists but every event already ended: stale data.
			missing = append(missing, id)
			continue
		}

		a.logger.Debug().
			Str(log.FieldChannel, id).
			Str(log.FieldEvent, "channel.fresh").
			Msg("processing EPG for channel")

		dataFound = true
		for _, ev := range bucket {
			key := EventKey{ChannelID: id, Start: ev.Start}
			if _, dup := seen[key]; dup {
				a.metrics.IncDuplicateDropped()
				continue
			}
			seen[key] = struct{}{}
			accepted = append(accepted, acceptedEvent{ch: ch, raw: ev})
		}
	}

	a.logger.Info().
		Int(log.FieldPrograms, len(accepted)).
		Time(log.FieldDay, dayStart).
		Str(log.FieldEvent, "day.scan_done").
		Msg("processing programs for day")

	programs := make([]NormalizedProgram, 0, len(accepted))
	for _, ae := range accepted {
		p, err := a.normalize(ctx, ae.ch, ae.raw)
		if err != nil {
			if errors.Is(err, ErrDetailNotFound) {
				a.metrics.IncDetailMissing()
				a.logger.Warn().
					Str(log.FieldProgram, ae.raw.ID).
					Str(log.FieldChannel, ae.ch.ID).
					Str(log.FieldEvent, "program.detail_missing").
					Msg("EPG program details missing")
				continue
			}
			a.logger.Warn().Err(err).
				Str(log.FieldProgram, ae.raw.ID).
				Str(log.FieldEvent, "program.normalize_failed").
				Msg("dropping event")
			continue
		}
		if p != nil {
			programs = append(programs, *p)
		}
	}

	// Placeholders are only worth synthesizing when the day produced real
	// data for someone; a fully empty day means the provider has nothing
	// yet, not that every channel is individually down.
	if len(programs) > 0 {
		for _, id := range missing {
			filled := fillDay(directory[id], dayStart, a.loc)
			if len(filled) > 0 {
				a.logger.Debug().
					Str(log.FieldChannel, id).
					Str(log.FieldEvent, "channel.gap_filled").
					Msg("adding minimal EPG data for channel")
				a.metrics.IncPlaceholders(len(filled))
			}
			programs = append(programs, filled...)
		}
	}
	a.metrics.RecordMissingChannels(dayOffset, len(missing))

	return programs
}
