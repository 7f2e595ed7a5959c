// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cabernetwork/provider-video-123tv/internal/cache"
	"github.com/cabernetwork/provider-video-123tv/internal/epg"
	xlog "github.com/cabernetwork/provider-video-123tv/internal/log"
	"github.com/cabernetwork/provider-video-123tv/internal/metrics"
)

// Refresh performs one complete guide refresh. Individual day failures are
// degraded, not fatal: the worst outcome is a day with fewer programs, which
// heals on the next run.
func Refresh(ctx context.Context, deps Deps) (*Status, error) {
	runID := uuid.NewString()
	ctx = xlog.ContextWithRunID(ctx, runID)
	logger := xlog.WithComponentFromContext(ctx, "jobs")

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newStore := deps.NewPayloadStore
	if newStore == nil {
		newStore = cache.NewMemoryStore
	}
	if deps.Metrics == nil {
		deps.Metrics = epg.NopMetrics()
	}

	started := clock()
	logger.Info().Str(xlog.FieldEvent, "refresh.start").
		Str(xlog.FieldInstance, deps.Config.Instance).
		Msg("starting guide refresh")

	lineup, err := deps.Channels.List(ctx, deps.Config.Instance)
	if err != nil {
		metrics.IncRefreshFailure("channels")
		return nil, fmt.Errorf("list channels: %w", err)
	}

	aggCfg := epg.Config{
		StartAdjustment: deps.Config.StartAdjustment,
		EndAdjustment:   deps.Config.EndAdjustment,
		EpisodeAdj:      deps.Config.EpisodeAdj,
		DetailsEnabled:  deps.Config.DetailsEnabled(),
	}
	loc := deps.Config.Location()
	now := clock()

	days := DaysToPull(deps.Config.Days)
	perDay := make([][]epg.NormalizedProgram, len(days))

	// One worker per day offset, each with its own feed cache instance.
	// Payloads are keyed by feed id only, so cross-run sharing is safe, but
	// the run-scoped failure marking is not, hence per-worker caches.
	g, gctx := errgroup.WithContext(ctx)
	for _, offset := range days {
		g.Go(func() error {
			feedCache := epg.NewFeedCache(deps.Fetcher, newStore())
			agg := epg.NewAggregator(aggCfg, feedCache, deps.Resolver, deps.Metrics, loc)
			programs := agg.AggregateDay(gctx, lineup, offset, now)
			perDay[offset] = programs

			if len(programs) == 0 {
				logger.Debug().Int(xlog.FieldDayOffset, offset).
					Str(xlog.FieldEvent, "refresh.day_empty").
					Msg("no EPG data for day")
				return nil
			}

			day := epg.DayStart(now, offset)
			if err := deps.Store.SaveProgramList(gctx, deps.Config.Instance, day, programs); err != nil {
				metrics.IncRefreshFailure("save")
				logger.Error().Err(err).Int(xlog.FieldDayOffset, offset).
					Str(xlog.FieldEvent, "refresh.save_failed").
					Msg("failed to persist day listing")
				return nil // degraded, not fatal
			}

			logger.Info().Int(xlog.FieldDayOffset, offset).
				Int(xlog.FieldPrograms, len(programs)).
				Time(xlog.FieldDay, day).
				Str(xlog.FieldEvent, "refresh.day_saved").
				Msg("refreshed EPG data for day")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.IncRefreshFailure("aggregate")
		return nil, err
	}

	var all []epg.NormalizedProgram
	for _, programs := range perDay {
		all = append(all, programs...)
	}

	if deps.Config.XMLTVPath != "" {
		if err := epg.WriteXMLTV(epg.BuildTV(lineup, all), deps.Config.XMLTVPath); err != nil {
			metrics.IncRefreshFailure("xmltv")
			logger.Warn().Err(err).
				Str(xlog.FieldEvent, "xmltv.failed").
				Str("path", deps.Config.XMLTVPath).
				Msg("XMLTV generation failed")
		} else {
			logger.Info().
				Str(xlog.FieldEvent, "xmltv.success").
				Str("path", deps.Config.XMLTVPath).
				Int(xlog.FieldPrograms, len(all)).
				Msg("XMLTV generated")
		}
	}

	metrics.ObserveRefreshDuration(clock().Sub(started).Seconds())

	status := &Status{
		RunID:    runID,
		LastRun:  clock(),
		Days:     len(days),
		Programs: len(all),
	}
	logger.Info().
		Str(xlog.FieldEvent, "refresh.success").
		Int("days", status.Days).
		Int(xlog.FieldPrograms, status.Programs).
		Msg("refresh completed")
	return status, nil
}
