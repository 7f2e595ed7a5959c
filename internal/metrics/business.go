// SPDX-License-Identifier: MIT

// Package metrics exposes prometheus counters for guide aggregation.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dayPrograms = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tv123_epg_day_programs",
		Help: "Programs produced for a day offset in the last refresh",
	}, []string{"day_offset"})

	missingChannels = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tv123_epg_missing_channels",
		Help: "Channels classified missing for a day offset in the last refresh",
	}, []string{"day_offset"})

	feedFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tv123_epg_feed_failures_total",
		Help: "Total provider feed fetches that failed",
	})

	duplicatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tv123_epg_duplicate_events_dropped_total",
		Help: "Total raw events discarded as duplicates of an already-seen (channel, start) key",
	})

	detailsMissing = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tv123_epg_details_missing_total",
		Help: "Total events dropped because no program detail record exists",
	})

	placeholders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tv123_epg_placeholders_total",
		Help: "Total one-hour placeholder programs synthesized for missing channels",
	})

	refreshFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tv123_refresh_failures_total",
		Help: "Total refresh failures by stage",
	}, []string{"stage"}) // stage=channels|aggregate|save|xmltv

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tv123_refresh_duration_seconds",
		Help:    "Wall time of one full refresh run",
		Buckets: prometheus.DefBuckets,
	})
)

// Recorder implements epg.MetricsRecorder on the prometheus registry.
type Recorder struct{}

func (Recorder) RecordDayPrograms(dayOffset, programs int) {
	dayPrograms.WithLabelValues(strconv.Itoa(dayOffset)).Set(float64(programs))
}

func (Recorder) RecordMissingChannels(dayOffset, channels int) {
	missingChannels.WithLabelValues(strconv.Itoa(dayOffset)).Set(float64(channels))
}

func (Recorder) IncFeedFailure()      { feedFailures.Inc() }
func (Recorder) IncDuplicateDropped() { duplicatesDropped.Inc() }
func (Recorder) IncDetailMissing()    { detailsMissing.Inc() }

func (Recorder) IncPlaceholders(count int) { placeholders.Add(float64(count)) }

// IncRefreshFailure records a failed refresh stage.
func IncRefreshFailure(stage string) { refreshFailures.WithLabelValues(stage).Inc() }

// ObserveRefreshDuration records the wall time of one refresh run.
func ObserveRefreshDuration(seconds float64) { refreshDuration.Observe(seconds) }
