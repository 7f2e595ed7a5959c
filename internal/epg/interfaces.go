// SPDX-License-Identifier: MIT

package epg

import (
	"context"
	"errors"

	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// ErrDetailNotFound reports that a program id has no detail record. The
// affected event is dropped with a warning; the run continues.
var ErrDetailNotFound = errors.New("epg: program detail not found")

// Fetcher retrieves one provider feed payload. Owned by the network side;
// it enforces its own timeout and the core treats it as a synchronous call.
type Fetcher interface {
	ChannelGuide(ctx context.Context, feedID string) (*tv123.Feed, error)
}

// DetailResolver looks up the detail record for a provider program id.
// Implementations return ErrDetailNotFound when no record exists.
type DetailResolver interface {
	Lookup(ctx context.Context, programID string) (*ProgramDetail, error)
}

// MetricsRecorder receives aggregation counters. A nop implementation is
// used where metrics are not wired (tests).
type MetricsRecorder interface {
	RecordDayPrograms(dayOffset int, programs int)
	RecordMissingChannels(dayOffset int, channels int)
	IncFeedFailure()
	IncDuplicateDropped()
	IncDetailMissing()
	IncPlaceholders(count int)
}

// NopMetrics returns a MetricsRecorder that discards everything.
func NopMetrics() MetricsRecorder { return nopMetrics{} }

type nopMetrics struct{}

func (nopMetrics) RecordDayPrograms(int, int)     {}
func (nopMetrics) RecordMissingChannels(int, int) {}
func (nopMetrics) IncFeedFailure()                {}
func (nopMetrics) IncDuplicateDropped()           {}
func (nopMetrics) IncDetailMissing()              {}
func (nopMetrics) IncPlaceholders(int)            {}
