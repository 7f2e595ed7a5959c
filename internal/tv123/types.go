// SPDX-License-Identifier: MIT

// Package tv123 is the HTTP client for the 123TV guide API.
package tv123

import "strconv"

// RawEvent is one provider-native schedule entry. Read-only input; the
// provider assigns all identifiers and timestamps (epoch seconds, UTC).
type RawEvent struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Start     int64  `json:"start_timestamp"`
	End       int64  `json:"end_timestamp"`
}

// Feed is one channel's raw schedule payload. The provider partitions events
// into day buckets keyed by that day's UTC midnight expressed in epoch
// seconds (decimal string).
type Feed struct {
	Items map[string][]RawEvent `json:"items"`
}

// Day returns the bucket for the given day start, or nil and false when the
// provider has no bucket for that day. Bucket keys are provider-assigned and
// never recomputed locally.
func (f *Feed) Day(startSeconds int64) ([]RawEvent, bool) {
	if f == nil || f.Items == nil {
		return nil, false
	}
	events, ok := f.Items[strconv.FormatInt(startSeconds, 10)]
	return events, ok
}
