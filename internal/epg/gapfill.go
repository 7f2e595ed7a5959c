// SPDX-License-Identifier: MIT

package epg

import (
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
)

// fillDay synthesizes 24 one-hour placeholder programs covering the full day
// for a channel with no usable provider data. Returns nil for disabled
// channels; callers are expected to have filtered those already.
func fillDay(ch channels.Record, dayStart time.Time, loc *time.Location) []NormalizedProgram {
	if !ch.Enabled {
		return nil
	}

	programs := make([]NormalizedProgram, 0, 24)
	for hour := 0; hour < 24; hour++ {
		start := dayStart.Add(time.Duration(hour) * time.Hour)
		stop := start.Add(time.Hour)
		programs = append(programs, NormalizedProgram{
			Channel:   ch.ID,
			ProgID:    nil,
			Start:     start.In(loc),
			Stop:      stop.In(loc),
			Length:    60,
			Title:     ch.DisplayName,
			Subtitle:  nil,
			Desc:      "Unavailable",
			ShortDesc: "Unavailable",
		})
	}
	return programs
}
