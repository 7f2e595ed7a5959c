// SPDX-License-Identifier: MIT

package epg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
)

func TestFillDay_CoversFullDayWithoutGaps(t *testing.T) {
	ch := channels.Record{ID: "9", DisplayName: "Nine", Enabled: true}
	programs := fillDay(ch, testDayStart, time.UTC)
	require.Len(t, programs, 24)

	for i, p := range programs {
		assert.Equal(t, "9", p.Channel)
		assert.Nil(t, p.ProgID)
		assert.Equal(t, 60, p.Length)
		assert.Equal(t, "Nine", p.Title)
		assert.Equal(t, "Unavailable", p.Desc)
		assert.Equal(t, "Unavailable", p.ShortDesc)
		assert.Equal(t, time.Hour, p.Stop.Sub(p.Start))

		// Hour boundaries, back to back.
		wantStart := testDayStart.Add(time.Duration(i) * time.Hour)
		assert.True(t, p.Start.Equal(wantStart), "entry %d starts at %v, want %v", i, p.Start, wantStart)
		if i > 0 {
			assert.True(t, p.Start.Equal(programs[i-1].Stop), "gap before entry %d", i)
		}

		// Placeholder metadata is all null (including cc, unlike real events).
		assert.Nil(t, p.Subtitle)
		assert.Nil(t, p.EntityType)
		assert.Nil(t, p.CC)
		assert.Nil(t, p.Season)
		assert.Nil(t, p.Episode)
		assert.Nil(t, p.SECommon)
		assert.Nil(t, p.SEXmltvNS)
		assert.Nil(t, p.SEProgID)
	}

	last := programs[23]
	assert.True(t, last.Stop.Equal(testDayStart.AddDate(0, 0, 1)), "last entry must end at next midnight")
}

func TestFillDay_DisabledChannelYieldsNothing(t *testing.T) {
	ch := channels.Record{ID: "9", DisplayName: "Nine", Enabled: false}
	assert.Nil(t, fillDay(ch, testDayStart, time.UTC))
}

func TestFillDay_LocalizedTimestamps(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ch := channels.Record{ID: "9", DisplayName: "Nine", Enabled: true}
	programs := fillDay(ch, testDayStart, loc)
	require.Len(t, programs, 24)

	// Same instant, expressed in the configured zone.
	assert.Equal(t, loc, programs[0].Start.Location())
	assert.True(t, programs[0].Start.Equal(testDayStart))
}
