// SPDX-License-Identifier: MIT

package epg

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

// normalize converts one accepted (channel, event) pair into the canonical
// program record. Returns (nil, nil) when the event must be silently skipped
// (disabled channel, detail resolution turned off) and ErrDetailNotFound when
// the program id has no detail record.
func (a *Aggregator) normalize(ctx context.Context, ch channels.Record, ev tv123.RawEvent) (*NormalizedProgram, error) {
	if !ch.Enabled {
		return nil, nil
	}
	if !a.cfg.DetailsEnabled {
		return nil, nil
	}

	detail, err := a.resolver.Lookup(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	start := time.Unix(ev.Start+int64(a.cfg.StartAdjustment), 0).In(a.loc)
	stop := time.Unix(ev.End+int64(a.cfg.EndAdjustment), 0).In(a.loc)
	length := int((ev.End - ev.Start) / 60)

	airDate, formattedDate := deriveAirDate(detail)

	desc := detail.Description
	if desc == "" {
		desc = "Unavailable"
	}
	shortDesc := detail.ShortDesc
	if shortDesc == "" {
		shortDesc = desc
	}

	var episode *int
	if detail.Episode != nil {
		episode = intPtr(*detail.Episode + a.cfg.EpisodeAdj)
	}
	season := detail.Season

	seCommon, seXmltvNS := encodeSeasonEpisode(season, episode)
	subtitle := buildSubtitle(detail.Subtitle, season, episode)

	var entityType *string
	if detail.Type != "" {
		entityType = strPtr(detail.Type)
	}

	return &NormalizedProgram{
		Channel:       ch.ID,
		ProgID:        strPtr(ev.ID),
		Start:         start,
		Stop:          stop,
		Length:        length,
		Title:         detail.Title,
		Subtitle:      subtitle,
		EntityType:    entityType,
		Desc:          desc,
		ShortDesc:     shortDesc,
		VideoQuality:  nil,
		CC:            boolPtr(false),
		Live:          nil,
		Finale:        nil,
		Premiere:      nil,
		AirDate:       airDate,
		FormattedDate: formattedDate,
		Icon:          detail.Image,
		Rating:        detail.Rating,
		IsNew:         nil,
		Genres:        detail.Genres,
		Directors:     nil,
		Actors:        nil,
		Season:        season,
		Episode:       episode,
		SECommon:      seCommon,
		SEXmltvNS:     seXmltvNS,
		SEProgID:      nil, // reserved, always null for this provider
	}, nil
}

// deriveAirDate produces the compact (YYYYMMDD) and display (YYYY/MM/DD)
// forms from the detail record. A record without an encoded date falls back
// to the bare year for both forms; without either, both are null.
func deriveAirDate(detail *ProgramDetail) (airDate, formattedDate *string) {
	if detail.Date != nil {
		t := time.UnixMilli(*detail.Date).UTC()
		return strPtr(t.Format("20060102")), strPtr(t.Format("2006/01/02"))
	}
	if detail.Year != nil {
		y := strconv.Itoa(*detail.Year)
		return strPtr(y), strPtr(y)
	}
	return nil, nil
}

// encodeSeasonEpisode derives the se_common and se_xmltv_ns encodings.
// A known season with an unknown episode encodes the episode as 0; an
// episode without a season yields no encoding at all.
func encodeSeasonEpisode(season, episode *int) (seCommon, seXmltvNS *string) {
	switch {
	case season == nil && episode == nil:
		return nil, nil
	case season != nil && episode != nil:
		return strPtr(fmt.Sprintf("S%02dE%02d", *season, *episode)),
			strPtr(fmt.Sprintf("%d.%d.0/1", *season-1, *episode-1))
	case season == nil:
		return nil, nil
	default: // season known, episode unknown
		return strPtr(fmt.Sprintf("S%02dE00", *season)),
			strPtr(fmt.Sprintf("%d.0.0/1", *season-1))
	}
}

// buildSubtitle prefixes the detail subtitle with the season/episode tag when
// known. A detail record without a subtitle yields null regardless of
// season/episode.
func buildSubtitle(detailSubtitle string, season, episode *int) *string {
	if detailSubtitle == "" {
		return nil
	}
	prefix := ""
	switch {
	case season != nil && episode != nil:
		prefix = fmt.Sprintf("S%02dE%02d ", *season, *episode)
	case episode != nil:
		prefix = fmt.Sprintf("E%02d ", *episode)
	}
	return strPtr(prefix + detailSubtitle)
}
