// SPDX-License-Identifier: MIT

// Package epg builds a deduplicated, gap-filled full-day program listing from
// the 123TV per-channel schedule feeds.
package epg

import (
	"time"
)

// ProgramDetail is the detailed metadata record for one provider program id,
// sourced from the detail store populated by the TVGuide side of the system.
// Read-only to this package.
type ProgramDetail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"desc"`
	ShortDesc   string   `json:"short_desc"`
	Type        string   `json:"type"`
	Season      *int     `json:"season"`
	Episode     *int     `json:"episode"`
	Rating      *string  `json:"rating"`
	Image       *string  `json:"image"`
	Genres      []string `json:"genres"`
	// Date is the provider-encoded air date in milliseconds since epoch.
	Date *int64 `json:"date"`
	// Year is the bare production year, present on records without a date.
	Year     *int `json:"year"`
	Duration *int `json:"duration"`
}

// EventKey identifies one canonical event within an aggregation run. At most
// one program may exist per key; later duplicates are dropped first-seen-wins.
type EventKey struct {
	ChannelID string
	Start     int64 // event start, epoch seconds
}

// NormalizedProgram is the canonical program record handed to persistence.
// Nullable fields are pointers and deliberately carry no omitempty: the
// output shape is shared across providers, and fields this provider never
// fills must still appear as explicit nulls.
type NormalizedProgram struct {
	Channel       string    `json:"channel"`
	ProgID        *string   `json:"progid"`
	Start         time.Time `json:"start"`
	Stop          time.Time `json:"stop"`
	Length        int       `json:"length"` // minutes
	Title         string    `json:"title"`
	Subtitle      *string   `json:"subtitle"`
	EntityType    *string   `json:"entity_type"`
	Desc          string    `json:"desc"`
	ShortDesc     string    `json:"short_desc"`
	VideoQuality  *string   `json:"video_quality"`
	CC            *bool     `json:"cc"`
	Live          *bool     `json:"live"`
	Finale        *bool     `json:"finale"`
	Premiere      *bool     `json:"premiere"`
	AirDate       *string   `json:"air_date"`
	FormattedDate *string   `json:"formatted_date"`
	Icon          *string   `json:"icon"`
	Rating        *string   `json:"rating"`
	IsNew         *bool     `json:"is_new"`
	Genres        []string  `json:"genres"`
	Directors     []string  `json:"directors"`
	Actors        []string  `json:"actors"`
	Season        *int      `json:"season"`
	Episode       *int      `json:"episode"`
	SECommon      *string   `json:"se_common"`
	SEXmltvNS     *string   `json:"se_xmltv_ns"`
	SEProgID      *string   `json:"se_progid"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
