// SPDX-License-Identifier: MIT

// Package channels holds the channel directory: the per-instance lineup the
// guide is built for. The directory is populated by the channel-scan side of
// the system and read-only to the EPG core.
package channels

import "sort"

// Record is one directory entry.
type Record struct {
	// ID is the unique channel id inside this provider instance.
	ID string `json:"id"`
	// DisplayName is the human-readable channel name.
	DisplayName string `json:"display_name"`
	// Enabled marks whether the channel participates in guide builds.
	Enabled bool `json:"enabled"`
	// EPGID is the provider feed identifier for this channel's schedule
	// payload. Nil means the provider has no feed for the channel; multiple
	// channels may share one feed id.
	EPGID *string `json:"epg_id"`
}

// SortedIDs returns the channel ids in ascending order. Guide aggregation
// iterates channels in this order so runs are reproducible.
func SortedIDs(m map[string]Record) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
