// SPDX-License-Identifier: MIT

package epg

import (
	"encoding/xml"
	"time"

	"github.com/google/renameio/v2"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
)

type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
}

type Programme struct {
	Start      string       `xml:"start,attr"`
	Stop       string       `xml:"stop,attr"`
	Channel    string       `xml:"channel,attr"`
	Title      string       `xml:"title"`
	SubTitle   string       `xml:"sub-title,omitempty"`
	Desc       string       `xml:"desc,omitempty"`
	Category   []string     `xml:"category,omitempty"`
	Date       string       `xml:"date,omitempty"`
	EpisodeNum []EpisodeNum `xml:"episode-num,omitempty"`
}

type EpisodeNum struct {
	System string `xml:"system,attr"`
	Value  string `xml:",chardata"`
}

// formatXMLTVTime formats time in XMLTV format: YYYYMMDDHHMMSS +ZZZZ
func formatXMLTVTime(t time.Time) string {
	return t.Format("20060102150405 -0700")
}

// BuildTV converts a directory plus normalized programs to the XMLTV document
// shape. Only channels that appear in the program list are emitted.
func BuildTV(directory map[string]channels.Record, programs []NormalizedProgram) *TV {
	used := make(map[string]bool, len(directory))
	for _, p := range programs {
		used[p.Channel] = true
	}

	tv := &TV{Generator: "tv123-epg"}
	for _, id := range channels.SortedIDs(directory) {
		if !used[id] {
			continue
		}
		tv.Channels = append(tv.Channels, Channel{ID: id, DisplayName: []string{directory[id].DisplayName}})
	}

	for _, p := range programs {
		prog := Programme{
			Start:    formatXMLTVTime(p.Start),
			Stop:     formatXMLTVTime(p.Stop),
			Channel:  p.Channel,
			Title:    p.Title,
			Desc:     p.Desc,
			Category: p.Genres,
		}
		if p.Subtitle != nil {
			prog.SubTitle = *p.Subtitle
		}
		if p.AirDate != nil {
			prog.Date = *p.AirDate
		}
		if p.SEXmltvNS != nil {
			prog.EpisodeNum = append(prog.EpisodeNum, EpisodeNum{System: "xmltv_ns", Value: *p.SEXmltvNS})
		}
		if p.SECommon != nil {
			prog.EpisodeNum = append(prog.EpisodeNum, EpisodeNum{System: "onscreen", Value: *p.SECommon})
		}
		tv.Programs = append(tv.Programs, prog)
	}
	return tv
}

// WriteXMLTV atomically writes the document to path.
func WriteXMLTV(tv *TV, path string) error {
	out, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return err
	}

	xmlHeader := `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	return renameio.WriteFile(path, []byte(xmlHeader+string(out)), 0o644)
}
