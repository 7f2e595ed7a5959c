// SPDX-License-Identifier: MIT

// Package config assembles the daemon configuration from environment
// variables. Every knob has a default so a bare `daemon` run works against a
// local provider mirror.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// AppConfig holds the full daemon configuration.
type AppConfig struct {
	// Provider
	BaseURL      string        // 123TV API base URL
	Namespace    string        // provider namespace, e.g. "TV123"
	Instance     string        // provider instance key
	FetchTimeout time.Duration // per-feed HTTP timeout
	FetchRate    int           // max provider requests per second

	// EPG derivation
	StartAdjustment int    // seconds added to every event start
	EndAdjustment   int    // seconds added to every event end
	EpisodeAdj      int    // offset added to provider episode numbers
	EPGPlugin       string // "ALL" enables program detail resolution
	Days            int    // refresh horizon in days (provider documents 3)

	// Storage / output
	DBPath    string
	DataDir   string
	XMLTVPath string

	// Feed cache
	RedisAddr    string        // optional; empty selects the run-scoped memory cache
	FeedCacheTTL time.Duration // TTL for redis-cached feed payloads

	// Server
	ListenAddr string

	// Timezone used to resolve guide timestamps ("" = system local).
	Timezone string
}

// FromEnv builds an AppConfig from environment variables.
func FromEnv() AppConfig {
	return AppConfig{
		BaseURL:         ParseString("TV123_BASE_URL", "http://123tv.live"),
		Namespace:       ParseString("TV123_NAMESPACE", "TV123"),
		Instance:        ParseString("TV123_INSTANCE", "default"),
		FetchTimeout:    ParseDuration("TV123_FETCH_TIMEOUT", 30*time.Second),
		FetchRate:       ParseInt("TV123_FETCH_RATE", 5),
		StartAdjustment: ParseInt("TV123_EPG_START_ADJUSTMENT", 0),
		EndAdjustment:   ParseInt("TV123_EPG_END_ADJUSTMENT", 0),
		EpisodeAdj:      ParseInt("TV123_EPG_EPISODE_ADJUSTMENT", 0),
		EPGPlugin:       ParseString("TV123_EPG_PLUGIN", "ALL"),
		Days:            ParseInt("TV123_EPG_DAYS", 3),
		DBPath:          ParseString("TV123_DB_PATH", "data/tv123.sqlite"),
		DataDir:         ParseString("TV123_DATA_DIR", "data"),
		XMLTVPath:       ParseString("TV123_XMLTV_PATH", ""),
		RedisAddr:       ParseString("TV123_REDIS_ADDR", ""),
		FeedCacheTTL:    ParseDuration("TV123_FEED_CACHE_TTL", 6*time.Hour),
		ListenAddr:      ParseString("TV123_LISTEN", ":8088"),
		Timezone:        ParseString("TV123_TZ", ""),
	}
}

// DetailsEnabled reports whether program detail resolution is active.
func (c AppConfig) DetailsEnabled() bool {
	return c.EPGPlugin == "ALL"
}

// Location resolves the configured timezone, falling back to the system local
// zone on empty or invalid values.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Validate checks the configuration for values the daemon cannot run with.
func (c AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid provider base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported provider base URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("provider base URL %q is missing host", c.BaseURL)
	}
	if c.Days < 1 || c.Days > 3 {
		return fmt.Errorf("refresh horizon must be 1-3 days, got %d", c.Days)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}
