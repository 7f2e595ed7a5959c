// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cabernetwork/provider-video-123tv/internal/epg"
)

// ErrDayNotFound reports that no listing has been saved for the day yet.
var ErrDayNotFound = errors.New("store: no program list for day")

// Guide persists finished day listings, one JSON document per
// (namespace, instance, day).
type Guide struct {
	db        *sql.DB
	namespace string
}

// NewGuide creates a listing store bound to one provider namespace.
func NewGuide(db *sql.DB, namespace string) *Guide {
	return &Guide{db: db, namespace: namespace}
}

// dayKey is the stored day format (UTC calendar date).
func dayKey(day time.Time) string {
	return day.UTC().Format("2006-01-02")
}

// SaveProgramList replaces the saved listing for the given day.
func (g *Guide) SaveProgramList(ctx context.Context, instance string, day time.Time, programs []epg.NormalizedProgram) error {
	raw, err := json.Marshal(programs)
	if err != nil {
		return fmt.Errorf("guide: encode day %s: %w", dayKey(day), err)
	}
	_, err = g.db.ExecContext(ctx,
		`INSERT INTO epg (namespace, instance, day, json, last_update) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (namespace, instance, day) DO UPDATE SET json = excluded.json, last_update = excluded.last_update`,
		g.namespace, instance, dayKey(day), string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("guide: save day %s: %w", dayKey(day), err)
	}
	return nil
}

// ProgramList returns the saved listing for the given day.
func (g *Guide) ProgramList(ctx context.Context, instance string, day time.Time) ([]epg.NormalizedProgram, error) {
	var raw string
	err := g.db.QueryRowContext(ctx,
		`SELECT json FROM epg WHERE namespace = ? AND instance = ? AND day = ?`,
		g.namespace, instance, dayKey(day)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("guide: load day %s: %w", dayKey(day), err)
	}

	var programs []epg.NormalizedProgram
	if err := json.Unmarshal([]byte(raw), &programs); err != nil {
		return nil, fmt.Errorf("guide: decode day %s: %w", dayKey(day), err)
	}
	return programs, nil
}
