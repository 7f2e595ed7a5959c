// SPDX-License-Identifier: MIT

package channels

import (
	"context"
	"database/sql"
	"fmt"
)

// Directory reads the channel lineup for one provider namespace out of the
// shared sqlite database.
type Directory struct {
	db        *sql.DB
	namespace string
}

// NewDirectory creates a directory bound to one provider namespace.
func NewDirectory(db *sql.DB, namespace string) *Directory {
	return &Directory{db: db, namespace: namespace}
}

// List returns the full lineup for the instance, keyed by channel id.
func (d *Directory) List(ctx context.Context, instance string) (map[string]Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT uid, display_name, enabled, epg_id FROM channels WHERE namespace = ? AND instance = ?`,
		d.namespace, instance)
	if err != nil {
		return nil, fmt.Errorf("channels: list %s/%s: %w", d.namespace, instance, err)
	}
	defer rows.Close()

	out := make(map[string]Record)
	for rows.Next() {
		var (
			rec   Record
			epgID sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.DisplayName, &rec.Enabled, &epgID); err != nil {
			return nil, fmt.Errorf("channels: scan row: %w", err)
		}
		if epgID.Valid {
			rec.EPGID = &epgID.String
		}
		out[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("channels: iterate rows: %w", err)
	}
	return out, nil
}

// Put upserts one lineup entry. Lineup writes belong to the channel-scan
// collaborator; this method exists for that side and for tests.
func (d *Directory) Put(ctx context.Context, instance string, rec Record) error {
	var epgID any
	if rec.EPGID != nil {
		epgID = *rec.EPGID
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO channels (namespace, instance, uid, enabled, display_name, epg_id) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (namespace, instance, uid) DO UPDATE SET
		     enabled = excluded.enabled, display_name = excluded.display_name, epg_id = excluded.epg_id`,
		d.namespace, instance, rec.ID, rec.Enabled, rec.DisplayName, epgID)
	if err != nil {
		return fmt.Errorf("channels: put %q: %w", rec.ID, err)
	}
	return nil
}
