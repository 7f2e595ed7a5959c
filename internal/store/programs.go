// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cabernetwork/provider-video-123tv/internal/epg"
)

// Programs is the program detail store. The detail records are written by the
// TVGuide collaborator; this side only reads them during normalization.
type Programs struct {
	db        *sql.DB
	namespace string
}

// NewPrograms creates a detail store bound to one provider namespace.
func NewPrograms(db *sql.DB, namespace string) *Programs {
	return &Programs{db: db, namespace: namespace}
}

// Lookup implements epg.DetailResolver. Missing records are reported as
// epg.ErrDetailNotFound.
func (p *Programs) Lookup(ctx context.Context, programID string) (*epg.ProgramDetail, error) {
	var raw string
	err := p.db.QueryRowContext(ctx,
		`SELECT json FROM programs WHERE namespace = ? AND id = ?`,
		p.namespace, programID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, epg.ErrDetailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("programs: lookup %q: %w", programID, err)
	}

	var detail epg.ProgramDetail
	if err := json.Unmarshal([]byte(raw), &detail); err != nil {
		return nil, fmt.Errorf("programs: decode %q: %w", programID, err)
	}
	return &detail, nil
}

// Put stores a detail record, replacing any previous version.
func (p *Programs) Put(ctx context.Context, detail epg.ProgramDetail) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("programs: encode %q: %w", detail.ID, err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO programs (namespace, id, json) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, id) DO UPDATE SET json = excluded.json`,
		p.namespace, detail.ID, string(raw))
	if err != nil {
		return fmt.Errorf("programs: put %q: %w", detail.ID, err)
	}
	return nil
}
