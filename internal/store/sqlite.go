// SPDX-License-Identifier: MIT

// Package store is the sqlite persistence layer: the channel-scan side writes
// the channel lineup and program detail records here, and finished day
// listings are saved here for the guide writer. The EPG core only sees this
// package through its resolver and persistence interfaces.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go driver
)

// Config defines sqlite operational parameters.
type Config struct {
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// DefaultConfig returns the standard connection settings.
func DefaultConfig() Config {
	return Config{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 25,
	}
}

// Open initializes a sqlite connection pool with WAL mode and busy_timeout
// applied to every pooled connection via DSN pragmas.
func Open(dbPath string, cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS channels (
    namespace    TEXT NOT NULL,
    instance     TEXT NOT NULL,
    uid          TEXT NOT NULL,
    enabled      INTEGER NOT NULL DEFAULT 1,
    display_name TEXT NOT NULL,
    epg_id       TEXT,
    PRIMARY KEY (namespace, instance, uid)
);
CREATE TABLE IF NOT EXISTS programs (
    namespace TEXT NOT NULL,
    id        TEXT NOT NULL,
    json      TEXT NOT NULL,
    PRIMARY KEY (namespace, id)
);
CREATE TABLE IF NOT EXISTS epg (
    namespace   TEXT NOT NULL,
    instance    TEXT NOT NULL,
    day         TEXT NOT NULL,
    json        TEXT NOT NULL,
    last_update TIMESTAMP NOT NULL,
    PRIMARY KEY (namespace, instance, day)
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: init schema: %w", err)
	}
	return nil
}
