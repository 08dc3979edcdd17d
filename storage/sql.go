// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQL stores items in the selection_state table created by db.CreateSchema.
// The queries run unchanged on sqlite and postgres.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps a database whose schema was created by db.CreateSchema.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// GetItem loads the payload stored under key.
func (s *SQL) GetItem(key string) (string, bool, error) {
	var payload string
	err := s.db.QueryRow(`
		SELECT payload FROM selection_state WHERE store_key = $1
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return payload, true, nil
}

// SetItem upserts the payload for key.
func (s *SQL) SetItem(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO selection_state (store_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes the row for key.
func (s *SQL) RemoveItem(key string) error {
	_, err := s.db.Exec(`DELETE FROM selection_state WHERE store_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *SQL) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM selection_state`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}
