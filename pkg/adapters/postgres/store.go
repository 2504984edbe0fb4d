// Package postgres implements ports.SnapshotStore on PostgreSQL via pgx,
// for deployments whose session backend is a shared relational database
// rather than a cache.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parcours-dev/parcours/pkg/domain"
)

// Store implements ports.SnapshotStore using PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

// New creates a new Store backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Connect opens a pool for the given DSN and returns a Store over it.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return New(pool), nil
}

// Save upserts the snapshot for a (session, tab) pair.
func (s *Store) Save(ctx context.Context, sessionID, tabID string, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO flow_snapshots (session_id, tab_id, snapshot, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (session_id, tab_id)
		 DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = NOW()`,
		sessionID, tabID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot for a (session, tab) pair.
func (s *Store) Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT snapshot FROM flow_snapshots WHERE session_id = $1 AND tab_id = $2`,
		sessionID, tabID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the entry for a (session, tab) pair.
func (s *Store) Delete(ctx context.Context, sessionID, tabID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM flow_snapshots WHERE session_id = $1 AND tab_id = $2`,
		sessionID, tabID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// List returns the tab ids holding a snapshot under the session.
func (s *Store) List(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT tab_id FROM flow_snapshots WHERE session_id = $1 ORDER BY updated_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}
	defer rows.Close()

	var tabs []string
	for rows.Next() {
		var tabID string
		if err := rows.Scan(&tabID); err != nil {
			return nil, fmt.Errorf("failed to scan tab id: %w", err)
		}
		tabs = append(tabs, tabID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tabs: %w", err)
	}
	return tabs, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.db.Close()
}
