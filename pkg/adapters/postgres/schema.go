package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS flow_snapshots (
    session_id TEXT NOT NULL,
    tab_id     TEXT NOT NULL,
    snapshot   JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (session_id, tab_id)
);

CREATE INDEX IF NOT EXISTS idx_flow_snapshots_session ON flow_snapshots(session_id);
`

// CreateSchema creates the flow_snapshots table if it doesn't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the flow_snapshots table.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS flow_snapshots CASCADE;`)
	return err
}
