package ports

import (
	"context"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// SnapshotStore persists wizard snapshots keyed by (session, tab).
// Entries are scoped per authenticated session: two sessions never observe
// each other's tab state. Within one logical session, Save followed by Load
// must return the written value (read-your-writes).
type SnapshotStore interface {
	// Save persists the snapshot for a (session, tab) pair.
	Save(ctx context.Context, sessionID, tabID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a (session, tab) pair.
	// Returns domain.ErrSnapshotNotFound if no entry exists.
	Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error)

	// Delete removes the entry for a (session, tab) pair.
	Delete(ctx context.Context, sessionID, tabID string) error

	// List returns the tab ids holding a snapshot under the session.
	List(ctx context.Context, sessionID string) ([]string, error)
}
