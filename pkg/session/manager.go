package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/parcours-dev/parcours/internal/logging"
	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/parcours-dev/parcours/pkg/ports"
)

// lockEntry holds the mutex and the reference count for one (session, tab).
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to snapshot entries. Two requests racing on the
// same (session, tab) pair take turns instead of interleaving their
// read-modify-write; different tabs never contend. Lock entries are
// reference counted so idle pairs cost nothing.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker // Optional, for multi-replica deployments
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session manager over the given store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTabID mints an opaque token distinguishing concurrent flow instances
// within one session. Tab ids are normally client-supplied; this exists for
// surfaces that hand the first one to the browser.
func NewTabID() string {
	return uuid.NewString()
}

func lockKey(sessionID, tabID string) string {
	return sessionID + ":" + tabID
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// Load retrieves an existing snapshot.
// Returns domain.ErrSnapshotNotFound when the pair has no entry.
func (m *Manager) Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, tabID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID, tabID)
		return err
	})
	return snap, err
}

// LoadOrStart loads the snapshot for the pair, creating and persisting one
// at the flow's initial state when none exists. Loading applies no
// transition, so calling this repeatedly without a dispatch is idempotent.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID, tabID string, flow domain.FlowDefinition) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, tabID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID, tabID)
		if err == nil {
			return nil
		}
		if err != domain.ErrSnapshotNotFound {
			return fmt.Errorf("failed to check snapshot existence: %w", err)
		}

		// Not found: create at the initial state and persist immediately so
		// a concurrent request observes the entry.
		snap = domain.NewSnapshot(flow)
		if err := m.store.Save(ctx, sessionID, tabID, snap); err != nil {
			return fmt.Errorf("failed to initialize snapshot: %w", err)
		}
		return nil
	})
	return snap, err
}

// Save persists the snapshot.
func (m *Manager) Save(ctx context.Context, sessionID, tabID string, snap *domain.Snapshot) error {
	return m.WithLock(ctx, sessionID, tabID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, tabID, snap)
	})
}

// Delete removes the pair's entry from the store.
func (m *Manager) Delete(ctx context.Context, sessionID, tabID string) error {
	return m.WithLock(ctx, sessionID, tabID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID, tabID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context, sessionID string) ([]string, error) {
	return m.store.List(ctx, sessionID)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the lock for the (session, tab) pair.
func (m *Manager) WithLock(ctx context.Context, sessionID, tabID string, fn func(context.Context) error) error {
	key := lockKey(sessionID, tabID)
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"tab_id", tabID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
