package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parcours-dev/parcours/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SnapshotStore using Redis. Snapshots are stored as
// JSON under one key per (session, tab); a per-session set indexes the tabs
// so List does not need a cluster-wide scan.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for snapshot entries. The surrounding
// application usually aligns this with its session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshot entries.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "parcours:flow:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID, tabID string) string {
	return s.prefix + sessionID + ":" + tabID
}

func (s *Store) indexKey(sessionID string) string {
	return s.prefix + sessionID + ":tabs"
}

// Save persists the snapshot to Redis.
func (s *Store) Save(ctx context.Context, sessionID, tabID string, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID, tabID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(sessionID), tabID)
	if s.ttl > 0 {
		// The index dies with its newest entry; tabs whose value expired
		// earlier are pruned lazily in List.
		pipe.Expire(ctx, s.indexKey(sessionID), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the snapshot from Redis.
func (s *Store) Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.key(sessionID, tabID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the entry for a (session, tab) pair.
func (s *Store) Delete(ctx context.Context, sessionID, tabID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID, tabID))
	pipe.SRem(ctx, s.indexKey(sessionID), tabID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the tab ids under the session, pruning index entries whose
// snapshot key has expired.
func (s *Store) List(ctx context.Context, sessionID string) ([]string, error) {
	tabs, err := s.client.SMembers(ctx, s.indexKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}

	live := make([]string, 0, len(tabs))
	for _, tabID := range tabs {
		exists, err := s.client.Exists(ctx, s.key(sessionID, tabID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check tab %s: %w", tabID, err)
		}
		if exists == 0 {
			s.client.SRem(ctx, s.indexKey(sessionID), tabID)
			continue
		}
		live = append(live, tabID)
	}
	return live, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
