package ports

import (
	"context"
	"testing"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// RunSnapshotStoreContract verifies that a store satisfies the SnapshotStore
// semantics every adapter must share. Adapter test files call this with a
// freshly constructed, empty store.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	snap := &domain.Snapshot{
		Value: "privacy-statement",
		Context: domain.FlowContext{
			Routes: map[domain.StateName]domain.PageID{
				"privacy-statement": domain.PageInPersonPrivacyStatement,
			},
			Data: map[string]any{"restarted": false},
		},
	}

	t.Run("Load_Missing", func(t *testing.T) {
		_, err := store.Load(ctx, "session-a", "tab-1")
		if err != domain.ErrSnapshotNotFound {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		if err := store.Save(ctx, "session-a", "tab-1", snap); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, "session-a", "tab-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.Value != snap.Value {
			t.Errorf("value mismatch: got %q, want %q", got.Value, snap.Value)
		}
		if got.Context.Routes["privacy-statement"] != domain.PageInPersonPrivacyStatement {
			t.Errorf("routes not persisted: %v", got.Context.Routes)
		}
	})

	t.Run("Load_ReturnsCopy", func(t *testing.T) {
		got, err := store.Load(ctx, "session-a", "tab-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		got.Value = "mutated"
		got.Context.Data["restarted"] = true

		again, err := store.Load(ctx, "session-a", "tab-1")
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if again.Value != snap.Value {
			t.Errorf("store state leaked through returned pointer: %q", again.Value)
		}
	})

	t.Run("Tabs_AreIndependent", func(t *testing.T) {
		other := snap.Clone()
		other.Value = "review"
		if err := store.Save(ctx, "session-a", "tab-2", other); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		one, err := store.Load(ctx, "session-a", "tab-1")
		if err != nil {
			t.Fatalf("load tab-1 failed: %v", err)
		}
		two, err := store.Load(ctx, "session-a", "tab-2")
		if err != nil {
			t.Fatalf("load tab-2 failed: %v", err)
		}
		if one.Value == two.Value {
			t.Errorf("tab entries aliased: both %q", one.Value)
		}
	})

	t.Run("Sessions_AreIsolated", func(t *testing.T) {
		if _, err := store.Load(ctx, "session-b", "tab-1"); err != domain.ErrSnapshotNotFound {
			t.Fatalf("expected ErrSnapshotNotFound across sessions, got %v", err)
		}
		tabs, err := store.List(ctx, "session-b")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tabs) != 0 {
			t.Errorf("session-b sees foreign tabs: %v", tabs)
		}
	})

	t.Run("List", func(t *testing.T) {
		tabs, err := store.List(ctx, "session-a")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		lookup := make(map[string]bool, len(tabs))
		for _, id := range tabs {
			lookup[id] = true
		}
		for _, want := range []string{"tab-1", "tab-2"} {
			if !lookup[want] {
				t.Errorf("tab %s missing from list %v", want, tabs)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "session-a", "tab-2"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "session-a", "tab-2"); err != domain.ErrSnapshotNotFound {
			t.Fatalf("expected ErrSnapshotNotFound after delete, got %v", err)
		}
	})
}
