package parcours_test

import (
	"context"
	"net/url"
	"testing"

	parcours "github.com/parcours-dev/parcours"
	"github.com/parcours-dev/parcours/pkg/adapters/memory"
	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/parcours-dev/parcours/pkg/flow"
	"github.com/parcours-dev/parcours/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*parcours.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	eng, err := parcours.New(routing.Tree(), flow.InPerson(), parcours.WithStore(store))
	require.NoError(t, err)
	return eng, store
}

func TestNew_RejectsBrokenConfiguration(t *testing.T) {
	def := flow.InPerson()
	def.Routes[flow.StateReview] = "protected/in-person/missing"
	_, err := parcours.New(routing.Tree(), def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "routes to unknown page")

	tree := []domain.RouteNode{
		domain.Page("dup", domain.Paths{domain.LanguageEN: "/en/a", domain.LanguageFR: "/fr/a"}),
		domain.Page("dup", domain.Paths{domain.LanguageEN: "/en/b", domain.LanguageFR: "/fr/b"}),
	}
	_, err = parcours.New(tree, flow.InPerson())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate file id")
}

func TestLoadOrCreate_RequiresTabID(t *testing.T) {
	eng, store := newEngine(t)
	ctx := context.Background()

	_, err := eng.LoadOrCreate(ctx, "session-a", "")
	assert.ErrorIs(t, err, domain.ErrMissingTabID)

	// No entry may be created on a rejected request.
	tabs, err := store.List(ctx, "session-a")
	require.NoError(t, err)
	assert.Empty(t, tabs)
}

func TestDispatch_PersistsBeforeReturning(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()

	_, err := eng.LoadOrCreate(ctx, "session-a", "tab-1")
	require.NoError(t, err)

	snap, err := eng.Dispatch(ctx, "session-a", "tab-1", domain.EventNext)
	require.NoError(t, err)
	assert.Equal(t, flow.StatePrivacyStatement, snap.Value)

	// A fresh load (simulating the next request) observes the transition.
	reloaded, err := eng.LoadOrCreate(ctx, "session-a", "tab-1")
	require.NoError(t, err)
	assert.Equal(t, flow.StatePrivacyStatement, reloaded.Value)
}

func TestDispatch_UndeclaredEventLeavesStateUntouched(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()

	_, err := eng.LoadOrCreate(ctx, "session-a", "tab-1")
	require.NoError(t, err)

	_, err = eng.Dispatch(ctx, "session-a", "tab-1", domain.EventPrev)
	var actionErr *domain.UnrecognizedActionError
	require.ErrorAs(t, err, &actionErr)

	snap, err := eng.Load(ctx, "session-a", "tab-1")
	require.NoError(t, err)
	assert.Equal(t, eng.Flow().Initial, snap.Value)
}

func TestDispatch_MissingSnapshot(t *testing.T) {
	eng, _ := newEngine(t)

	_, err := eng.Dispatch(context.Background(), "session-a", "tab-unknown", domain.EventNext)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

// End-to-end: no session entry, tid=abc123, language en.
func TestEndToEndScenario(t *testing.T) {
	eng, _ := newEngine(t)
	ctx := context.Background()
	query := url.Values{"tid": {"abc123"}}

	// (a) first visit creates the start state
	snap, err := eng.LoadOrCreate(ctx, "session-a", "abc123")
	require.NoError(t, err)
	assert.Equal(t, flow.StateStart, snap.Value)

	// (b) next lands on privacy-statement
	snap, err = eng.Dispatch(ctx, "session-a", "abc123", domain.EventNext)
	require.NoError(t, err)
	assert.Equal(t, flow.StatePrivacyStatement, snap.Value)

	// (c) the redirect target is the English path with the tab id preserved
	target, err := eng.RouteFor(snap, domain.LanguageEN, nil, query)
	require.NoError(t, err)
	assert.Equal(t, "/en/in-person/privacy-statement?tid=abc123", target)

	// ... and the French one resolves from the same state
	target, err = eng.RouteFor(snap, domain.LanguageFR, nil, query)
	require.NoError(t, err)
	assert.Equal(t, "/fr/demande-en-personne/declaration-de-confidentialite?tid=abc123", target)

	// (d) a new request with the same tid resumes, not restarts
	snap, err = eng.LoadOrCreate(ctx, "session-a", "abc123")
	require.NoError(t, err)
	assert.Equal(t, flow.StatePrivacyStatement, snap.Value)
}

func TestCancel_ResetsValueButKeepsEntry(t *testing.T) {
	eng, store := newEngine(t)
	ctx := context.Background()

	_, err := eng.LoadOrCreate(ctx, "session-a", "tab-1")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = eng.Dispatch(ctx, "session-a", "tab-1", domain.EventNext)
		require.NoError(t, err)
	}

	snap, err := eng.Dispatch(ctx, "session-a", "tab-1", domain.EventCancel)
	require.NoError(t, err)
	assert.Equal(t, eng.Flow().Initial, snap.Value)

	// Cancellation resets the state; it does not remove the entry.
	tabs, err := store.List(ctx, "session-a")
	require.NoError(t, err)
	assert.Contains(t, tabs, "tab-1")
}

func TestRouteFor_ParameterizedPage(t *testing.T) {
	eng, _ := newEngine(t)

	got, err := eng.ResolveURL(domain.PageCaseDetail, domain.LanguageEN,
		map[string]string{"caseID": "17"}, url.Values{"tid": {"abc123"}})
	require.NoError(t, err)
	assert.Equal(t, "/en/cases/17?tid=abc123", got)
}
