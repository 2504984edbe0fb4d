package parcours

import (
	"context"
	"fmt"
	"net/url"

	"log/slog"

	"github.com/parcours-dev/parcours/internal/logging"
	"github.com/parcours-dev/parcours/pkg/adapters/memory"
	"github.com/parcours-dev/parcours/pkg/domain"
	"github.com/parcours-dev/parcours/pkg/ports"
	"github.com/parcours-dev/parcours/pkg/routing"
	"github.com/parcours-dev/parcours/pkg/session"
)

// Engine is the high-level entry point for the wizard library. It binds a
// flow definition to the route tree and drives load-dispatch-redirect cycles
// against a pluggable snapshot store.
type Engine struct {
	flow     domain.FlowDefinition
	resolver *routing.Resolver
	sessions *session.Manager
	store    ports.SnapshotStore
	locker   ports.DistributedLocker
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a snapshot store (default: in-process memory).
func WithStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine for the given flow over the given route tree.
// The tree and the flow are validated here: a duplicate page id, a missing
// language template, or an unrouted state aborts construction instead of
// surfacing as a broken URL inside a request.
func New(tree []domain.RouteNode, flow domain.FlowDefinition, opts ...Option) (*Engine, error) {
	eng := &Engine{
		flow:     flow,
		resolver: routing.NewResolver(tree),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := routing.CheckTree(tree); err != nil {
		return nil, err
	}
	if err := routing.CheckFlow(flow, eng.resolver); err != nil {
		return nil, err
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("flow", flow.ID)

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	return eng, nil
}

// Flow returns the engine's flow definition.
func (e *Engine) Flow() domain.FlowDefinition {
	return e.flow
}

// Resolver returns the engine's route resolver.
func (e *Engine) Resolver() *routing.Resolver {
	return e.resolver
}

// Sessions returns the engine's session manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// LoadOrCreate rehydrates the wizard instance for a (session, tab) pair, or
// creates one at the flow's initial state. Creation persists immediately;
// loading applies no transition, so repeated calls are idempotent.
func (e *Engine) LoadOrCreate(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	if tabID == "" {
		return nil, domain.ErrMissingTabID
	}
	snap, err := e.sessions.LoadOrStart(ctx, sessionID, tabID, e.flow)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("snapshot loaded", "tab_id", tabID, "state", snap.Value)
	return snap, nil
}

// Load rehydrates an existing instance without creating one.
// Returns domain.ErrSnapshotNotFound for an unknown or expired tab id;
// callers recover by redirecting to the flow start.
func (e *Engine) Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	if tabID == "" {
		return nil, domain.ErrMissingTabID
	}
	return e.sessions.Load(ctx, sessionID, tabID)
}

// Dispatch applies one navigation event to the pair's snapshot and persists
// the result before returning. Load, transition, and save run under the
// per-(session, tab) lock, so concurrent dispatches take turns. An event the
// current state does not declare returns UnrecognizedActionError and leaves
// the persisted state untouched.
func (e *Engine) Dispatch(ctx context.Context, sessionID, tabID string, event domain.Event) (*domain.Snapshot, error) {
	if tabID == "" {
		return nil, domain.ErrMissingTabID
	}

	var snap *domain.Snapshot
	err := e.sessions.WithLock(ctx, sessionID, tabID, func(ctx context.Context) error {
		var err error
		snap, err = e.sessions.Store().Load(ctx, sessionID, tabID)
		if err != nil {
			return err
		}

		next, err := e.flow.Apply(snap.Value, event)
		if err != nil {
			return err
		}

		snap.Value = next
		if err := e.sessions.Store().Save(ctx, sessionID, tabID, snap); err != nil {
			return fmt.Errorf("failed to persist transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("transition applied", "tab_id", tabID, "event", event, "state", snap.Value)
	return snap, nil
}

// RouteFor resolves the concrete localized URL for the snapshot's current
// state. The caller supplies the language determined from the inbound
// request; the tab id is preserved through the query values.
func (e *Engine) RouteFor(snap *domain.Snapshot, lang domain.Language, params map[string]string, query url.Values) (string, error) {
	page, ok := snap.Page()
	if !ok {
		return "", &domain.RouteNotFoundError{File: domain.PageID(snap.Value)}
	}
	return e.resolver.ResolveURL(page, lang, params, query)
}

// ResolveURL produces the localized URL for any declared page. Every
// internal link and redirect in the surrounding application funnels
// through here.
func (e *Engine) ResolveURL(file domain.PageID, lang domain.Language, params map[string]string, query url.Values) (string, error) {
	return e.resolver.ResolveURL(file, lang, params, query)
}
