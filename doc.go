/*
Package parcours drives bilingual, session-persisted wizard flows.

It combines two pieces that ordinary routing keeps apart: a route registry
in which every logical page has exactly one identity but two language-scoped
URLs (English and French, kept in bijection), and a wizard engine whose
progress survives process boundaries by persisting a snapshot per
(session, tab) pair into a pluggable store.

# Concept

A flow is a static transition table: states, next/prev/cancel events, and a
routing context mapping every state to a logical page id. The engine loads
or creates the snapshot for an inbound (session, tab) pair, applies the
submitted event, persists the result synchronously, and resolves the new
state's page into a concrete localized URL for the redirect. Because the
snapshot is keyed by an opaque per-tab token, one signed-in user can run
several independent applications side by side.

# Usage

	eng, err := parcours.New(routing.Tree(), flow.InPerson())
	if err != nil {
		log.Fatal(err) // configuration defect: bad tree or flow
	}

	ctx := context.Background()
	snap, err := eng.LoadOrCreate(ctx, sessionID, tabID)
	if err != nil {
		log.Fatal(err)
	}

	snap, err = eng.Dispatch(ctx, sessionID, tabID, domain.EventNext)
	if err != nil {
		log.Fatal(err)
	}

	target, err := eng.RouteFor(snap, domain.LanguageEN, nil,
		url.Values{"tid": {tabID}})
	// -> redirect the response to target

Stores live in pkg/adapters (memory, redis, postgres); the HTTP adapter in
pkg/adapters/http mounts GET/POST handlers for every localized page path.
*/
package parcours
