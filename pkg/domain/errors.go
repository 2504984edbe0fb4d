package domain

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a
// (session, tab) pair. Callers recover by redirecting to the flow start.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrMissingTabID is returned when a flow request carries no tab identifier.
// This is a client error (4xx), never grounds for creating a snapshot.
var ErrMissingTabID = errors.New("missing tab id")

// ErrUnknownLanguage is returned when a path or raw value cannot be mapped
// to a supported language.
var ErrUnknownLanguage = errors.New("unknown language")

// RouteNotFoundError indicates a lookup for a page that should exist by
// construction. It is a configuration defect, not a request-time condition,
// and should abort startup when surfaced by validation.
type RouteNotFoundError struct {
	File PageID
	Path string
}

func (e *RouteNotFoundError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("no route found for file %q", e.File)
	}
	return fmt.Sprintf("no route found for path %q", e.Path)
}

// UnrecognizedActionError indicates a (state, event) pair outside the flow's
// declared transition table. Kept distinct from generic errors so handlers
// can answer 4xx with a diagnosable code instead of a blind 500.
type UnrecognizedActionError struct {
	State StateName
	Event Event
}

func (e *UnrecognizedActionError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("unrecognized action %q", e.Event)
	}
	return fmt.Sprintf("unrecognized action %q in state %q", e.Event, e.State)
}

// TemplateError indicates a URL template whose placeholders do not match the
// supplied parameters.
type TemplateError struct {
	Template string
	Param    string
	Surplus  bool
}

func (e *TemplateError) Error() string {
	if e.Surplus {
		return fmt.Sprintf("parameter %q does not match any placeholder in template %q", e.Param, e.Template)
	}
	return fmt.Sprintf("missing parameter %q for template %q", e.Param, e.Template)
}
