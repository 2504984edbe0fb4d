package domain

// StateName identifies one step of a wizard flow.
type StateName string

// Event is a wizard navigation action submitted by the client.
type Event string

const (
	// EventNext advances to the state's configured next state.
	EventNext Event = "next"
	// EventPrev returns to the configured previous state.
	EventPrev Event = "prev"
	// EventCancel aborts back to the flow's initial state.
	EventCancel Event = "cancel"
)

// ParseEvent converts a submitted form action into an Event.
func ParseEvent(s string) (Event, error) {
	switch Event(s) {
	case EventNext, EventPrev, EventCancel:
		return Event(s), nil
	}
	return "", &UnrecognizedActionError{Event: Event(s)}
}

// StateNode holds the outward transitions of one state.
type StateNode struct {
	On map[Event]StateName `json:"on,omitempty"`
}

// FlowDefinition is a static transition table plus the state-to-page routing
// context. Transitions are data, not code: Apply is the only interpreter and
// carries no guards or side effects.
//
// Conditional (data-dependent) branching within a step is deliberately not
// modeled; if it becomes necessary it belongs in a guarded transition list
// per event, not in ad hoc code around Apply.
type FlowDefinition struct {
	ID      string                  `json:"id"`
	Initial StateName               `json:"initial"`
	States  map[StateName]StateNode `json:"states"`
	Routes  map[StateName]PageID    `json:"routes"`
}

// Apply executes one transition. It is pure and total over the declared
// (state, event) domain; any pair outside it yields UnrecognizedActionError
// and the caller's state must remain unchanged.
func (f FlowDefinition) Apply(state StateName, event Event) (StateName, error) {
	node, ok := f.States[state]
	if !ok {
		return "", &UnrecognizedActionError{State: state, Event: event}
	}
	next, ok := node.On[event]
	if !ok {
		return "", &UnrecognizedActionError{State: state, Event: event}
	}
	return next, nil
}

// Terminal reports whether the state declares no next transition.
func (f FlowDefinition) Terminal(state StateName) bool {
	node, ok := f.States[state]
	if !ok {
		return true
	}
	_, hasNext := node.On[EventNext]
	return !hasNext
}
