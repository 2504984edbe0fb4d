package domain

// FlowContext is the persisted context of one wizard instance.
type FlowContext struct {
	// Routes maps every flow state to its logical page, captured from the
	// flow definition when the snapshot is created.
	Routes map[StateName]PageID `json:"routes"`

	// Data holds free-form flow data owned by the surrounding application
	// (the wizard engine never interprets it, only carries it).
	Data map[string]any `json:"data,omitempty"`
}

// Snapshot is the serializable unit of persistence for one (session, tab)
// wizard instance. It is owned exclusively by its session entry; only the
// engine's dispatch path mutates it.
type Snapshot struct {
	Value   StateName   `json:"value"`
	Context FlowContext `json:"context"`
}

// NewSnapshot creates a fresh snapshot at the flow's initial state.
func NewSnapshot(flow FlowDefinition) *Snapshot {
	routes := make(map[StateName]PageID, len(flow.Routes))
	for state, page := range flow.Routes {
		routes[state] = page
	}
	return &Snapshot{
		Value: flow.Initial,
		Context: FlowContext{
			Routes: routes,
			Data:   make(map[string]any),
		},
	}
}

// Page returns the logical page routed for the snapshot's current state.
func (s *Snapshot) Page() (PageID, bool) {
	page, ok := s.Context.Routes[s.Value]
	return page, ok
}

// Clone returns a copy with deep-copied context maps for safe mutation,
// so stores and callers never alias each other's state.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	next := *s
	next.Context.Routes = make(map[StateName]PageID, len(s.Context.Routes))
	for k, v := range s.Context.Routes {
		next.Context.Routes[k] = v
	}
	next.Context.Data = make(map[string]any, len(s.Context.Data))
	for k, v := range s.Context.Data {
		next.Context.Data[k] = v
	}
	return &next
}
