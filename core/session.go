package core

// Session is the durable context tying together one ongoing conversation.
// Data is the only cross-turn persistence surface: a mapping from flow name to
// that flow's slot state. Each flow owns exactly one key and must not touch
// another flow's key.
//
// Sessions are value types. The orchestrator never mutates a caller-supplied
// session in place; every transformation produces a new value via Clone,
// WithFlowState or WithoutFlowState, leaving persistence to the caller.
type Session struct {
	ID   string               `json:"id"`
	New  bool                 `json:"new"`
	Data map[string]SlotState `json:"data"`
}

// NewSession creates a fresh session with no flow state.
func NewSession(id string) Session {
	return Session{ID: id, New: true, Data: map[string]SlotState{}}
}

// FlowState returns a copy of the slot state owned by the named flow, or an
// empty state if the flow has not stored anything yet.
func (s Session) FlowState(flow string) SlotState {
	if s.Data == nil {
		return SlotState{}
	}
	return s.Data[flow].Clone()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s Session) Clone() Session {
	clone := Session{ID: s.ID, New: s.New, Data: make(map[string]SlotState, len(s.Data))}
	for flow, state := range s.Data {
		clone.Data[flow] = state.Clone()
	}
	return clone
}

// WithFlowState returns a new session whose state for the named flow is
// replaced by the given slot state. All other flow keys are preserved.
func (s Session) WithFlowState(flow string, state SlotState) Session {
	clone := s.Clone()
	clone.Data[flow] = state.Clone()
	return clone
}

// WithoutFlowState returns a new session with the named flow's state reset to
// empty, used on terminal transitions so the next engagement with the flow
// starts a fresh cycle. Other flow keys are untouched.
func (s Session) WithoutFlowState(flow string) Session {
	clone := s.Clone()
	clone.Data[flow] = SlotState{}
	return clone
}
