package core

// SlotState holds the named slot values a flow has accumulated so far for one
// session. A missing key or an empty string both mean the slot is unfilled.
// SlotState values are treated as immutable: transformations return new maps
// rather than mutating in place.
type SlotState map[string]string

// Get returns the value for a slot name, or "" if unfilled.
func (s SlotState) Get(name string) string { return s[name] }

// Filled reports whether the named slot holds a non-empty value.
func (s SlotState) Filled(name string) bool { return s[name] != "" }

// Clone returns an independent copy of the slot state.
func (s SlotState) Clone() SlotState {
	if s == nil {
		return SlotState{}
	}
	out := make(SlotState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether two slot states hold the same key/value pairs.
func (s SlotState) Equal(other SlotState) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
