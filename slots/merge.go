package slots

import "github.com/y3s-labs/povo/core"

// Merge combines previously stored slot values with newly extracted ones.
// For every key present in incoming with a non-empty value the result takes
// the incoming value; every other key retains current's value. Keys absent
// from both remain absent.
//
// This is whole-value replacement per key, never a deep combination: a new
// "toppings" value fully replaces the old one. Merge is a pure function of
// its inputs; merging an empty incoming state is the identity.
func Merge(current, incoming core.SlotState) core.SlotState {
	merged := current.Clone()
	for key, value := range incoming {
		if value != "" {
			merged[key] = value
		}
	}
	return merged
}
