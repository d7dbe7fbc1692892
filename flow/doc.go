// Package flow models conversational sub-tasks as a closed set of variants
// behind one capability interface: required slots, completeness, and a pure
// Handle step that merges entities, decides terminal vs. continuing state and
// produces the next system instruction. New flows are added by implementing
// the Flow interface and registering a name, not by branching on intent
// strings inside a monolith.
package flow
