// Package orchestrator drives one conversational turn end to end: classify
// the incoming text, route the intent to a flow, advance the flow's slot
// state, generate the assistant reply, and assemble the updated session and
// message history.
//
// Steps 1-6 of a turn are pure computation; only the classification and
// generation calls perform I/O, each individually time-bounded. Failures at
// either boundary are absorbed (fallback intent, apology reply) and never
// surfaced to the caller; the only hard errors are caller contract
// violations. Turns for the same session id execute with mutual exclusion
// while turns for different sessions never block each other.
package orchestrator
