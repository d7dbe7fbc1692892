package flow

import (
	"fmt"
	"sort"
	"sync"

	"github.com/y3s-labs/povo/core"
)

// Result is the outcome of one flow handling step. The instruction is handed
// to the generation service as the system-level directive; UpdatedSlots is
// the new slot state the orchestrator stores on the session (or clears when
// Terminal is true, so the next engagement starts a fresh cycle).
type Result struct {
	Instruction  string
	UpdatedSlots core.SlotState
	Terminal     bool
}

// Flow is the capability set every conversational sub-task implements.
// Handle must be pure: it never performs I/O, never mutates its inputs and
// never fails on malformed entities - unknown entity types are ignored and
// missing entities leave existing slot values untouched.
type Flow interface {
	// Name returns the flow name used as the session data key and the
	// router target.
	Name() string

	// RequiredSlots returns the slot names that must be filled for
	// completeness; empty for flows with no completion concept.
	RequiredSlots() []string

	// IsComplete reports whether every required slot holds a non-empty value.
	IsComplete(state core.SlotState) bool

	// Handle advances the flow by one turn.
	Handle(state core.SlotState, intent string, entities []core.Entity, session core.Session) Result
}

// Registry holds the closed set of flows the orchestrator can dispatch to,
// keyed by name. Configured once at startup; reads are safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]Flow
}

// NewRegistry constructs an empty flow registry.
func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]Flow)}
}

// Register adds a flow under its name. Registering a second flow with the
// same name is a configuration bug and returns an error.
func (r *Registry) Register(f Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.flows[f.Name()]; exists {
		return fmt.Errorf("flow %q already registered", f.Name())
	}
	r.flows[f.Name()] = f
	return nil
}

// MustRegister registers flows and panics on duplicates. Intended for static
// startup wiring where a duplicate is unrecoverable.
func (r *Registry) MustRegister(flows ...Flow) {
	for _, f := range flows {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Get returns the flow registered under name.
func (r *Registry) Get(name string) (Flow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[name]
	return f, ok
}

// Names returns the registered flow names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
