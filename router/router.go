package router

import (
	"sort"
	"sync"
)

// DefaultFlow is the fallback target used until SetDefaultFlow overrides it.
const DefaultFlow = "general"

// Router resolves an intent label to the name of the flow that should handle
// the turn. Unregistered or missing intents degrade gracefully to the default
// flow rather than failing; there are no error conditions.
type Router struct {
	mu          sync.RWMutex
	registry    map[string]string
	defaultFlow string
}

// New constructs an empty router with the built-in default flow.
func New() *Router {
	return &Router{registry: make(map[string]string), defaultFlow: DefaultFlow}
}

// Register maps an intent to a flow. It is an idempotent upsert; the last
// registration for a given intent wins.
func (r *Router) Register(intent, flow string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registry[intent] = flow
}

// RegisterMany applies Register for each intent/flow pair.
func (r *Router) RegisterMany(mapping map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for intent, flow := range mapping {
		r.registry[intent] = flow
	}
}

// SetDefaultFlow replaces the fallback target.
func (r *Router) SetDefaultFlow(flow string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultFlow = flow
}

// DefaultFlow returns the current fallback target.
func (r *Router) DefaultFlow() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultFlow
}

// Route returns the flow registered for the intent, or the default flow when
// the intent is empty or unregistered. Pure function of registry state.
func (r *Router) Route(intent string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if intent == "" {
		return r.defaultFlow
	}
	if flow, ok := r.registry[intent]; ok {
		return flow
	}
	return r.defaultFlow
}

// ListIntents returns all registered intent keys in sorted order. Intended
// for introspection and debugging only; not used on the routing path.
func (r *Router) ListIntents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	intents := make([]string, 0, len(r.registry))
	for intent := range r.registry {
		intents = append(intents, intent)
	}
	sort.Strings(intents)
	return intents
}
