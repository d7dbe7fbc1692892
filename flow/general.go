package flow

import "github.com/y3s-labs/povo/core"

// GeneralName is the flow name open-ended conversation routes to. It is also
// the router's built-in default flow.
const GeneralName = "general"

const generalInstruction = "You are a helpful, friendly assistant. Respond to the user conversationally."

// General is the open-ended conversation flow. It has no slots and no
// completion concept: every turn simply forwards the history to the
// generation service with a fixed instruction and never terminates.
type General struct{}

// NewGeneral constructs the general conversation flow.
func NewGeneral() *General { return &General{} }

// Name implements Flow.
func (g *General) Name() string { return GeneralName }

// RequiredSlots implements Flow; the general flow has none.
func (g *General) RequiredSlots() []string { return nil }

// IsComplete implements Flow; vacuously true with no required slots.
func (g *General) IsComplete(core.SlotState) bool { return true }

// Handle implements Flow.
func (g *General) Handle(state core.SlotState, _ string, _ []core.Entity, _ core.Session) Result {
	return Result{Instruction: generalInstruction, UpdatedSlots: state.Clone()}
}
