package flow

import (
	"fmt"
	"strings"

	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/slots"
)

// SlotDef names a single slot and the human-readable label used when the
// instruction enumerates the current order state for the generator.
type SlotDef struct {
	Name  string
	Label string
}

// Prompts holds the context lines a slot-filling flow hands to the generation
// service in each of its states.
type Prompts struct {
	// Collect opens the instruction while slots are still being gathered.
	Collect string
	// Confirm opens the instruction once a complete state is confirmed.
	Confirm string
	// ConfirmClose ends the confirmation instruction (thank the user, etc.).
	ConfirmClose string
	// Reject is the full instruction for an explicit rejection.
	Reject string
}

// SlotFlowConfig declares a slot-filling flow: its name, ordered slots, the
// entity-type-to-slot mapping, and the intents that confirm or reject.
type SlotFlowConfig struct {
	Name          string
	Slots         []SlotDef
	Mapping       slots.Mapping
	ConfirmIntent string
	RejectIntent  string
	Prompts       Prompts
}

// SlotFlow is a generic slot-filling state machine. Conceptually it moves
// COLLECTING -> READY_TO_CONFIRM -> TERMINAL(placed), or jumps to
// TERMINAL(declined) on an explicit rejection at any point. When the state is
// complete but the intent neither confirms nor rejects, the flow re-prompts:
// the collect instruction already tells the generator to summarize and ask
// for confirmation.
type SlotFlow struct {
	name          string
	slots         []SlotDef
	mapping       slots.Mapping
	confirmIntent string
	rejectIntent  string
	prompts       Prompts
}

// NewSlotFlow validates the declared configuration and constructs the flow.
// Validation happens here, at startup, so runtime handling never has to care
// about malformed mapping tables.
func NewSlotFlow(cfg SlotFlowConfig) (*SlotFlow, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("slot flow: name is required")
	}
	if len(cfg.Slots) == 0 {
		return nil, fmt.Errorf("slot flow %q: at least one slot is required", cfg.Name)
	}
	if err := cfg.Mapping.Validate(); err != nil {
		return nil, fmt.Errorf("slot flow %q: %w", cfg.Name, err)
	}
	known := make(map[string]bool, len(cfg.Slots))
	for _, def := range cfg.Slots {
		if def.Name == "" {
			return nil, fmt.Errorf("slot flow %q: slot with empty name", cfg.Name)
		}
		known[def.Name] = true
	}
	for entityType, slot := range cfg.Mapping {
		if !known[slot] {
			return nil, fmt.Errorf("slot flow %q: entity type %q maps to undeclared slot %q", cfg.Name, entityType, slot)
		}
	}
	return &SlotFlow{
		name:          cfg.Name,
		slots:         cfg.Slots,
		mapping:       cfg.Mapping,
		confirmIntent: cfg.ConfirmIntent,
		rejectIntent:  cfg.RejectIntent,
		prompts:       cfg.Prompts,
	}, nil
}

// Name implements Flow.
func (f *SlotFlow) Name() string { return f.name }

// RequiredSlots implements Flow. All declared slots are required.
func (f *SlotFlow) RequiredSlots() []string {
	names := make([]string, len(f.slots))
	for i, def := range f.slots {
		names[i] = def.Name
	}
	return names
}

// IsComplete implements Flow.
func (f *SlotFlow) IsComplete(state core.SlotState) bool {
	for _, def := range f.slots {
		if !state.Filled(def.Name) {
			return false
		}
	}
	return true
}

// Handle implements Flow. It merges extracted entities into the stored slots,
// then decides the transition based on intent and completeness.
func (f *SlotFlow) Handle(state core.SlotState, intent string, entities []core.Entity, _ core.Session) Result {
	merged := slots.Merge(state, f.mapping.Extract(entities))

	switch {
	case intent == f.rejectIntent:
		return Result{Instruction: f.prompts.Reject, UpdatedSlots: merged, Terminal: true}
	case intent == f.confirmIntent && f.IsComplete(merged):
		return Result{Instruction: f.confirmInstruction(merged), UpdatedSlots: merged, Terminal: true}
	default:
		return Result{Instruction: f.collectInstruction(merged), UpdatedSlots: merged}
	}
}

// summary enumerates every slot's current value, including unfilled ones, so
// the generator can see which follow-up questions are still needed. The
// instruction, not code, drives what gets asked next.
func (f *SlotFlow) summary(state core.SlotState) string {
	var b strings.Builder
	for _, def := range f.slots {
		value := state.Get(def.Name)
		if value == "" {
			value = "(not provided)"
		}
		fmt.Fprintf(&b, "%s: %s\n", def.Label, value)
	}
	return b.String()
}

func (f *SlotFlow) collectInstruction(state core.SlotState) string {
	return fmt.Sprintf(`%s

Keep asking questions until you have enough information to complete the request.

Current state:
%s
If everything is provided, summarize it and ask the user for confirmation.`, f.prompts.Collect, f.summary(state))
}

func (f *SlotFlow) confirmInstruction(state core.SlotState) string {
	return fmt.Sprintf(`%s

Final state:
%s
%s`, f.prompts.Confirm, f.summary(state), f.prompts.ConfirmClose)
}
