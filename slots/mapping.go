package slots

import (
	"fmt"

	"github.com/y3s-labs/povo/core"
)

// Mapping declares how entity types produced by the NLU service translate to
// a flow's slot names, e.g. "TOPPING_TYPE" -> "toppings". Each flow owns one
// mapping and validates it at construction time; unknown entity types seen at
// runtime are simply ignored.
type Mapping map[string]string

// Validate checks the mapping is usable: no empty entity types or slot names,
// and no two entity types writing to the same slot.
func (m Mapping) Validate() error {
	seen := make(map[string]string, len(m))
	for entityType, slot := range m {
		if entityType == "" {
			return fmt.Errorf("entity mapping: empty entity type for slot %q", slot)
		}
		if slot == "" {
			return fmt.Errorf("entity mapping: empty slot name for entity type %q", entityType)
		}
		if prev, ok := seen[slot]; ok {
			return fmt.Errorf("entity mapping: slot %q targeted by both %q and %q", slot, prev, entityType)
		}
		seen[slot] = entityType
	}
	return nil
}

// Extract builds a SlotState from classified entities using the mapping.
// Entities with unmapped types or empty values are ignored; repeated entity
// types accumulate into a comma-joined value so "mushrooms" then "olives"
// becomes "mushrooms, olives".
func (m Mapping) Extract(entities []core.Entity) core.SlotState {
	state := core.SlotState{}
	for _, e := range entities {
		slot, ok := m[e.Type]
		if !ok || e.Value == "" {
			continue
		}
		if existing := state[slot]; existing != "" {
			state[slot] = existing + ", " + e.Value
		} else {
			state[slot] = e.Value
		}
	}
	return state
}
