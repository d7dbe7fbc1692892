package flow

import "github.com/y3s-labs/povo/slots"

// PizzaName is the flow name pizza-ordering intents route to.
const PizzaName = "pizza"

// Pizza ordering intents with special meaning inside the flow.
const (
	PizzaConfirmIntent = "confirm_order"
	PizzaRejectIntent  = "hate"
)

// NewPizza constructs the pizza-ordering flow: four required slots filled
// from typed entities across however many turns it takes, then confirmation.
func NewPizza() *SlotFlow {
	f, err := NewSlotFlow(SlotFlowConfig{
		Name: PizzaName,
		Slots: []SlotDef{
			{Name: "base", Label: "Base"},
			{Name: "toppings", Label: "Toppings"},
			{Name: "size", Label: "Size"},
			{Name: "sauce", Label: "Sauce"},
		},
		Mapping: slots.Mapping{
			"BASE_TYPE":    "base",
			"TOPPING_TYPE": "toppings",
			"SIZE_TYPE":    "size",
			"SAUCE_TYPE":   "sauce",
		},
		ConfirmIntent: PizzaConfirmIntent,
		RejectIntent:  PizzaRejectIntent,
		Prompts: Prompts{
			Collect:      "The user is putting together a pizza order. Ask them about their pizza preferences.",
			Confirm:      "The user has provided a complete pizza order.",
			ConfirmClose: "Confirm the order, let them know their pizza is on the way and thank them.",
			Reject:       "The user expressed dislike for pizza. Acknowledge their preference politely and suggest alternatives or say goodbye.",
		},
	})
	if err != nil {
		// static configuration above; an error here is a programming bug
		panic(err)
	}
	return f
}
