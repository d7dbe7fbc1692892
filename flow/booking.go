package flow

import "github.com/y3s-labs/povo/slots"

// BookingName is the flow name reservation intents route to.
const BookingName = "booking"

// Booking intents with special meaning inside the flow.
const (
	BookingConfirmIntent = "confirm_booking"
	BookingRejectIntent  = "cancel_booking"
)

// NewBooking constructs the restaurant reservation flow.
func NewBooking() *SlotFlow {
	f, err := NewSlotFlow(SlotFlowConfig{
		Name: BookingName,
		Slots: []SlotDef{
			{Name: "restaurant", Label: "Restaurant"},
			{Name: "date", Label: "Date"},
			{Name: "time", Label: "Time"},
			{Name: "party_size", Label: "Party size"},
		},
		Mapping: slots.Mapping{
			"RESTAURANT_TYPE": "restaurant",
			"DATE_TYPE":       "date",
			"TIME_TYPE":       "time",
			"PARTY_SIZE":      "party_size",
		},
		ConfirmIntent: BookingConfirmIntent,
		RejectIntent:  BookingRejectIntent,
		Prompts: Prompts{
			Collect:      "You are helping the user make a restaurant reservation. Collect the restaurant, date, time preference and number of people.",
			Confirm:      "The user has provided complete reservation details.",
			ConfirmClose: "Confirm the reservation details with the user and thank them.",
			Reject:       "The user no longer wants the reservation. Acknowledge the cancellation politely and offer to help with anything else.",
		},
	})
	if err != nil {
		// static configuration above; an error here is a programming bug
		panic(err)
	}
	return f
}
