package models

// StateSnapshot is the confirmed-value view of an event handed to the NLU
// extractor alongside the raw message text.
type StateSnapshot struct {
	EventID       string       `json:"event_id"`
	CurrentStep   Step         `json:"current_step"`
	ChosenDate    string       `json:"chosen_date,omitempty"`
	DateConfirmed bool         `json:"date_confirmed"`
	LockedRoomID  string       `json:"locked_room_id,omitempty"`
	Requirements  Requirements `json:"requirements"`
	OfferAccepted bool         `json:"offer_accepted"`
}

// ExtractedFields is the NLU oracle's structured output for one message.
// Nil pointers mean "no new value provided" for that field.
type ExtractedFields struct {
	Date                *string  `json:"date,omitempty"` // "YYYY-MM-DD"
	RoomID              *string  `json:"room_id,omitempty"`
	ParticipantCount    *int     `json:"participant_count,omitempty"`
	SeatingLayout       *string  `json:"seating_layout,omitempty"`
	DurationWindow      *string  `json:"duration_window,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
	Products            []string `json:"products,omitempty"`
	PriceAmount         *float64 `json:"price_amount,omitempty"`
	DepositAmount       *float64 `json:"deposit_amount,omitempty"`
	SiteVisitDate       *string  `json:"site_visit_date,omitempty"`
	ContactEmail        *string  `json:"contact_email,omitempty"`
	ContactPhone        *string  `json:"contact_phone,omitempty"`
}

// MessageRequest is the inbound payload for one client message.
type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// IntakeRequest creates a new event conversation.
type IntakeRequest struct {
	Contact      ContactInfo  `json:"contact"`
	Requirements Requirements `json:"requirements"`
	ChosenDate   string       `json:"chosen_date,omitempty"`
}
