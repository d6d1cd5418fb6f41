package models

import "time"

// Step identifies one stage of the 7-stage booking pipeline.
type Step int

const (
	StepIntake   Step = 1 // qualification, contact capture
	StepDate     Step = 2 // date selection
	StepRoom     Step = 3 // room evaluation (most expensive step)
	StepProducts Step = 4 // products / catering line items
	StepOffer    Step = 5 // commercial offer & negotiation
	StepContract Step = 6 // contract / confirmation
	StepHandover Step = 7 // deposit & site visit
)

// FirstStep and LastStep bound the pipeline.
const (
	FirstStep = StepIntake
	LastStep  = StepHandover
)

func (s Step) String() string {
	switch s {
	case StepIntake:
		return "intake"
	case StepDate:
		return "date"
	case StepRoom:
		return "room"
	case StepProducts:
		return "products"
	case StepOffer:
		return "offer"
	case StepContract:
		return "contract"
	case StepHandover:
		return "handover"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a pipeline step.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// BookingStatus is the commercial status of an event.
// Monotonic Lead → Option → Confirmed; Cancelled is terminal.
type BookingStatus string

const (
	StatusLead      BookingStatus = "lead"
	StatusOption    BookingStatus = "option"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Requirements is the tuple whose fingerprint gates room re-evaluation.
type Requirements struct {
	ParticipantCount    int      `bson:"participant_count" json:"participant_count"`
	SeatingLayout       string   `bson:"seating_layout" json:"seating_layout"`
	DurationWindow      string   `bson:"duration_window" json:"duration_window"`
	SpecialRequirements []string `bson:"special_requirements,omitempty" json:"special_requirements,omitempty"`
}

// LineItem is one selected product (catering, equipment, ...).
type LineItem struct {
	SKU       string  `bson:"sku" json:"sku"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// ContactInfo holds client contact details, updated in place and never routed on.
type ContactInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// AuditEntry is one append-only routing record.
type AuditEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	FromStep  Step      `bson:"from_step" json:"from_step"`
	ToStep    Step      `bson:"to_step" json:"to_step"`
	Reason    string    `bson:"reason" json:"reason"`
}

// BookingState is the full routing state of one event conversation.
// Mutated exclusively by the workflow orchestrator, serialized per event ID.
type BookingState struct {
	ID          string        `bson:"id" json:"id"`
	CurrentStep Step          `bson:"current_step" json:"current_step"`
	CallerStep  *Step         `bson:"caller_step,omitempty" json:"caller_step,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`

	ChosenDate    string `bson:"chosen_date,omitempty" json:"chosen_date,omitempty"` // "YYYY-MM-DD"
	DateConfirmed bool   `bson:"date_confirmed" json:"date_confirmed"`

	Requirements     Requirements `bson:"requirements" json:"requirements"`
	RequirementsHash string       `bson:"requirements_hash,omitempty" json:"requirements_hash,omitempty"`

	LockedRoomID string `bson:"locked_room_id,omitempty" json:"locked_room_id,omitempty"`
	// RoomEvalHash is the requirements fingerprint snapshotted when LockedRoomID was set.
	RoomEvalHash string `bson:"room_eval_hash,omitempty" json:"room_eval_hash,omitempty"`

	SelectedProducts  []LineItem `bson:"selected_products,omitempty" json:"selected_products,omitempty"`
	ProductsConfirmed bool       `bson:"products_confirmed" json:"products_confirmed"`
	OfferHash         string     `bson:"offer_hash,omitempty" json:"offer_hash,omitempty"`

	DepositReceived bool   `bson:"deposit_received" json:"deposit_received"`
	SiteVisitDate   string `bson:"site_visit_date,omitempty" json:"site_visit_date,omitempty"`

	Contact ContactInfo `bson:"contact,omitempty" json:"contact,omitempty"`

	// DetourDepth counts consecutive detours within one incoming message.
	// Transient: reset to 0 when a message is fully processed.
	DetourDepth int `bson:"detour_depth" json:"detour_depth"`

	AuditLog []AuditEntry `bson:"audit_log,omitempty" json:"audit_log,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Terminal reports whether the state can no longer be mutated.
func (s *BookingState) Terminal() bool {
	return s.Status == StatusConfirmed || s.Status == StatusCancelled
}

// RoomDecisionStale reports whether a locked room decision no longer matches
// the current requirements. Invariant: when a room is locked and the pipeline
// is at step 4 or later, RoomEvalHash must equal RequirementsHash.
func (s *BookingState) RoomDecisionStale() bool {
	return s.LockedRoomID != "" && s.RoomEvalHash != s.RequirementsHash
}

// Audit appends one routing record.
func (s *BookingState) Audit(from, to Step, reason string) {
	s.AuditLog = append(s.AuditLog, AuditEntry{
		Timestamp: time.Now(),
		FromStep:  from,
		ToStep:    to,
		Reason:    reason,
	})
}

// Snapshot returns the confirmed-value view handed to the NLU extractor.
func (s *BookingState) Snapshot() StateSnapshot {
	return StateSnapshot{
		EventID:       s.ID,
		CurrentStep:   s.CurrentStep,
		ChosenDate:    s.ChosenDate,
		DateConfirmed: s.DateConfirmed,
		LockedRoomID:  s.LockedRoomID,
		Requirements:  s.Requirements,
		OfferAccepted: s.OfferHash != "",
	}
}
