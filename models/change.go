package models

// ChangeType classifies a revision of an already-confirmed booking variable.
type ChangeType string

const (
	ChangeDate         ChangeType = "date"
	ChangeRoom         ChangeType = "room"
	ChangeRequirements ChangeType = "requirements"
	ChangeProducts     ChangeType = "products"
	ChangeCommercial   ChangeType = "commercial"
	ChangeDeposit      ChangeType = "deposit"
	ChangeSiteVisit    ChangeType = "site_visit"
	ChangeClientInfo   ChangeType = "client_info"
)

// ChangePrecedence is the fixed priority order used when one message touches
// several variables: the highest-priority change wins and callers may re-run
// detection on the residual text.
var ChangePrecedence = []ChangeType{
	ChangeDate,
	ChangeRoom,
	ChangeRequirements,
	ChangeProducts,
	ChangeCommercial,
	ChangeDeposit,
	ChangeSiteVisit,
	ChangeClientInfo,
}

var ownerSteps = map[ChangeType]Step{
	ChangeDate:         StepDate,
	ChangeRoom:         StepRoom,
	ChangeRequirements: StepRoom,
	ChangeProducts:     StepProducts,
	ChangeCommercial:   StepOffer,
	ChangeDeposit:      StepHandover,
	ChangeSiteVisit:    StepHandover,
}

// OwnerStep returns the step responsible for resolving the change.
// ClientInfo has no owner: it is applied in place and never detours.
func OwnerStep(ct ChangeType) (Step, bool) {
	step, ok := ownerSteps[ct]
	return step, ok
}

// DetectionMode says whether the client already supplied the new value.
type DetectionMode string

const (
	// ModeValueProvided — the replacement value is in the message, ready to apply.
	ModeValueProvided DetectionMode = "value_provided"
	// ModeNeedsClarification — the client asked to change but gave no value yet.
	ModeNeedsClarification DetectionMode = "needs_clarification"
)

// ChangeDetection is the detector's positive result: exactly one change.
type ChangeDetection struct {
	Type     ChangeType    `json:"type"`
	Mode     DetectionMode `json:"mode"`
	NewValue string        `json:"new_value,omitempty"`
}
