package models

// Skip reasons attached to routing decisions that do not detour.
const (
	SkipInPlace               = "in_place"
	SkipNoStructuralImpact    = "no_structural_impact"
	SkipRequirementsHashMatch = "requirements_hash_match"
)

// NextStepDecision is the router's verdict for one detected change.
// A value object: computed per message, never persisted.
type NextStepDecision struct {
	NextStep          Step   `json:"next_step"`
	UpdatedCallerStep *Step  `json:"updated_caller_step,omitempty"`
	SkipReason        string `json:"skip_reason,omitempty"`
	NeedsReeval       bool   `json:"needs_reeval"`
}

// Detour reports whether the decision moves the conversation away from
// where it was.
func (d NextStepDecision) Detour() bool {
	return d.UpdatedCallerStep != nil
}

// StepResult is what a step processor produced for this turn.
type StepResult struct {
	Action    string `json:"action"`
	DraftID   string `json:"draft_id,omitempty"`
	HaltsTurn bool   `json:"halts_turn"`
}

// TurnResult is returned to the API layer after one message is processed.
type TurnResult struct {
	EventID             string            `json:"event_id"`
	Change              *ChangeDetection  `json:"change,omitempty"`
	Decision            *NextStepDecision `json:"decision,omitempty"`
	Result              *StepResult       `json:"result,omitempty"`
	CurrentStep         Step              `json:"current_step"`
	Escalated           bool              `json:"escalated"`
	NeedsDisambiguation bool              `json:"needs_disambiguation,omitempty"`
	Candidates          []ChangeType      `json:"candidates,omitempty"`
	Trace               []string          `json:"trace,omitempty"`
}
