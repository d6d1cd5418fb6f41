package models

import "time"

// DraftStatus is the approval status of an outbound draft.
type DraftStatus string

const (
	DraftPending  DraftStatus = "pending"
	DraftApproved DraftStatus = "approved"
	DraftRejected DraftStatus = "rejected"
)

// OutboundDraft is a client-facing message awaiting human approval.
// Routing state (caller step, hashes) is included so the reviewer can see
// exactly where the conversation stands.
type OutboundDraft struct {
	ID      string `bson:"id" json:"id"`
	EventID string `bson:"event_id" json:"event_id"`
	Step    Step   `bson:"step" json:"step"`
	Action  string `bson:"action" json:"action"`
	Body    string `bson:"body" json:"body"`

	CallerStep       *Step  `bson:"caller_step,omitempty" json:"caller_step,omitempty"`
	RequirementsHash string `bson:"requirements_hash,omitempty" json:"requirements_hash,omitempty"`
	RoomEvalHash     string `bson:"room_eval_hash,omitempty" json:"room_eval_hash,omitempty"`
	OfferHash        string `bson:"offer_hash,omitempty" json:"offer_hash,omitempty"`

	Status    DraftStatus `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	DecidedAt *time.Time  `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	DecidedBy string      `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
}
