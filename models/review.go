package models

import "time"

// ManualReview is an escalation record created when routing gives up on a
// message (detour loop exceeded) and hands the conversation to a human.
type ManualReview struct {
	ID          string    `bson:"id" json:"id"`
	EventID     string    `bson:"event_id" json:"event_id"`
	Reason      string    `bson:"reason" json:"reason"`
	StableStep  Step      `bson:"stable_step" json:"stable_step"`
	DetourDepth int       `bson:"detour_depth" json:"detour_depth"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	Resolved    bool      `bson:"resolved" json:"resolved"`
}

// ReviewPayload is the escalation task payload queued for the review worker.
type ReviewPayload struct {
	EventID     string `json:"event_id"`
	Reason      string `json:"reason"`
	StableStep  Step   `json:"stable_step"`
	DetourDepth int    `json:"detour_depth"`
}
