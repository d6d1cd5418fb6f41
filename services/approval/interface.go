package approval

import (
	"context"

	draftRepo "venueflow/database/repository/draft"
	"venueflow/models"
)

// ApprovalService is the human-in-the-loop gate. Every client-facing draft
// is queued here and nothing is delivered without an explicit approval.
type ApprovalService interface {
	Enqueue(ctx context.Context, draft *models.OutboundDraft) (string, error)
	ListPending(ctx context.Context) ([]models.OutboundDraft, error)
	Decide(ctx context.Context, draftID string, approve bool, decidedBy string) (*models.OutboundDraft, error)
}

// DefaultApprovalService implements ApprovalService with Mongo-backed drafts
// and a Redis list of pending IDs for fast queue reads.
type DefaultApprovalService struct {
	Repo draftRepo.DraftRepository
}
