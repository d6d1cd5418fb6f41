package approval

import (
	"context"
	"fmt"
	"time"

	"venueflow/models"
	"venueflow/utils"

	"go.uber.org/zap"
)

// Enqueue stores the draft as pending and pushes its ID onto the pending list.
func (s *DefaultApprovalService) Enqueue(ctx context.Context, draft *models.OutboundDraft) (string, error) {
	logger := utils.GetLogger()

	draft.Status = models.DraftPending
	if err := s.Repo.Create(ctx, draft); err != nil {
		return "", fmt.Errorf("failed to store outbound draft: %w", err)
	}

	cacheClient := utils.GetApprovalCacheClient()
	if err := cacheClient.RPush(ctx, utils.PendingDraftsKey, draft.ID).Err(); err != nil {
		return "", fmt.Errorf("failed to queue draft for approval: %w", err)
	}

	logger.Info("Draft queued for approval",
		zap.String("draftID", draft.ID),
		zap.String("eventID", draft.EventID),
		zap.String("action", draft.Action),
	)
	return draft.ID, nil
}

// ListPending returns all drafts currently awaiting a human decision.
func (s *DefaultApprovalService) ListPending(ctx context.Context) ([]models.OutboundDraft, error) {
	cacheClient := utils.GetApprovalCacheClient()

	ids, err := cacheClient.LRange(ctx, utils.PendingDraftsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read pending draft queue: %w", err)
	}
	return s.Repo.GetByIDs(ctx, ids)
}

// Decide approves or rejects a pending draft and removes it from the queue.
func (s *DefaultApprovalService) Decide(ctx context.Context, draftID string, approve bool, decidedBy string) (*models.OutboundDraft, error) {
	logger := utils.GetLogger()

	draft, err := s.Repo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.DraftPending {
		return nil, fmt.Errorf("draft %s already decided (%s)", draftID, draft.Status)
	}

	now := time.Now()
	draft.DecidedAt = &now
	draft.DecidedBy = decidedBy
	if approve {
		draft.Status = models.DraftApproved
	} else {
		draft.Status = models.DraftRejected
	}

	if err := s.Repo.Update(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to update draft %s: %w", draftID, err)
	}

	cacheClient := utils.GetApprovalCacheClient()
	if err := cacheClient.LRem(ctx, utils.PendingDraftsKey, 0, draftID).Err(); err != nil {
		logger.Warn("Failed to remove draft from pending queue", zap.String("draftID", draftID), zap.Error(err))
	}

	logger.Info("Draft decided",
		zap.String("draftID", draftID),
		zap.String("status", string(draft.Status)),
		zap.String("decidedBy", decidedBy),
	)
	return draft, nil
}
