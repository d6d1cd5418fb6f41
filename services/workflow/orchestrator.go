package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"venueflow/models"
	"venueflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stablePoint remembers where the conversation stood before this message, so
// an aborted detour loop can roll back to it.
type stablePoint struct {
	step   models.Step
	caller *models.Step
}

// CreateEvent starts a new conversation at the intake step.
func (s *DefaultWorkflowService) CreateEvent(ctx context.Context, req models.IntakeRequest) (*models.BookingState, error) {
	state := &models.BookingState{
		ID:           uuid.New().String(),
		CurrentStep:  models.StepIntake,
		Status:       models.StatusLead,
		Contact:      req.Contact,
		Requirements: req.Requirements,
		ChosenDate:   req.ChosenDate,
	}
	if req.ChosenDate != "" {
		state.DateConfirmed = true
	}
	if req.Requirements.ParticipantCount > 0 {
		state.RequirementsHash = Fingerprint(req.Requirements)
	}

	if err := s.Repo.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.cacheState(ctx, state)
	return state, nil
}

// GetEvent returns the current booking state.
func (s *DefaultWorkflowService) GetEvent(ctx context.Context, eventID string) (*models.BookingState, error) {
	return s.loadState(ctx, eventID)
}

// CancelEvent moves an event to the terminal Cancelled status.
func (s *DefaultWorkflowService) CancelEvent(ctx context.Context, eventID string) error {
	unlock := s.locks.Lock(eventID)
	defer unlock()

	state, err := s.loadState(ctx, eventID)
	if err != nil {
		return err
	}
	if state.Terminal() {
		return ErrEventClosed
	}
	state.Status = models.StatusCancelled
	state.Audit(state.CurrentStep, state.CurrentStep, "cancelled")
	return s.saveState(ctx, state)
}

// ProcessMessage runs the full routing loop for one incoming client message:
// entry guard, change detection, routing, bounded detours, step execution,
// persistence. Serialized per event ID.
func (s *DefaultWorkflowService) ProcessMessage(ctx context.Context, eventID, text string) (*models.TurnResult, error) {
	logger := utils.GetLogger()

	unlock := s.locks.Lock(eventID)
	defer unlock()

	state, err := s.loadState(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if state.Terminal() {
		return nil, ErrEventClosed
	}

	state.DetourDepth = 0
	stable := stablePoint{step: state.CurrentStep, caller: state.CallerStep}
	result := &models.TurnResult{EventID: eventID}
	var trace []string

	// 1. Entry guard for the step the conversation is on.
	if g := CheckEntry(state.CurrentStep, state); !g.Pass {
		s.applyGuardDetour(state, g, &trace)
	}

	// 2. NLU extraction. A failing oracle degrades to keyword-only
	// detection on raw text rather than failing the turn.
	fields, err := s.Extractor.Extract(ctx, text, state.Snapshot())
	if err != nil {
		logger.Warn("NLU extraction failed, continuing without fields",
			zap.String("eventID", eventID), zap.Error(err))
		fields = models.ExtractedFields{}
	}

	// 3. Change detection against confirmed state.
	det, err := s.Detector.Detect(state, fields, text)
	var ambiguous *AmbiguousTargetError
	if errors.As(err, &ambiguous) {
		// Surface a disambiguation request; nothing is persisted this turn.
		return &models.TurnResult{
			EventID:             eventID,
			CurrentStep:         stable.step,
			NeedsDisambiguation: true,
			Candidates:          ambiguous.Candidates,
			Trace:               append(trace, "detection ambiguous"),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if det != nil {
		s.applyChange(state, det, fields)
		decision := Route(*det, state.CurrentStep, state)
		s.applyDecision(state, decision, &trace)
		result.Change = det
		result.Decision = &decision
	}

	// 4. Re-guard the (possibly new) step until it passes, bounding
	// consecutive detours. Oscillating guards abort the turn and escalate
	// instead of looping forever.
	for {
		g := CheckEntry(state.CurrentStep, state)
		if g.Pass {
			break
		}
		if state.DetourDepth >= s.MaxDetourDepth {
			return s.abortDetourLoop(ctx, state, stable, trace, result)
		}
		s.applyGuardDetour(state, g, &trace)
	}

	// 5. Commit routing before executing the step processor: if the
	// processor fails, a retry resumes from the corrected step instead of
	// re-routing from scratch.
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	if s.ContextStore != nil {
		if err := s.ContextStore.Append(ctx, eventID, text); err != nil {
			logger.Warn("Failed to record NLU context", zap.String("eventID", eventID), zap.Error(err))
		}
	}

	handler, ok := s.Handlers[state.CurrentStep]
	if !ok {
		return nil, fmt.Errorf("no handler registered for step %d", state.CurrentStep)
	}
	stepResult, err := handler.Execute(ctx, state)
	if err != nil {
		// Routing already committed above; report the failure upward.
		return nil, fmt.Errorf("step %s failed: %w", state.CurrentStep, err)
	}
	result.Result = stepResult

	state.DetourDepth = 0
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}

	result.CurrentStep = state.CurrentStep
	result.Trace = trace
	return result, nil
}

// applyGuardDetour routes to the owner of the first unmet prerequisite,
// preserving an already-set (outermost) caller step.
func (s *DefaultWorkflowService) applyGuardDetour(state *models.BookingState, g GuardResult, trace *[]string) {
	from := state.CurrentStep
	if state.CallerStep == nil {
		caller := from
		state.CallerStep = &caller
	}
	state.CurrentStep = g.Target
	state.DetourDepth++
	state.Audit(from, g.Target, "guard:"+g.Unmet)
	*trace = append(*trace, fmt.Sprintf("guard %s unmet at step %d, detour to %d", g.Unmet, from, g.Target))
}

// applyDecision writes a routing decision into the state. On a nested
// detour the outermost caller step is preserved: only the innermost
// unresolved step is replaced by moving CurrentStep.
func (s *DefaultWorkflowService) applyDecision(state *models.BookingState, d models.NextStepDecision, trace *[]string) {
	from := state.CurrentStep
	if d.Detour() {
		if state.CallerStep == nil {
			state.CallerStep = d.UpdatedCallerStep
		}
		state.DetourDepth++
		state.Audit(from, d.NextStep, "detour")
		*trace = append(*trace, fmt.Sprintf("detour from step %d to %d", from, d.NextStep))
	} else {
		state.Audit(from, d.NextStep, "skip:"+d.SkipReason)
		*trace = append(*trace, fmt.Sprintf("stay at step %d (%s)", from, d.SkipReason))
	}
	state.CurrentStep = d.NextStep
}

// applyChange applies the detected new value to the state and performs the
// hash-guard invalidations before routing runs.
func (s *DefaultWorkflowService) applyChange(state *models.BookingState, det *models.ChangeDetection, fields models.ExtractedFields) {
	inv := InvalidatedBy(det.Type)

	switch det.Type {
	case models.ChangeDate:
		if det.Mode == models.ModeValueProvided {
			state.ChosenDate = det.NewValue
			state.DateConfirmed = true
		} else if inv.ResetDateConfirmed {
			state.DateConfirmed = false
		}

	case models.ChangeRoom:
		if inv.ResetLockedRoom {
			state.RoomEvalHash = ""
			if det.Mode == models.ModeValueProvided {
				// The client named the replacement room; step 3 validates
				// it and re-snapshots the fingerprint.
				state.LockedRoomID = det.NewValue
			} else {
				state.LockedRoomID = ""
			}
		}

	case models.ChangeRequirements:
		if det.Mode == models.ModeValueProvided && inv.RecomputeReqHash {
			state.Requirements = mergeRequirements(state.Requirements, fields)
			state.RequirementsHash = Fingerprint(state.Requirements)
		}

	case models.ChangeProducts:
		if det.Mode == models.ModeValueProvided {
			for _, p := range fields.Products {
				state.SelectedProducts = append(state.SelectedProducts, models.LineItem{
					SKU:      p,
					Name:     p,
					Quantity: 1,
				})
			}
		}

	case models.ChangeCommercial:
		// Terms are back in play: drop the accepted-offer snapshot so step 5
		// issues a fresh offer.
		state.OfferHash = ""

	case models.ChangeDeposit:
		if det.Mode == models.ModeValueProvided {
			state.DepositReceived = true
		}

	case models.ChangeSiteVisit:
		if det.Mode == models.ModeValueProvided {
			state.SiteVisitDate = det.NewValue
		}

	case models.ChangeClientInfo:
		if fields.ContactEmail != nil {
			state.Contact.Email = *fields.ContactEmail
		}
		if fields.ContactPhone != nil {
			state.Contact.Phone = *fields.ContactPhone
		}
	}
}

// abortDetourLoop rolls the state back to its last stable position,
// escalates to manual review and ends the turn without a raw error: routing
// failures degrade to "a human will pick this up".
func (s *DefaultWorkflowService) abortDetourLoop(ctx context.Context, state *models.BookingState, stable stablePoint, trace []string, result *models.TurnResult) (*models.TurnResult, error) {
	logger := utils.GetLogger()
	depth := state.DetourDepth

	state.CurrentStep = stable.step
	state.CallerStep = stable.caller
	state.DetourDepth = 0
	state.Audit(stable.step, stable.step, "detour_loop_abort")

	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}

	loopErr := &DetourLoopError{EventID: state.ID, Depth: depth, StableStep: stable.step}
	logger.Error("Detour loop exceeded, escalating to manual review",
		zap.String("eventID", state.ID),
		zap.Int("depth", depth),
		zap.Int("stableStep", int(stable.step)),
	)

	if s.Escalator != nil {
		payload := models.ReviewPayload{
			EventID:     state.ID,
			Reason:      loopErr.Error(),
			StableStep:  stable.step,
			DetourDepth: depth,
		}
		if err := s.Escalator.EnqueueReview(ctx, payload); err != nil {
			logger.Error("Failed to enqueue manual review", zap.String("eventID", state.ID), zap.Error(err))
		}
	}

	result.Escalated = true
	result.CurrentStep = state.CurrentStep
	result.Trace = append(trace, "detour loop exceeded, escalated")
	return result, nil
}

// loadState reads through the Redis cache into Mongo.
func (s *DefaultWorkflowService) loadState(ctx context.Context, eventID string) (*models.BookingState, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, utils.StateCachePrefix+eventID).Result(); err == nil {
			var state models.BookingState
			if err := json.Unmarshal([]byte(data), &state); err == nil {
				return &state, nil
			}
		}
	}
	return s.Repo.GetByID(ctx, eventID)
}

// saveState persists to Mongo and refreshes the cache.
func (s *DefaultWorkflowService) saveState(ctx context.Context, state *models.BookingState) error {
	if err := s.Repo.Update(ctx, state); err != nil {
		return fmt.Errorf("failed to persist state for event %s: %w", state.ID, err)
	}
	s.cacheState(ctx, state)
	return nil
}

func (s *DefaultWorkflowService) cacheState(ctx context.Context, state *models.BookingState) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.StateCachePrefix+state.ID, data, utils.StateCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache state", zap.String("eventID", state.ID), zap.Error(err))
	}
}
