package workflow

import (
	"context"
	"fmt"

	"venueflow/models"
	"venueflow/services/approval"
)

// StepHandler is one step processor. It receives the post-routing state and,
// on success, either advances the current step or honors a pending caller
// step. All client-facing output goes through the approval gate.
type StepHandler interface {
	Execute(ctx context.Context, state *models.BookingState) (*models.StepResult, error)
}

// StepHandlerFunc adapts a function to StepHandler.
type StepHandlerFunc func(ctx context.Context, state *models.BookingState) (*models.StepResult, error)

func (f StepHandlerFunc) Execute(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
	return f(ctx, state)
}

// completeStep moves control after a step resolves: back to a pending caller
// step (clearing it — a detour return goes to callerStep, not callerStep+1),
// or forward to the next step.
func completeStep(state *models.BookingState, reason string) {
	from := state.CurrentStep
	if state.CallerStep != nil {
		to := *state.CallerStep
		state.CurrentStep = to
		state.CallerStep = nil
		state.Audit(from, to, "return:"+reason)
		return
	}
	if state.CurrentStep < models.LastStep {
		state.CurrentStep++
		state.Audit(from, state.CurrentStep, reason)
	}
}

// drafter queues outbound drafts with the routing state attached, so the
// reviewer sees caller step and hashes alongside the message.
type drafter struct {
	gate approval.ApprovalService
}

func (d *drafter) draft(ctx context.Context, state *models.BookingState, step models.Step, action, body string, halts bool) (*models.StepResult, error) {
	out := &models.OutboundDraft{
		EventID:          state.ID,
		Step:             step,
		Action:           action,
		Body:             body,
		CallerStep:       state.CallerStep,
		RequirementsHash: state.RequirementsHash,
		RoomEvalHash:     state.RoomEvalHash,
		OfferHash:        state.OfferHash,
	}
	id, err := d.gate.Enqueue(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("failed to queue draft: %w", err)
	}
	return &models.StepResult{Action: action, DraftID: id, HaltsTurn: halts}, nil
}

// DefaultHandlers returns the step → processor table. Steps form a closed
// enum, so dispatch is an explicit map rather than any runtime lookup.
//
// These processors carry the routing-relevant behavior only: real room
// search, pricing arithmetic and calendar writes live behind their own
// services and are invoked from here in production wiring.
func DefaultHandlers(gate approval.ApprovalService) map[models.Step]StepHandler {
	d := &drafter{gate: gate}

	return map[models.Step]StepHandler{
		models.StepIntake: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if state.Contact.Email == "" && state.Contact.Phone == "" {
				return d.draft(ctx, state, step, "request_contact",
					"Thanks for reaching out! Could you share an email or phone number so we can follow up?", true)
			}
			completeStep(state, "intake_complete")
			return d.draft(ctx, state, step, "acknowledge_intake",
				"Great, we have everything we need to get started. Let's find a date for your event.", true)
		}),

		models.StepDate: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if !state.DateConfirmed {
				return d.draft(ctx, state, step, "request_date",
					"Which date did you have in mind for your event?", true)
			}
			completeStep(state, "date_confirmed")
			return d.draft(ctx, state, step, "confirm_date",
				fmt.Sprintf("Noted — your event is set for %s.", state.ChosenDate), true)
		}),

		models.StepRoom: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if state.LockedRoomID == "" {
				return d.draft(ctx, state, step, "propose_rooms",
					fmt.Sprintf("For %d guests in a %s layout we have several rooms available. Which one would you like?",
						state.Requirements.ParticipantCount, state.Requirements.SeatingLayout), true)
			}
			if state.RoomEvalHash != state.RequirementsHash {
				// Requirements moved since the room was locked: re-evaluate
				// and re-snapshot the fingerprint.
				state.RoomEvalHash = state.RequirementsHash
				completeStep(state, "room_reevaluated")
				return d.draft(ctx, state, step, "confirm_room",
					fmt.Sprintf("We re-checked room %s against your updated requirements — it still fits.", state.LockedRoomID), true)
			}
			completeStep(state, "room_locked")
			return d.draft(ctx, state, step, "confirm_room",
				fmt.Sprintf("Room %s is reserved for your event.", state.LockedRoomID), true)
		}),

		models.StepProducts: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if len(state.SelectedProducts) == 0 {
				return d.draft(ctx, state, step, "propose_products",
					"Would you like to add catering or equipment? We can send over the full catalogue.", true)
			}
			state.ProductsConfirmed = true
			completeStep(state, "products_selected")
			return d.draft(ctx, state, step, "confirm_products",
				fmt.Sprintf("We've noted %d item(s) for your event. On to the offer.", len(state.SelectedProducts)), true)
		}),

		models.StepOffer: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			current := OfferFingerprint(state)
			if state.OfferHash == current {
				completeStep(state, "offer_accepted")
				return d.draft(ctx, state, step, "confirm_offer",
					"Your offer stands as agreed. We'll prepare the contract.", true)
			}
			// Terms moved (or no offer yet): issue a fresh offer and wait.
			state.OfferHash = current
			return d.draft(ctx, state, step, "send_offer",
				"Here is your updated offer. Let us know if everything looks right.", true)
		}),

		models.StepContract: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if state.Status == models.StatusLead {
				state.Status = models.StatusOption
			}
			completeStep(state, "contract_sent")
			return d.draft(ctx, state, step, "send_contract",
				"Your contract is attached. We're holding the room as an option until it's signed.", true)
		}),

		models.StepHandover: StepHandlerFunc(func(ctx context.Context, state *models.BookingState) (*models.StepResult, error) {
			step := state.CurrentStep
			if !state.DepositReceived {
				return d.draft(ctx, state, step, "request_deposit",
					"To finalize the booking, please transfer the deposit noted in your contract.", true)
			}
			if state.SiteVisitDate == "" {
				return d.draft(ctx, state, step, "propose_site_visit",
					"Would you like to schedule a site visit before the event?", true)
			}
			state.Status = models.StatusConfirmed
			state.Audit(step, step, "booking_confirmed")
			return d.draft(ctx, state, step, "confirm_booking",
				fmt.Sprintf("Everything is set — see you on %s!", state.ChosenDate), true)
		}),
	}
}
