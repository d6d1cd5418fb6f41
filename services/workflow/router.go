package workflow

import "venueflow/models"

// Route maps (detected change, current step, state) to the next-step
// decision. Pure: identical inputs always yield the identical decision,
// which is what makes message redelivery safe.
//
// Expects state to already carry the recomputed RequirementsHash for a
// value-providing requirements change, so the fast-skip comparison sees the
// new fingerprint.
func Route(change models.ChangeDetection, fromStep models.Step, state *models.BookingState) models.NextStepDecision {
	owner, hasOwner := models.OwnerStep(change.Type)

	// ClientInfo is applied in place and never triggers a detour.
	if !hasOwner {
		return models.NextStepDecision{
			NextStep:   fromStep,
			SkipReason: models.SkipNoStructuralImpact,
		}
	}

	// In-place loop: the change belongs to the step we are already on
	// (Products at step 4, Commercial at step 5, Deposit/SiteVisit at 7).
	if owner == fromStep {
		return models.NextStepDecision{
			NextStep:    fromStep,
			SkipReason:  models.SkipInPlace,
			NeedsReeval: true,
		}
	}

	// Fast-skip: the recomputed requirements fingerprint still matches the
	// room decision snapshot, so the expensive room re-evaluation is
	// skipped. Only applies when a new value recomputed the fingerprint; a
	// bare "we need to change the requirements" still detours to step 3 for
	// clarification.
	if change.Type == models.ChangeRequirements &&
		change.Mode == models.ModeValueProvided && FastSkip(state) {
		return models.NextStepDecision{
			NextStep:   fromStep,
			SkipReason: models.SkipRequirementsHashMatch,
		}
	}

	// Genuine detour: jump to the owner step, remember where to return.
	caller := fromStep
	return models.NextStepDecision{
		NextStep:          owner,
		UpdatedCallerStep: &caller,
		NeedsReeval:       true,
	}
}
