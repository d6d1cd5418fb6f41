package workflow

import (
	"reflect"
	"testing"

	"venueflow/models"
)

func stepPtr(s models.Step) *models.Step { return &s }

func TestRoute(t *testing.T) {
	matching := &models.BookingState{RequirementsHash: "h1", RoomEvalHash: "h1"}
	diverged := &models.BookingState{RequirementsHash: "h2", RoomEvalHash: "h1"}

	tests := []struct {
		name   string
		change models.ChangeDetection
		from   models.Step
		state  *models.BookingState
		want   models.NextStepDecision
	}{
		{
			name:   "requirements change with matching fingerprint skips room re-evaluation",
			change: models.ChangeDetection{Type: models.ChangeRequirements, Mode: models.ModeValueProvided},
			from:   models.StepProducts,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:   models.StepProducts,
				SkipReason: models.SkipRequirementsHashMatch,
			},
		},
		{
			name:   "requirements change with diverged fingerprint detours to room step",
			change: models.ChangeDetection{Type: models.ChangeRequirements, Mode: models.ModeValueProvided},
			from:   models.StepProducts,
			state:  diverged,
			want: models.NextStepDecision{
				NextStep:          models.StepRoom,
				UpdatedCallerStep: stepPtr(models.StepProducts),
				NeedsReeval:       true,
			},
		},
		{
			name:   "requirements change without a value detours even when hashes match",
			change: models.ChangeDetection{Type: models.ChangeRequirements, Mode: models.ModeNeedsClarification},
			from:   models.StepProducts,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:          models.StepRoom,
				UpdatedCallerStep: stepPtr(models.StepProducts),
				NeedsReeval:       true,
			},
		},
		{
			name:   "date change mid-negotiation detours to date step and remembers caller",
			change: models.ChangeDetection{Type: models.ChangeDate, Mode: models.ModeValueProvided, NewValue: "2026-06-01"},
			from:   models.StepOffer,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:          models.StepDate,
				UpdatedCallerStep: stepPtr(models.StepOffer),
				NeedsReeval:       true,
			},
		},
		{
			name:   "deposit change at handover is handled in place",
			change: models.ChangeDetection{Type: models.ChangeDeposit, Mode: models.ModeValueProvided, NewValue: "500.00"},
			from:   models.StepHandover,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:    models.StepHandover,
				SkipReason:  models.SkipInPlace,
				NeedsReeval: true,
			},
		},
		{
			name:   "products change at products step is handled in place",
			change: models.ChangeDetection{Type: models.ChangeProducts, Mode: models.ModeValueProvided, NewValue: "projector"},
			from:   models.StepProducts,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:    models.StepProducts,
				SkipReason:  models.SkipInPlace,
				NeedsReeval: true,
			},
		},
		{
			name:   "commercial change during negotiation is handled in place",
			change: models.ChangeDetection{Type: models.ChangeCommercial, Mode: models.ModeNeedsClarification},
			from:   models.StepOffer,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:    models.StepOffer,
				SkipReason:  models.SkipInPlace,
				NeedsReeval: true,
			},
		},
		{
			name:   "commercial change after negotiation detours back to offer step",
			change: models.ChangeDetection{Type: models.ChangeCommercial, Mode: models.ModeNeedsClarification},
			from:   models.StepContract,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:          models.StepOffer,
				UpdatedCallerStep: stepPtr(models.StepContract),
				NeedsReeval:       true,
			},
		},
		{
			name:   "client info never routes",
			change: models.ChangeDetection{Type: models.ChangeClientInfo, Mode: models.ModeValueProvided, NewValue: "new@example.com"},
			from:   models.StepOffer,
			state:  matching,
			want: models.NextStepDecision{
				NextStep:   models.StepOffer,
				SkipReason: models.SkipNoStructuralImpact,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.change, tt.from, tt.state)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Route() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Identical inputs must yield identical decisions, so a redelivered message
// routes the same way twice.
func TestRouteIsPure(t *testing.T) {
	state := &models.BookingState{RequirementsHash: "h1", RoomEvalHash: "h1"}
	change := models.ChangeDetection{Type: models.ChangeDate, Mode: models.ModeValueProvided, NewValue: "2026-06-01"}

	first := Route(change, models.StepOffer, state)
	second := Route(change, models.StepOffer, state)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("routing not deterministic: %+v vs %+v", first, second)
	}
}
