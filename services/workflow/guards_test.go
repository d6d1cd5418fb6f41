package workflow

import (
	"testing"

	"venueflow/models"
)

func readyState() *models.BookingState {
	req := models.Requirements{ParticipantCount: 40, SeatingLayout: "theater"}
	hash := Fingerprint(req)
	return &models.BookingState{
		CurrentStep:       models.StepOffer,
		Status:            models.StatusLead,
		ChosenDate:        "2026-03-15",
		DateConfirmed:     true,
		Requirements:      req,
		RequirementsHash:  hash,
		LockedRoomID:      "atlas",
		RoomEvalHash:      hash,
		ProductsConfirmed: true,
		SelectedProducts:  []models.LineItem{{SKU: "catering", Quantity: 1, UnitPrice: 25}},
	}
}

func TestCheckEntry(t *testing.T) {
	tests := []struct {
		name       string
		step       models.Step
		mutate     func(*models.BookingState)
		wantPass   bool
		wantUnmet  string
		wantTarget models.Step
	}{
		{
			name:     "intake has no prerequisites",
			step:     models.StepIntake,
			mutate:   func(s *models.BookingState) { *s = models.BookingState{} },
			wantPass: true,
		},
		{
			name:       "products step requires a confirmed date first",
			step:       models.StepProducts,
			mutate:     func(s *models.BookingState) { s.DateConfirmed = false; s.LockedRoomID = "" },
			wantUnmet:  "date_confirmed",
			wantTarget: models.StepDate,
		},
		{
			name:       "products step requires a locked room after the date",
			step:       models.StepProducts,
			mutate:     func(s *models.BookingState) { s.LockedRoomID = "" },
			wantUnmet:  "room_locked_and_fresh",
			wantTarget: models.StepRoom,
		},
		{
			name:       "stale room decision fails the freshness prerequisite",
			step:       models.StepProducts,
			mutate:     func(s *models.BookingState) { s.RoomEvalHash = "stale" },
			wantUnmet:  "room_locked_and_fresh",
			wantTarget: models.StepRoom,
		},
		{
			name: "products step requires a known capacity",
			step: models.StepProducts,
			mutate: func(s *models.BookingState) {
				s.Requirements.ParticipantCount = 0
				s.RequirementsHash = Fingerprint(s.Requirements)
				s.RoomEvalHash = s.RequirementsHash
			},
			wantUnmet:  "capacity_present",
			wantTarget: models.StepRoom,
		},
		{
			name:       "offer step requires the products phase to be done",
			step:       models.StepOffer,
			mutate:     func(s *models.BookingState) { s.ProductsConfirmed = false },
			wantUnmet:  "products_phase_done",
			wantTarget: models.StepProducts,
		},
		{
			name:       "contract step requires an accepted offer",
			step:       models.StepContract,
			mutate:     func(s *models.BookingState) { s.OfferHash = "" },
			wantUnmet:  "offer_accepted",
			wantTarget: models.StepOffer,
		},
		{
			name:       "handover checks room freshness before the offer",
			step:       models.StepHandover,
			mutate:     func(s *models.BookingState) { s.RoomEvalHash = "stale"; s.OfferHash = "" },
			wantUnmet:  "room_locked_and_fresh",
			wantTarget: models.StepRoom,
		},
		{
			name:     "fully prepared state passes every guard",
			step:     models.StepOffer,
			mutate:   func(s *models.BookingState) {},
			wantPass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := readyState()
			state.OfferHash = OfferFingerprint(state)
			tt.mutate(state)

			got := CheckEntry(tt.step, state)
			if got.Pass != tt.wantPass {
				t.Fatalf("pass = %v, want %v (unmet=%q)", got.Pass, tt.wantPass, got.Unmet)
			}
			if !tt.wantPass {
				if got.Unmet != tt.wantUnmet {
					t.Errorf("unmet = %q, want %q", got.Unmet, tt.wantUnmet)
				}
				if got.Target != tt.wantTarget {
					t.Errorf("target = %d, want %d", got.Target, tt.wantTarget)
				}
			}
		})
	}
}
