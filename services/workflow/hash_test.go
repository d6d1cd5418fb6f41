package workflow

import (
	"testing"

	"venueflow/models"
)

func TestFingerprintDeterministic(t *testing.T) {
	req := models.Requirements{
		ParticipantCount:    40,
		SeatingLayout:       "Theater",
		DurationWindow:      "09:00-17:00",
		SpecialRequirements: []string{"wheelchair access", "stage"},
	}

	if Fingerprint(req) != Fingerprint(req) {
		t.Fatal("fingerprint not deterministic for identical input")
	}
}

func TestFingerprintIgnoresOrderAndCase(t *testing.T) {
	a := models.Requirements{
		ParticipantCount:    40,
		SeatingLayout:       "theater",
		DurationWindow:      "09:00-17:00",
		SpecialRequirements: []string{"stage", "wheelchair access"},
	}
	b := models.Requirements{
		ParticipantCount:    40,
		SeatingLayout:       " Theater ",
		DurationWindow:      "09:00-17:00",
		SpecialRequirements: []string{"Wheelchair Access", "Stage"},
	}

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("logically identical requirement sets must fingerprint identically")
	}
}

func TestFingerprintChangesWithFields(t *testing.T) {
	base := models.Requirements{ParticipantCount: 40, SeatingLayout: "theater"}

	changed := base
	changed.ParticipantCount = 50
	if Fingerprint(base) == Fingerprint(changed) {
		t.Fatal("participant count change must change the fingerprint")
	}

	changed = base
	changed.SeatingLayout = "boardroom"
	if Fingerprint(base) == Fingerprint(changed) {
		t.Fatal("layout change must change the fingerprint")
	}
}

func TestInvalidatedBy(t *testing.T) {
	tests := []struct {
		change models.ChangeType
		rerun  models.Step
		cond   bool
	}{
		{models.ChangeDate, models.StepDate, false},
		{models.ChangeRoom, models.StepRoom, false},
		{models.ChangeRequirements, models.StepRoom, true},
		{models.ChangeProducts, 0, false},
		{models.ChangeCommercial, 0, false},
		{models.ChangeClientInfo, 0, false},
	}

	for _, tt := range tests {
		inv := InvalidatedBy(tt.change)
		if inv.Rerun != tt.rerun {
			t.Errorf("%s: rerun = %d, want %d", tt.change, inv.Rerun, tt.rerun)
		}
		if inv.Conditional != tt.cond {
			t.Errorf("%s: conditional = %v, want %v", tt.change, inv.Conditional, tt.cond)
		}
	}

	if !InvalidatedBy(models.ChangeDate).ResetDateConfirmed {
		t.Error("date change must reset the date confirmation")
	}
	if !InvalidatedBy(models.ChangeRoom).ResetLockedRoom {
		t.Error("room change must reset the locked room")
	}
}

func TestFastSkip(t *testing.T) {
	state := &models.BookingState{RequirementsHash: "h1", RoomEvalHash: "h1"}
	if !FastSkip(state) {
		t.Error("matching hashes must fast-skip")
	}

	state.RequirementsHash = "h2"
	if FastSkip(state) {
		t.Error("diverged hashes must not fast-skip")
	}

	state = &models.BookingState{RequirementsHash: "", RoomEvalHash: ""}
	if FastSkip(state) {
		t.Error("fast-skip requires a room evaluation snapshot")
	}
}

func TestOfferFingerprintCoversTerms(t *testing.T) {
	state := &models.BookingState{
		ChosenDate:   "2026-03-15",
		LockedRoomID: "atlas",
		SelectedProducts: []models.LineItem{
			{SKU: "catering", Quantity: 1, UnitPrice: 25},
		},
	}
	base := OfferFingerprint(state)

	state.SelectedProducts = append(state.SelectedProducts, models.LineItem{SKU: "projector", Quantity: 1})
	if OfferFingerprint(state) == base {
		t.Error("adding a line item must change the offer fingerprint")
	}
}
