package workflow

import (
	"errors"
	"reflect"
	"testing"

	"venueflow/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func negotiationState() *models.BookingState {
	state := readyState()
	state.OfferHash = OfferFingerprint(state)
	return state
}

func TestDetect(t *testing.T) {
	d := NewKeywordDetector()

	tests := []struct {
		name   string
		state  *models.BookingState
		fields models.ExtractedFields
		text   string
		want   *models.ChangeDetection
	}{
		{
			name:   "pricing question is not a change",
			state:  negotiationState(),
			fields: models.ExtractedFields{},
			text:   "What's the total price?",
			want:   nil,
		},
		{
			name:   "hypothetical question is filtered even with a change verb",
			state:  negotiationState(),
			fields: models.ExtractedFields{RoomID: strPtr("apollo")},
			text:   "What if we switch to hall Apollo?",
			want:   nil,
		},
		{
			name:   "plain statement without a revision signal is not a change",
			state:  negotiationState(),
			fields: models.ExtractedFields{},
			text:   "We are happy with everything so far",
			want:   nil,
		},
		{
			name:   "named room switch with a value",
			state:  negotiationState(),
			fields: models.ExtractedFields{RoomID: strPtr("apollo")},
			text:   "Could we switch to hall Apollo instead?",
			want:   &models.ChangeDetection{Type: models.ChangeRoom, Mode: models.ModeValueProvided, NewValue: "apollo"},
		},
		{
			name:   "date revision with a new value",
			state:  negotiationState(),
			fields: models.ExtractedFields{Date: strPtr("2026-06-01")},
			text:   "Actually the date 2026-06-01 works better for us",
			want:   &models.ChangeDetection{Type: models.ChangeDate, Mode: models.ModeValueProvided, NewValue: "2026-06-01"},
		},
		{
			name:   "restating the confirmed date is a confirmation, not a change",
			state:  negotiationState(),
			fields: models.ExtractedFields{Date: strPtr("2026-03-15")},
			text:   "Actually the date 2026-03-15 is perfect",
			want:   nil,
		},
		{
			name:   "explicit ask without a value needs clarification",
			state:  negotiationState(),
			fields: models.ExtractedFields{},
			text:   "We'd like to change the date",
			want:   &models.ChangeDetection{Type: models.ChangeDate, Mode: models.ModeNeedsClarification},
		},
		{
			name:   "signal too far from the noun does not bind",
			state:  negotiationState(),
			fields: models.ExtractedFields{},
			text:   "Change of plans on our side, but otherwise the chosen date stays as agreed",
			want:   nil,
		},
		{
			name:   "participant count revision binds to requirements",
			state:  negotiationState(),
			fields: models.ExtractedFields{ParticipantCount: intPtr(50)},
			text:   "Actually we'll have 50 people",
			want:   &models.ChangeDetection{Type: models.ChangeRequirements, Mode: models.ModeValueProvided, NewValue: "50"},
		},
		{
			name:   "restating the current headcount is a confirmation",
			state:  negotiationState(),
			fields: models.ExtractedFields{ParticipantCount: intPtr(40)},
			text:   "Actually 40 people is still right",
			want:   nil,
		},
		{
			name: "date mention before any date was confirmed is not a change",
			state: &models.BookingState{
				CurrentStep: models.StepDate,
				Status:      models.StatusLead,
			},
			fields: models.ExtractedFields{Date: strPtr("2026-05-05")},
			text:   "Actually, would the date 2026-05-05 be free?",
			want:   nil,
		},
		{
			name:   "value without a noun infers the single in-scope target",
			state:  negotiationState(),
			fields: models.ExtractedFields{Date: strPtr("2026-04-02")},
			text:   "Switch it to 2026-04-02 please",
			want:   &models.ChangeDetection{Type: models.ChangeDate, Mode: models.ModeValueProvided, NewValue: "2026-04-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Detect(tt.state, tt.fields, tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetectAmbiguousTarget(t *testing.T) {
	d := NewKeywordDetector()

	// Past the contract step both the event date and the site-visit date are
	// in scope, so a bare date with no noun cannot be attributed.
	state := negotiationState()
	state.CurrentStep = models.StepHandover
	fields := models.ExtractedFields{
		Date:          strPtr("2026-04-02"),
		SiteVisitDate: strPtr("2026-04-02"),
	}

	got, err := d.Detect(state, fields, "Switch it to 2026-04-02")
	if got != nil {
		t.Fatalf("expected no detection, got %+v", got)
	}
	var ambiguous *AmbiguousTargetError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousTargetError, got %v", err)
	}
	want := []models.ChangeType{models.ChangeDate, models.ChangeSiteVisit}
	if !reflect.DeepEqual(ambiguous.Candidates, want) {
		t.Errorf("candidates = %v, want %v", ambiguous.Candidates, want)
	}
}

func TestDetectPrecedenceOrder(t *testing.T) {
	d := NewKeywordDetector()

	// One message touching both the date and the headcount: the
	// higher-priority date change wins.
	state := negotiationState()
	fields := models.ExtractedFields{
		Date:             strPtr("2026-06-01"),
		ParticipantCount: intPtr(55),
	}

	got, err := d.Detect(state, fields, "Change the date to 2026-06-01 and plan for 55 people")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Type != models.ChangeDate {
		t.Fatalf("expected date change to win, got %+v", got)
	}
}
