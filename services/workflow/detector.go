package workflow

import (
	"strconv"
	"strings"

	"venueflow/models"
)

// ChangeDetector classifies an incoming message as a revision of one tracked
// variable, or none. Pattern matching is a replaceable strategy behind this
// interface; routing never sees pattern details.
type ChangeDetector interface {
	Detect(state *models.BookingState, extracted models.ExtractedFields, text string) (*models.ChangeDetection, error)
}

// KeywordDetector is the default detection strategy: revision signals and
// target nouns bound by a proximity window, layered over the NLU extractor's
// structured fields.
type KeywordDetector struct {
	// ProximityWindow is the maximum token distance allowed between a
	// revision signal and the target noun it binds to.
	ProximityWindow int
}

// NewKeywordDetector returns a detector with the default proximity window.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{ProximityWindow: 5}
}

var revisionSignals = [][]string{
	{"change"}, {"switch"}, {"move", "to"}, {"upgrade"}, {"downgrade"},
	{"reschedule"}, {"replace"}, {"update"},
	// redefinition markers
	{"actually"}, {"instead"}, {"correction"}, {"no", "wait"}, {"rather"},
}

var hypotheticalMarkers = [][]string{
	{"what", "if"}, {"hypothetically"}, {"just", "wondering"},
	{"suppose"}, {"in", "theory"}, {"out", "of", "curiosity"},
}

// assent words used by the confirmation filter alongside a restated value.
var assentWords = map[string]bool{
	"yes": true, "great": true, "perfect": true, "confirmed": true,
	"ok": true, "okay": true, "fine": true, "agreed": true,
}

var targetNouns = map[models.ChangeType][]string{
	models.ChangeDate:         {"date", "day", "dates"},
	models.ChangeRoom:         {"room", "hall", "space", "venue"},
	models.ChangeRequirements: {"people", "guests", "participants", "attendees", "seating", "layout", "requirements", "headcount"},
	models.ChangeProducts:     {"catering", "menu", "products", "equipment", "projector", "lunch", "dinner", "drinks"},
	models.ChangeCommercial:   {"price", "offer", "quote", "discount", "budget", "terms"},
	models.ChangeDeposit:      {"deposit", "downpayment", "prepayment"},
	models.ChangeSiteVisit:    {"visit", "tour", "viewing", "walkthrough"},
	models.ChangeClientInfo:   {"email", "phone", "contact", "address", "number"},
}

// Detect applies the three mandatory conditions (confirmed target, revision
// signal, value or explicit request) plus the documented false-positive
// filters. Returns nil when the message is not a change; returns
// *AmbiguousTargetError when a value is given but more than one tracked
// variable could be its target.
func (d *KeywordDetector) Detect(state *models.BookingState, extracted models.ExtractedFields, text string) (*models.ChangeDetection, error) {
	tokens := tokenize(text)

	// Hypothetical filter: "what if...", "just wondering..." are never
	// changes, even when they mention a change verb and a target.
	for _, marker := range hypotheticalMarkers {
		if findPhrase(tokens, marker) >= 0 {
			return nil, nil
		}
	}

	signalIdx := -1
	for _, signal := range revisionSignals {
		if idx := findPhrase(tokens, signal); idx >= 0 && (signalIdx < 0 || idx < signalIdx) {
			signalIdx = idx
		}
	}

	// Pure question filter: no revision signal means availability/pricing
	// questions and plain statements are not changes.
	if signalIdx < 0 {
		return nil, nil
	}

	// Bind the signal to a target noun within the proximity window, in
	// precedence order.
	for _, ct := range models.ChangePrecedence {
		idx := nearestNoun(tokens, targetNouns[ct], signalIdx)
		if idx < 0 || abs(idx-signalIdx) > d.ProximityWindow {
			continue
		}
		if !targetInScope(state, ct) {
			continue
		}
		return d.classify(state, extracted, tokens, ct)
	}

	// Ambiguous target resolution: a revision signal with a value but no
	// bound noun. Infer the target from the value's shape when exactly one
	// tracked variable is in scope; otherwise ask the caller to disambiguate.
	candidates := make([]models.ChangeType, 0, 2)
	for _, ct := range models.ChangePrecedence {
		if _, ok := valueFor(extracted, ct); ok && targetInScope(state, ct) {
			candidates = append(candidates, ct)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return d.classify(state, extracted, tokens, candidates[0])
	default:
		return nil, &AmbiguousTargetError{Candidates: candidates}
	}
}

// classify builds the detection for a bound target, applying the
// confirmation filter.
func (d *KeywordDetector) classify(state *models.BookingState, extracted models.ExtractedFields, tokens []string, ct models.ChangeType) (*models.ChangeDetection, error) {
	value, hasValue := valueFor(extracted, ct)
	if !hasValue {
		// Explicit ask to change without committing to a value yet.
		return &models.ChangeDetection{Type: ct, Mode: models.ModeNeedsClarification}, nil
	}

	// Confirmation filter: restating the already-confirmed value (possibly
	// with assent language) confirms, it does not change.
	if restatesConfirmed(state, extracted, ct) {
		return nil, nil
	}

	return &models.ChangeDetection{Type: ct, Mode: models.ModeValueProvided, NewValue: value}, nil
}

// targetInScope checks condition 1: the message concerns a variable that is
// already confirmed (or, for in-place variables, currently negotiable).
func targetInScope(state *models.BookingState, ct models.ChangeType) bool {
	switch ct {
	case models.ChangeDate:
		return state.DateConfirmed
	case models.ChangeRoom:
		return state.LockedRoomID != ""
	case models.ChangeRequirements:
		return state.RequirementsHash != "" || state.Requirements.ParticipantCount > 0
	case models.ChangeProducts:
		return state.ProductsConfirmed || len(state.SelectedProducts) > 0 || state.CurrentStep >= models.StepProducts
	case models.ChangeCommercial:
		return state.OfferHash != "" || state.CurrentStep >= models.StepOffer
	case models.ChangeDeposit, models.ChangeSiteVisit:
		return state.CurrentStep >= models.StepContract
	case models.ChangeClientInfo:
		return true
	}
	return false
}

// valueFor checks condition 3: a new value for the target is present in the
// extracted fields.
func valueFor(extracted models.ExtractedFields, ct models.ChangeType) (string, bool) {
	switch ct {
	case models.ChangeDate:
		if extracted.Date != nil {
			return *extracted.Date, true
		}
	case models.ChangeRoom:
		if extracted.RoomID != nil {
			return *extracted.RoomID, true
		}
	case models.ChangeRequirements:
		if extracted.ParticipantCount != nil {
			return strconv.Itoa(*extracted.ParticipantCount), true
		}
		if extracted.SeatingLayout != nil {
			return *extracted.SeatingLayout, true
		}
		if extracted.DurationWindow != nil {
			return *extracted.DurationWindow, true
		}
		if len(extracted.SpecialRequirements) > 0 {
			return strings.Join(extracted.SpecialRequirements, ","), true
		}
	case models.ChangeProducts:
		if len(extracted.Products) > 0 {
			return strings.Join(extracted.Products, ","), true
		}
	case models.ChangeCommercial:
		if extracted.PriceAmount != nil {
			return strconv.FormatFloat(*extracted.PriceAmount, 'f', 2, 64), true
		}
	case models.ChangeDeposit:
		if extracted.DepositAmount != nil {
			return strconv.FormatFloat(*extracted.DepositAmount, 'f', 2, 64), true
		}
	case models.ChangeSiteVisit:
		if extracted.SiteVisitDate != nil {
			return *extracted.SiteVisitDate, true
		}
	case models.ChangeClientInfo:
		if extracted.ContactEmail != nil {
			return *extracted.ContactEmail, true
		}
		if extracted.ContactPhone != nil {
			return *extracted.ContactPhone, true
		}
	}
	return "", false
}

// restatesConfirmed reports whether the extracted value equals the value
// already confirmed in state.
func restatesConfirmed(state *models.BookingState, extracted models.ExtractedFields, ct models.ChangeType) bool {
	switch ct {
	case models.ChangeDate:
		return extracted.Date != nil && *extracted.Date == state.ChosenDate
	case models.ChangeRoom:
		return extracted.RoomID != nil && strings.EqualFold(*extracted.RoomID, state.LockedRoomID)
	case models.ChangeRequirements:
		merged := mergeRequirements(state.Requirements, extracted)
		return Fingerprint(merged) == state.RequirementsHash
	case models.ChangeSiteVisit:
		return extracted.SiteVisitDate != nil && *extracted.SiteVisitDate == state.SiteVisitDate
	}
	return false
}

// mergeRequirements overlays extracted requirement fields on the current tuple.
func mergeRequirements(req models.Requirements, extracted models.ExtractedFields) models.Requirements {
	if extracted.ParticipantCount != nil {
		req.ParticipantCount = *extracted.ParticipantCount
	}
	if extracted.SeatingLayout != nil {
		req.SeatingLayout = *extracted.SeatingLayout
	}
	if extracted.DurationWindow != nil {
		req.DurationWindow = *extracted.DurationWindow
	}
	if len(extracted.SpecialRequirements) > 0 {
		req.SpecialRequirements = extracted.SpecialRequirements
	}
	return req
}

// tokenize lowercases and splits on whitespace, stripping punctuation.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()—–-")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// findPhrase returns the start index of the first occurrence of phrase in
// tokens, or -1.
func findPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(tokens) < len(phrase) {
		return -1
	}
	for i := 0; i <= len(tokens)-len(phrase); i++ {
		match := true
		for j := range phrase {
			if tokens[i+j] != phrase[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// nearestNoun finds the target-noun token closest to the signal position.
func nearestNoun(tokens []string, nouns []string, signalIdx int) int {
	best := -1
	for i, tok := range tokens {
		for _, noun := range nouns {
			if tok == noun {
				if best < 0 || abs(i-signalIdx) < abs(best-signalIdx) {
					best = i
				}
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
