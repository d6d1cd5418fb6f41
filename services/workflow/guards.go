package workflow

import "venueflow/models"

// prerequisite is one entry condition for a step. owner is the step that
// resolves the prerequisite when it is unmet.
type prerequisite struct {
	name  string
	owner models.Step
	met   func(*models.BookingState) bool
}

// GuardResult is the outcome of an entry check. When Pass is false, Target
// names the detour destination for the first unmet prerequisite.
type GuardResult struct {
	Pass   bool
	Unmet  string
	Target models.Step
}

func dateConfirmed(s *models.BookingState) bool { return s.DateConfirmed }

func roomLockedAndFresh(s *models.BookingState) bool {
	return s.LockedRoomID != "" && s.RoomEvalHash == s.RequirementsHash
}

func capacityPresent(s *models.BookingState) bool {
	return s.Requirements.ParticipantCount > 0
}

func productsPhaseDone(s *models.BookingState) bool { return s.ProductsConfirmed }

func offerAccepted(s *models.BookingState) bool { return s.OfferHash != "" }

// entryPrereqs declares each step's prerequisites in evaluation order.
// Order matters: the FIRST unmet prerequisite determines the detour target,
// so evaluating out of order would route to the wrong owner step and can
// make two guards oscillate.
var entryPrereqs = map[models.Step][]prerequisite{
	models.StepRoom: {
		{name: "date_confirmed", owner: models.StepDate, met: dateConfirmed},
	},
	models.StepProducts: {
		{name: "date_confirmed", owner: models.StepDate, met: dateConfirmed},
		{name: "room_locked_and_fresh", owner: models.StepRoom, met: roomLockedAndFresh},
		{name: "capacity_present", owner: models.StepRoom, met: capacityPresent},
	},
	models.StepOffer: {
		{name: "date_confirmed", owner: models.StepDate, met: dateConfirmed},
		{name: "room_locked_and_fresh", owner: models.StepRoom, met: roomLockedAndFresh},
		{name: "products_phase_done", owner: models.StepProducts, met: productsPhaseDone},
	},
	models.StepContract: {
		{name: "date_confirmed", owner: models.StepDate, met: dateConfirmed},
		{name: "room_locked_and_fresh", owner: models.StepRoom, met: roomLockedAndFresh},
		{name: "offer_accepted", owner: models.StepOffer, met: offerAccepted},
	},
	models.StepHandover: {
		{name: "room_locked_and_fresh", owner: models.StepRoom, met: roomLockedAndFresh},
		{name: "offer_accepted", owner: models.StepOffer, met: offerAccepted},
	},
}

// CheckEntry evaluates a step's prerequisites in declared order and reports
// the first unmet one. Deterministic by construction.
func CheckEntry(step models.Step, state *models.BookingState) GuardResult {
	for _, p := range entryPrereqs[step] {
		if !p.met(state) {
			return GuardResult{Unmet: p.name, Target: p.owner}
		}
	}
	return GuardResult{Pass: true}
}
