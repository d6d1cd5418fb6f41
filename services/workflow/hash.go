package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"venueflow/models"
)

// Fingerprint computes the canonical hash of a requirement tuple.
// Pure and deterministic: stable field order, normalized strings, sorted
// special requirements, so logically identical requirement sets always
// fingerprint identically.
func Fingerprint(req models.Requirements) string {
	special := make([]string, 0, len(req.SpecialRequirements))
	for _, s := range req.SpecialRequirements {
		s = normalize(s)
		if s != "" {
			special = append(special, s)
		}
	}
	sort.Strings(special)

	canonical := fmt.Sprintf("participants=%d|layout=%s|duration=%s|special=%s",
		req.ParticipantCount,
		normalize(req.SeatingLayout),
		normalize(req.DurationWindow),
		strings.Join(special, ","),
	)

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Invalidation describes the state reset a confirmed-value change forces.
type Invalidation struct {
	ResetDateConfirmed bool
	ResetLockedRoom    bool // clears LockedRoomID and RoomEvalHash
	RecomputeReqHash   bool
	Rerun              models.Step // 0 = nothing forced to re-run
	// Conditional: re-run only when the recomputed requirements hash differs
	// from RoomEvalHash (the fast-skip rule).
	Conditional bool
}

// InvalidatedBy returns the invalidation rule for a change type.
func InvalidatedBy(ct models.ChangeType) Invalidation {
	switch ct {
	case models.ChangeDate:
		return Invalidation{ResetDateConfirmed: true, Rerun: models.StepDate}
	case models.ChangeRoom:
		return Invalidation{ResetLockedRoom: true, Rerun: models.StepRoom}
	case models.ChangeRequirements:
		return Invalidation{RecomputeReqHash: true, Rerun: models.StepRoom, Conditional: true}
	default:
		// Products and Commercial are handled in place; Deposit, SiteVisit
		// and ClientInfo reset nothing.
		return Invalidation{}
	}
}

// FastSkip reports whether a requirements change left the room decision
// valid: the recomputed fingerprint still matches the snapshot taken when
// the room was locked. Room search is the most expensive step, so this is
// the guard's single most important rule.
func FastSkip(state *models.BookingState) bool {
	return state.RoomEvalHash != "" && state.RequirementsHash == state.RoomEvalHash
}

// OfferFingerprint snapshots the accepted commercial terms: date, room and
// selected line items. Used to detect whether a negotiation outcome is
// still valid after later revisions.
func OfferFingerprint(state *models.BookingState) string {
	parts := make([]string, 0, len(state.SelectedProducts)+2)
	parts = append(parts, "date="+state.ChosenDate, "room="+state.LockedRoomID)
	for _, item := range state.SelectedProducts {
		parts = append(parts, fmt.Sprintf("%s:%d:%.2f", item.SKU, item.Quantity, item.UnitPrice))
	}
	sort.Strings(parts)

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
