package workflow

import (
	"errors"
	"fmt"

	"venueflow/models"
)

// ErrEventClosed is returned when a message arrives for a confirmed or
// cancelled event.
var ErrEventClosed = errors.New("event is closed")

// AmbiguousTargetError is raised when a new value is given without naming
// which variable it replaces and more than one tracked variable is in scope.
// Not a failure: callers turn it into a disambiguation request and no state
// is mutated.
type AmbiguousTargetError struct {
	Candidates []models.ChangeType
}

func (e *AmbiguousTargetError) Error() string {
	return fmt.Sprintf("ambiguous change target, candidates: %v", e.Candidates)
}

// DetourLoopError is raised when the detour bound is exceeded while
// processing a single message. The turn is aborted, the state is left at its
// last stable step and the event is escalated to manual review.
type DetourLoopError struct {
	EventID    string
	Depth      int
	StableStep models.Step
}

func (e *DetourLoopError) Error() string {
	return fmt.Sprintf("detour loop exceeded for event %s (depth %d), holding at step %d", e.EventID, e.Depth, e.StableStep)
}
