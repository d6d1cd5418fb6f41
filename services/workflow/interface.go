package workflow

import (
	"context"

	eventRepo "venueflow/database/repository/event"
	"venueflow/models"
	ai "venueflow/services/intelligence"

	"venueflow/services/escalation"

	"github.com/go-redis/redis/v8"
)

// WorkflowService drives the 7-stage booking pipeline for event conversations.
type WorkflowService interface {
	CreateEvent(ctx context.Context, req models.IntakeRequest) (*models.BookingState, error)
	ProcessMessage(ctx context.Context, eventID, text string) (*models.TurnResult, error)
	GetEvent(ctx context.Context, eventID string) (*models.BookingState, error)
	CancelEvent(ctx context.Context, eventID string) error
}

// DefaultWorkflowService implements WorkflowService.
type DefaultWorkflowService struct {
	Repo      eventRepo.BookingStateRepository
	Extractor ai.Extractor
	Detector  ChangeDetector
	Handlers  map[models.Step]StepHandler
	Escalator escalation.Escalator

	// Cache is the optional write-through state cache in front of Mongo.
	Cache *redis.Client
	// ContextStore optionally records messages for the NLU extractor.
	ContextStore *ai.RedisContextStore

	// MaxDetourDepth bounds consecutive detours within one message.
	MaxDetourDepth int

	locks *keyedMutex
}

// NewWorkflowService wires a workflow service with the default detour bound.
func NewWorkflowService(
	repo eventRepo.BookingStateRepository,
	extractor ai.Extractor,
	detector ChangeDetector,
	handlers map[models.Step]StepHandler,
	escalator escalation.Escalator,
	maxDetourDepth int,
) *DefaultWorkflowService {
	if maxDetourDepth <= 0 {
		maxDetourDepth = 4
	}
	return &DefaultWorkflowService{
		Repo:           repo,
		Extractor:      extractor,
		Detector:       detector,
		Handlers:       handlers,
		Escalator:      escalator,
		MaxDetourDepth: maxDetourDepth,
		locks:          newKeyedMutex(),
	}
}
