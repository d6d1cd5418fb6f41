package escalation

import (
	"context"
	"encoding/json"
	"fmt"

	"venueflow/config"
	"venueflow/models"

	"github.com/hibiken/asynq"
)

// TypeManualReview is the task type for routing escalations.
const TypeManualReview = "review:manual"

// Escalator hands a conversation over to a human when routing gives up.
type Escalator interface {
	EnqueueReview(ctx context.Context, payload models.ReviewPayload) error
}

// AsynqEscalator queues manual reviews on the Redis-backed task queue.
type AsynqEscalator struct {
	client *asynq.Client
}

// NewAsynqEscalator creates an escalator bound to the review queue DB.
func NewAsynqEscalator() *AsynqEscalator {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReviewQueueDB,
	})
	return &AsynqEscalator{client: client}
}

// EnqueueReview queues one manual-review task.
func (e *AsynqEscalator) EnqueueReview(ctx context.Context, payload models.ReviewPayload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal review payload: %w", err)
	}
	task := asynq.NewTask(TypeManualReview, b)
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue manual review: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (e *AsynqEscalator) Close() error {
	return e.client.Close()
}
