package escalation

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"venueflow/config"
	reviewRepo "venueflow/database/repository/review"
	"venueflow/models"

	"github.com/hibiken/asynq"
)

// InitReviewWorker runs the manual-review worker in background.
func InitReviewWorker(repo reviewRepo.ManualReviewRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReviewQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeManualReview, handleReviewTask(repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReviewWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReviewWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReviewWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReviewTask(repo reviewRepo.ManualReviewRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReviewPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReviewHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReviewHandler] Escalating event %s at step %d: %s", p.EventID, p.StableStep, p.Reason)

		review := &models.ManualReview{
			EventID:     p.EventID,
			Reason:      p.Reason,
			StableStep:  p.StableStep,
			DetourDepth: p.DetourDepth,
		}
		if err := repo.Create(ctx, review); err != nil {
			log.Printf("[ReviewHandler] Failed to persist manual review: %v", err)
			return err
		}
		return nil
	}
}
