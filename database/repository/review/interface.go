package reviewRepo

import (
	"context"

	"venueflow/database"
	"venueflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ManualReviewRepository persists escalation records for human follow-up.
type ManualReviewRepository interface {
	Create(ctx context.Context, review *models.ManualReview) error
	GetByEventID(ctx context.Context, eventID string) ([]models.ManualReview, error)
	MarkResolved(ctx context.Context, id string) error
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo returns a ManualReviewRepository backed by MongoDB.
func NewMongoReviewRepo() ManualReviewRepository {
	db := database.MongoClient.Database("venueflow")
	return &mongoReviewRepo{
		coll: db.Collection("manual_reviews"),
	}
}
