package reviewRepo

import (
	"context"
	"errors"
	"time"

	"venueflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new manual review record.
func (r *mongoReviewRepo) Create(ctx context.Context, review *models.ManualReview) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, review)
	return err
}

// GetByEventID fetches all reviews raised for one event.
func (r *mongoReviewRepo) GetByEventID(ctx context.Context, eventID string) ([]models.ManualReview, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.ManualReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// MarkResolved flags a review as handled.
func (r *mongoReviewRepo) MarkResolved(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"resolved": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("review not found")
	}
	return nil
}
