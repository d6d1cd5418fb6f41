package eventRepo

import (
	"context"
	"errors"
	"time"

	"venueflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrEventNotFound is returned when no event matches the given ID.
var ErrEventNotFound = errors.New("event not found")

// Create inserts a new booking state. Assigns an ID when missing.
func (r *mongoEventRepo) Create(ctx context.Context, state *models.BookingState) error {
	if state.ID == "" {
		state.ID = uuid.New().String()
	}
	state.CreatedAt = time.Now()
	state.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, state)
	return err
}

// GetByID returns the booking state for one event.
func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.BookingState, error) {
	var state models.BookingState
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Update replaces the stored state with the given one.
func (r *mongoEventRepo) Update(ctx context.Context, state *models.BookingState) error {
	state.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": state.ID}, state)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
