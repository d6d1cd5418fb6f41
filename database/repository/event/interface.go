package eventRepo

import (
	"context"

	"venueflow/database"
	"venueflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingStateRepository persists per-event routing state.
type BookingStateRepository interface {
	Create(ctx context.Context, state *models.BookingState) error
	GetByID(ctx context.Context, id string) (*models.BookingState, error)
	Update(ctx context.Context, state *models.BookingState) error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo returns a BookingStateRepository backed by MongoDB.
func NewMongoEventRepo() BookingStateRepository {
	db := database.MongoClient.Database("venueflow")
	return &mongoEventRepo{
		coll: db.Collection("events"),
	}
}
