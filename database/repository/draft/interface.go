package draftRepo

import (
	"context"

	"venueflow/database"
	"venueflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DraftRepository persists outbound drafts held at the approval gate.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.OutboundDraft) error
	GetByID(ctx context.Context, id string) (*models.OutboundDraft, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.OutboundDraft, error)
	Update(ctx context.Context, draft *models.OutboundDraft) error
}

type mongoDraftRepo struct {
	coll *mongo.Collection
}

// NewMongoDraftRepo returns a DraftRepository backed by MongoDB.
func NewMongoDraftRepo() DraftRepository {
	db := database.MongoClient.Database("venueflow")
	return &mongoDraftRepo{
		coll: db.Collection("outbound_drafts"),
	}
}
