package draftRepo

import (
	"context"
	"errors"
	"time"

	"venueflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDraftNotFound is returned when no draft matches the given ID.
var ErrDraftNotFound = errors.New("draft not found")

// Create inserts a new outbound draft and assigns it an ID when missing.
func (r *mongoDraftRepo) Create(ctx context.Context, draft *models.OutboundDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, draft)
	return err
}

// GetByID returns a draft by its ID.
func (r *mongoDraftRepo) GetByID(ctx context.Context, id string) (*models.OutboundDraft, error) {
	var draft models.OutboundDraft
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetByIDs returns all drafts whose ID is in the given list.
func (r *mongoDraftRepo) GetByIDs(ctx context.Context, ids []string) ([]models.OutboundDraft, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drafts []models.OutboundDraft
	if err := cursor.All(ctx, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// Update replaces a stored draft.
func (r *mongoDraftRepo) Update(ctx context.Context, draft *models.OutboundDraft) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": draft.ID}, draft)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDraftNotFound
	}
	return nil
}
