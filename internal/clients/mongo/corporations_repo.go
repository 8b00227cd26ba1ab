package mongo

import (
	"context"
	"errors"

	"taxtracker/internal/services/corporations"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CorporationsRepo implements the corporations.Repository interface for MongoDB
type CorporationsRepo struct {
	collection *mongo.Collection
}

// NewCorporationsRepo creates a new corporations repository
func NewCorporationsRepo(db *mongo.Database) *CorporationsRepo {
	collection := db.Collection("corporations")

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "name", Value: 1}},
	})

	return &CorporationsRepo{
		collection: collection,
	}
}

func translateCorporationNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return corporations.ErrCorporationNotFound
	}
	return err
}

// Create creates a new corporation record
func (r *CorporationsRepo) Create(ctx context.Context, corp *corporations.Corporation) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, corp)
	return err
}

// FindByID finds a corporation by id
func (r *CorporationsRepo) FindByID(ctx context.Context, id bson.ObjectID) (*corporations.Corporation, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var corp corporations.Corporation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&corp); err != nil {
		return nil, translateCorporationNotFound(err)
	}

	return &corp, nil
}

// Update patches the provided fields and refreshes lts.
func (r *CorporationsRepo) Update(ctx context.Context, id bson.ObjectID, patch corporations.UpdateCorporation) (*corporations.Corporation, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set, err := setFromPatch(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var corp corporations.Corporation
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&corp)
	if err != nil {
		return nil, translateCorporationNotFound(err)
	}

	return &corp, nil
}

// List returns a page of corporations sorted by name, optionally
// filtered by owning client, plus the exact total for that filter.
func (r *CorporationsRepo) List(ctx context.Context, clientID string, skip, limit int) ([]*corporations.Corporation, int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if clientID != "" {
		filter["clientId"] = clientID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var list []*corporations.Corporation
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
