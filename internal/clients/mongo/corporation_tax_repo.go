package mongo

import (
	"context"

	"taxtracker/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CorporationTaxRepo implements the tasks.CorporationTaxRepo interface for MongoDB
type CorporationTaxRepo struct {
	collection *mongo.Collection
}

// NewCorporationTaxRepo creates a new corporate tax repository
func NewCorporationTaxRepo(db *mongo.Database) *CorporationTaxRepo {
	collection := db.Collection("corporationtaxes")

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "corpId", Value: 1}, {Key: "ts", Value: -1}},
	})
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dueDate", Value: 1}},
	})

	return &CorporationTaxRepo{
		collection: collection,
	}
}

// Create creates a new corporate tax task
func (r *CorporationTaxRepo) Create(ctx context.Context, task *tasks.CorporationTax) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, task)
	return err
}

// FindByID finds a corporate tax task by id
func (r *CorporationTaxRepo) FindByID(ctx context.Context, id bson.ObjectID) (*tasks.CorporationTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var task tasks.CorporationTax
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &task, nil
}

// Update patches the provided fields and refreshes lts.
func (r *CorporationTaxRepo) Update(ctx context.Context, id bson.ObjectID, patch tasks.UpdateCorporationTax) (*tasks.CorporationTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set, err := setFromPatch(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task tasks.CorporationTax
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &task, nil
}

// List returns a page of corporate tax tasks, newest first, optionally
// filtered by corporation.
func (r *CorporationTaxRepo) List(ctx context.Context, corpID string, skip, limit int) ([]*tasks.CorporationTax, int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if corpID != "" {
		filter["corpId"] = corpID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "ts", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.CorporationTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
