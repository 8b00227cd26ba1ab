package mongo

import (
	"context"
	"errors"

	"taxtracker/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PersonalTaxRepo implements the tasks.PersonalTaxRepo interface for MongoDB
type PersonalTaxRepo struct {
	collection *mongo.Collection
}

// NewPersonalTaxRepo creates a new personal tax repository
func NewPersonalTaxRepo(db *mongo.Database) *PersonalTaxRepo {
	collection := db.Collection("personaltaxes")

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "ts", Value: -1}},
	})
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "targetDueDate", Value: 1}},
	})

	return &PersonalTaxRepo{
		collection: collection,
	}
}

func translateTaskNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return tasks.ErrTaskNotFound
	}
	return err
}

// Create creates a new personal tax task
func (r *PersonalTaxRepo) Create(ctx context.Context, task *tasks.PersonalTax) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, task)
	return err
}

// FindByID finds a personal tax task by id
func (r *PersonalTaxRepo) FindByID(ctx context.Context, id bson.ObjectID) (*tasks.PersonalTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var task tasks.PersonalTax
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &task, nil
}

// Update patches the provided fields and refreshes lts.
func (r *PersonalTaxRepo) Update(ctx context.Context, id bson.ObjectID, patch tasks.UpdatePersonalTax) (*tasks.PersonalTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set, err := setFromPatch(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task tasks.PersonalTax
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &task, nil
}

// List returns a page of personal tax tasks, newest first, optionally
// filtered by client.
func (r *PersonalTaxRepo) List(ctx context.Context, clientID string, skip, limit int) ([]*tasks.PersonalTax, int64, error) {
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
		SetSort(bson.D{{Key: "ts", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.PersonalTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
