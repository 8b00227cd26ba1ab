package mongo

import (
	"context"
	"errors"

	"taxtracker/internal/services/clients"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ClientsRepo implements the clients.Repository interface for MongoDB
type ClientsRepo struct {
	collection *mongo.Collection
}

// NewClientsRepo creates a new clients repository
func NewClientsRepo(db *mongo.Database) *ClientsRepo {
	collection := db.Collection("clients")

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})

	return &ClientsRepo{
		collection: collection,
	}
}

func translateClientNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return clients.ErrClientNotFound
	}
	return err
}

// Create creates a new client record
func (r *ClientsRepo) Create(ctx context.Context, client *clients.Client) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, client)
	return err
}

// FindByID finds a client by id
func (r *ClientsRepo) FindByID(ctx context.Context, id bson.ObjectID) (*clients.Client, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var client clients.Client
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		return nil, translateClientNotFound(err)
	}

	return &client, nil
}

// Update patches the provided fields and refreshes lts.
func (r *ClientsRepo) Update(ctx context.Context, id bson.ObjectID, patch clients.UpdateClient) (*clients.Client, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set, err := setFromPatch(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var client clients.Client
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&client)
	if err != nil {
		return nil, translateClientNotFound(err)
	}

	return &client, nil
}

// List returns a page of clients sorted by name, plus the exact total.
func (r *ClientsRepo) List(ctx context.Context, skip, limit int) ([]*clients.Client, int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var list []*clients.Client
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
