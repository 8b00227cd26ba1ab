package mongo

import (
	"context"

	"taxtracker/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PayrollRepo implements the tasks.PayrollRepo interface for MongoDB
type PayrollRepo struct {
	collection *mongo.Collection
}

// NewPayrollRepo creates a new payroll repository
func NewPayrollRepo(db *mongo.Database) *PayrollRepo {
	collection := db.Collection("corporationpayrolls")

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "corpId", Value: 1}, {Key: "year", Value: -1}},
	})

	return &PayrollRepo{
		collection: collection,
	}
}

// Create creates a new payroll record
func (r *PayrollRepo) Create(ctx context.Context, record *tasks.Payroll) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByID finds a payroll record by id
func (r *PayrollRepo) FindByID(ctx context.Context, id bson.ObjectID) (*tasks.Payroll, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var record tasks.Payroll
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &record, nil
}

// Update patches the provided fields and refreshes lts.
func (r *PayrollRepo) Update(ctx context.Context, id bson.ObjectID, patch tasks.UpdatePayroll) (*tasks.Payroll, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	set, err := setFromPatch(patch)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record tasks.Payroll
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&record)
	if err != nil {
		return nil, translateTaskNotFound(err)
	}

	return &record, nil
}

// List returns a page of payroll records, newest year first, optionally
// filtered by corporation and year.
func (r *PayrollRepo) List(ctx context.Context, corpID string, year, skip, limit int) ([]*tasks.Payroll, int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if corpID != "" {
		filter["corpId"] = corpID
	}
	if year > 0 {
		filter["year"] = year
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "ts", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.Payroll
	if err := cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
