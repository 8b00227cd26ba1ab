package mongo

import (
	"context"
	"errors"

	"taxtracker/internal/services/catalog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var nameAsc = bson.D{{Key: "name", Value: 1}}

func translateServiceNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return catalog.ErrServiceNotFound
	}
	return err
}

// PersonalTaxServicesRepo implements catalog.PersonalTaxServicesRepo for MongoDB
type PersonalTaxServicesRepo struct {
	collection *mongo.Collection
}

// NewPersonalTaxServicesRepo creates a new personal tax price list repository
func NewPersonalTaxServicesRepo(db *mongo.Database) *PersonalTaxServicesRepo {
	return &PersonalTaxServicesRepo{
		collection: db.Collection("personaltaxservices"),
	}
}

// Create creates a new price list entry
func (r *PersonalTaxServicesRepo) Create(ctx context.Context, svc *catalog.PersonalTaxService) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, svc)
	return err
}

// Replace overwrites the full field set and refreshes lts.
func (r *PersonalTaxServicesRepo) Replace(ctx context.Context, id bson.ObjectID, set catalog.SetPersonalTaxService) (*catalog.PersonalTaxService, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	update, err := setFromPatch(set)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry catalog.PersonalTaxService
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&entry)
	if err != nil {
		return nil, translateServiceNotFound(err)
	}

	return &entry, nil
}

// Delete removes a price list entry
func (r *PersonalTaxServicesRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return catalog.ErrServiceNotFound
	}

	return nil
}

// List returns the whole price list, name ascending.
func (r *PersonalTaxServicesRepo) List(ctx context.Context) ([]*catalog.PersonalTaxService, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(nameAsc))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*catalog.PersonalTaxService
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// PayrollServicesRepo implements catalog.PayrollServicesRepo for MongoDB
type PayrollServicesRepo struct {
	collection *mongo.Collection
}

// NewPayrollServicesRepo creates a new payroll price list repository
func NewPayrollServicesRepo(db *mongo.Database) *PayrollServicesRepo {
	return &PayrollServicesRepo{
		collection: db.Collection("payrollservices"),
	}
}

// Create creates a new price list entry
func (r *PayrollServicesRepo) Create(ctx context.Context, svc *catalog.PayrollService) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, svc)
	return err
}

// Replace overwrites the full field set and refreshes lts.
func (r *PayrollServicesRepo) Replace(ctx context.Context, id bson.ObjectID, set catalog.SetPayrollService) (*catalog.PayrollService, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	update, err := setFromPatch(set)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry catalog.PayrollService
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&entry)
	if err != nil {
		return nil, translateServiceNotFound(err)
	}

	return &entry, nil
}

// Delete removes a price list entry
func (r *PayrollServicesRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return catalog.ErrServiceNotFound
	}

	return nil
}

// List returns the whole price list, name ascending.
func (r *PayrollServicesRepo) List(ctx context.Context) ([]*catalog.PayrollService, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(nameAsc))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*catalog.PayrollService
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}
