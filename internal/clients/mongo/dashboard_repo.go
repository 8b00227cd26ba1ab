package mongo

import (
	"context"
	"time"

	"taxtracker/internal/services/clients"
	"taxtracker/internal/services/corporations"
	"taxtracker/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DashboardRepo implements the dashboard.Repository interface with
// reads across all office collections.
type DashboardRepo struct {
	clients        *mongo.Collection
	corporations   *mongo.Collection
	users          *mongo.Collection
	personalTax    *mongo.Collection
	corporationTax *mongo.Collection
	payroll        *mongo.Collection
}

// NewDashboardRepo creates a new dashboard repository
func NewDashboardRepo(db *mongo.Database) *DashboardRepo {
	return &DashboardRepo{
		clients:        db.Collection("clients"),
		corporations:   db.Collection("corporations"),
		users:          db.Collection("users"),
		personalTax:    db.Collection("personaltaxes"),
		corporationTax: db.Collection("corporationtaxes"),
		payroll:        db.Collection("corporationpayrolls"),
	}
}

// RecentClients returns the most recently touched clients, lts descending.
func (r *DashboardRepo) RecentClients(ctx context.Context, limit int) ([]*clients.Client, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "lts", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.clients.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*clients.Client
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// RecentCorporations returns the most recently created corporations, ts descending.
func (r *DashboardRepo) RecentCorporations(ctx context.Context, limit int) ([]*corporations.Corporation, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "ts", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.corporations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*corporations.Corporation
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpcomingPersonalTax returns personal tax tasks sorted by target due
// date ascending.
func (r *DashboardRepo) UpcomingPersonalTax(ctx context.Context, limit int) ([]*tasks.PersonalTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "targetDueDate", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.personalTax.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.PersonalTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpcomingCorporationTax returns corporate tax tasks sorted by due date
// ascending.
func (r *DashboardRepo) UpcomingCorporationTax(ctx context.Context, limit int) ([]*tasks.CorporationTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "dueDate", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.corporationTax.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.CorporationTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CountClients returns the exact client count.
func (r *DashboardRepo) CountClients(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.clients.CountDocuments(ctx, bson.M{})
}

// CountCorporations returns the exact corporation count.
func (r *DashboardRepo) CountCorporations(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.corporations.CountDocuments(ctx, bson.M{})
}

// CountUsers returns the exact user count.
func (r *DashboardRepo) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.users.CountDocuments(ctx, bson.M{})
}

// CountUsersByRole counts users holding one role.
func (r *DashboardRepo) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.users.CountDocuments(ctx, bson.M{"role": role})
}

// CountUsersByStatus counts users in one status.
func (r *DashboardRepo) CountUsersByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.users.CountDocuments(ctx, bson.M{"status": status})
}

// CountPersonalTax returns the exact personal tax task count.
func (r *DashboardRepo) CountPersonalTax(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.personalTax.CountDocuments(ctx, bson.M{})
}

// CountCorporationTax returns the exact corporate tax task count.
func (r *DashboardRepo) CountCorporationTax(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.corporationTax.CountDocuments(ctx, bson.M{})
}

// CountPayroll returns the exact payroll record count.
func (r *DashboardRepo) CountPayroll(ctx context.Context) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()
	return r.payroll.CountDocuments(ctx, bson.M{})
}

// workloadFilter matches records assigned to one case worker, bounded
// by an optional creation date range.
func workloadFilter(caseWorker string, start, end *time.Time) bson.M {
	filter := bson.M{"caseWorker": caseWorker}
	if start != nil || end != nil {
		ts := bson.M{}
		if start != nil {
			ts["$gte"] = *start
		}
		if end != nil {
			ts["$lte"] = *end
		}
		filter["ts"] = ts
	}
	return filter
}

// WorkloadPersonalTax returns all personal tax tasks assigned to a case worker.
func (r *DashboardRepo) WorkloadPersonalTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.PersonalTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cursor, err := r.personalTax.Find(ctx, workloadFilter(caseWorker, start, end))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.PersonalTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// WorkloadCorporationTax returns all corporate tax tasks assigned to a case worker.
func (r *DashboardRepo) WorkloadCorporationTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.CorporationTax, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cursor, err := r.corporationTax.Find(ctx, workloadFilter(caseWorker, start, end))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.CorporationTax
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// WorkloadPayroll returns all payroll records assigned to a case worker.
func (r *DashboardRepo) WorkloadPayroll(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.Payroll, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cursor, err := r.payroll.Find(ctx, workloadFilter(caseWorker, start, end))
	if err != nil {
		return nil, err
	}
	defer closeCursor(ctx, cursor)

	var list []*tasks.Payroll
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
