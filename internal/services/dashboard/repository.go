package dashboard

import (
	"context"
	"time"

	"taxtracker/internal/services/clients"
	"taxtracker/internal/services/corporations"
	"taxtracker/internal/services/tasks"
)

// Repository defines the cross-collection reads behind the dashboard,
// admin statistics, and workload reports.
type Repository interface {
	RecentClients(ctx context.Context, limit int) ([]*clients.Client, error)
	RecentCorporations(ctx context.Context, limit int) ([]*corporations.Corporation, error)
	UpcomingPersonalTax(ctx context.Context, limit int) ([]*tasks.PersonalTax, error)
	UpcomingCorporationTax(ctx context.Context, limit int) ([]*tasks.CorporationTax, error)

	CountClients(ctx context.Context) (int64, error)
	CountCorporations(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	CountUsersByStatus(ctx context.Context, status string) (int64, error)
	CountPersonalTax(ctx context.Context) (int64, error)
	CountCorporationTax(ctx context.Context) (int64, error)
	CountPayroll(ctx context.Context) (int64, error)

	WorkloadPersonalTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.PersonalTax, error)
	WorkloadCorporationTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.CorporationTax, error)
	WorkloadPayroll(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.Payroll, error)
}
