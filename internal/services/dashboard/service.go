package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"taxtracker/internal/services/auth"
	"taxtracker/internal/services/clients"
	"taxtracker/internal/services/corporations"
	"taxtracker/internal/services/tasks"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"
)

// sampleSize is how many records each dashboard panel shows.
const sampleSize = 5

// ErrUserNotFound - workload report target does not exist
var ErrUserNotFound = errors.New("user not found")

// UserFinder resolves the subject of a workload report.
// auth's users repository satisfies it.
type UserFinder interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error)
}

// Service assembles the dashboard, admin statistics, and workload
// reports from cross-collection reads.
type Service struct {
	repo  Repository
	users UserFinder
	log   *slog.Logger
}

// NewService creates a new dashboard service
func NewService(repo Repository, users UserFinder, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		users: users,
		log:   log,
	}
}

// Snapshot builds the dashboard in one shot. The seven reads fan out
// concurrently; the first failure cancels the rest and fails the whole
// snapshot, so the dashboard is never served half-populated.
//
// Pending/completed counts and revenue are computed over the sampled
// task panels, not the whole collections. Employees stays 0 for
// non-admin viewers.
func (s *Service) Snapshot(ctx context.Context, isAdmin bool) (*SnapshotResponse, error) {
	var (
		recentClients  []*clients.Client
		recentCorps    []*corporations.Corporation
		personalTaxes  []*tasks.PersonalTax
		corporateTaxes []*tasks.CorporationTax
		totalClients   int64
		totalCorps     int64
		employees      int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		recentClients, err = s.repo.RecentClients(gctx, sampleSize)
		return err
	})
	g.Go(func() (err error) {
		recentCorps, err = s.repo.RecentCorporations(gctx, sampleSize)
		return err
	})
	g.Go(func() (err error) {
		personalTaxes, err = s.repo.UpcomingPersonalTax(gctx, sampleSize)
		return err
	})
	g.Go(func() (err error) {
		corporateTaxes, err = s.repo.UpcomingCorporationTax(gctx, sampleSize)
		return err
	})
	g.Go(func() (err error) {
		totalClients, err = s.repo.CountClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalCorps, err = s.repo.CountCorporations(gctx)
		return err
	})
	if isAdmin {
		g.Go(func() (err error) {
			employees, err = s.repo.CountUsers(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("dashboard snapshot failed", "error", err)
		return nil, errors.New("failed to fetch dashboard data")
	}

	stats := Stats{
		TotalClients:      totalClients,
		TotalCorporations: totalCorps,
		Employees:         employees,
	}

	deadlines := make([]Deadline, 0, 2*sampleSize)

	for _, t := range personalTaxes {
		if t.Completed {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
			if t.TargetDueDate != nil {
				deadlines = append(deadlines, Deadline{
					Type:        DeadlinePersonalTax,
					Description: t.TaskDescription,
					SubjectID:   t.ClientID,
					DueDate:     t.TargetDueDate,
					Priority:    t.Priority,
				})
			}
		}
		if t.Paid && t.Payment.Valid && t.Payment.Value > 0 {
			stats.TotalRevenue += t.Payment.Value
		}
	}

	for _, t := range corporateTaxes {
		if t.Completed {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
			if t.DueDate != nil {
				deadlines = append(deadlines, Deadline{
					Type:        DeadlineCorporateTax,
					Description: t.TaskDescription,
					SubjectID:   t.CorpID,
					DueDate:     t.DueDate,
					Priority:    t.Priority,
				})
			}
		}
		if t.Paid && t.Payment.Valid && t.Payment.Value > 0 {
			stats.TotalRevenue += t.Payment.Value
		}
	}

	// Each panel is due-date sorted on its own; the merged list must be
	// re-sorted before the global cut.
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(*deadlines[j].DueDate)
	})
	if len(deadlines) > sampleSize {
		deadlines = deadlines[:sampleSize]
	}

	return &SnapshotResponse{
		Success:            true,
		Stats:              stats,
		RecentClients:      recentClients,
		RecentCorporations: recentCorps,
		UpcomingDeadlines:  deadlines,
	}, nil
}

// AdminStats returns the user-management statistics block. All counts
// are exact collection counts, taken concurrently.
func (s *Service) AdminStats(ctx context.Context) (*AdminStatsResponse, error) {
	var stats AdminStats
	var personalTasks, corporateTasks, payrollTasks int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.AdminUsers, err = s.repo.CountUsersByRole(gctx, auth.RoleAdmin)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsers, err = s.repo.CountUsersByStatus(gctx, auth.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalClients, err = s.repo.CountClients(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalCorporations, err = s.repo.CountCorporations(gctx)
		return err
	})
	g.Go(func() (err error) {
		personalTasks, err = s.repo.CountPersonalTax(gctx)
		return err
	})
	g.Go(func() (err error) {
		corporateTasks, err = s.repo.CountCorporationTax(gctx)
		return err
	})
	g.Go(func() (err error) {
		payrollTasks, err = s.repo.CountPayroll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("admin stats failed", "error", err)
		return nil, errors.New("failed to fetch admin statistics")
	}

	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers
	stats.TotalTasks = personalTasks + corporateTasks + payrollTasks

	return &AdminStatsResponse{Success: true, Stats: stats}, nil
}

// WorkloadRequest bounds a workload report to tasks created inside the
// range. EndDate is extended to the end of its day.
type WorkloadRequest struct {
	UserID    string     `validate:"required,len=24,hexadecimal"`
	StartDate *time.Time
	EndDate   *time.Time
}

// Workload reports every task assigned to one case worker, with the
// payments those tasks collected.
func (s *Service) Workload(ctx context.Context, req WorkloadRequest) (*WorkloadResponse, error) {
	id, err := bson.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.log.Error("workload user lookup failed", "user_id", req.UserID, "error", err)
		return nil, errors.New("failed to fetch user details")
	}

	end := req.EndDate
	if end != nil {
		e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
		end = &e
	}

	var (
		personalTaxes  []*tasks.PersonalTax
		corporateTaxes []*tasks.CorporationTax
		payrolls       []*tasks.Payroll
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		personalTaxes, err = s.repo.WorkloadPersonalTax(gctx, req.UserID, req.StartDate, end)
		return err
	})
	g.Go(func() (err error) {
		corporateTaxes, err = s.repo.WorkloadCorporationTax(gctx, req.UserID, req.StartDate, end)
		return err
	})
	g.Go(func() (err error) {
		payrolls, err = s.repo.WorkloadPayroll(gctx, req.UserID, req.StartDate, end)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("workload report failed", "user_id", req.UserID, "error", err)
		return nil, errors.New("failed to fetch user details")
	}

	var totalPayment float64
	for _, t := range personalTaxes {
		if t.Payment.Valid && t.Payment.Value > 0 {
			totalPayment += t.Payment.Value
		}
	}
	for _, t := range corporateTaxes {
		if t.Payment.Valid && t.Payment.Value > 0 {
			totalPayment += t.Payment.Value
		}
	}

	return &WorkloadResponse{
		Success:          true,
		User:             user,
		PersonalTaxes:    personalTaxes,
		CorporationTaxes: corporateTaxes,
		Payrolls:         payrolls,
		TotalPayment:     totalPayment,
		Stats: WorkloadStats{
			PersonalTaxCount:    len(personalTaxes),
			CorporationTaxCount: len(corporateTaxes),
			PayrollCount:        len(payrolls),
		},
	}, nil
}
