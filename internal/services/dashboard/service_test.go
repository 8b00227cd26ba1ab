package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxtracker/internal/services/auth"
	"taxtracker/internal/services/clients"
	"taxtracker/internal/services/corporations"
	"taxtracker/internal/services/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RecentClients(ctx context.Context, limit int) ([]*clients.Client, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clients.Client), args.Error(1)
}

func (m *MockRepository) RecentCorporations(ctx context.Context, limit int) ([]*corporations.Corporation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*corporations.Corporation), args.Error(1)
}

func (m *MockRepository) UpcomingPersonalTax(ctx context.Context, limit int) ([]*tasks.PersonalTax, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasks.PersonalTax), args.Error(1)
}

func (m *MockRepository) UpcomingCorporationTax(ctx context.Context, limit int) ([]*tasks.CorporationTax, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasks.CorporationTax), args.Error(1)
}

func (m *MockRepository) CountClients(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountCorporations(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountUsersByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountPersonalTax(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountCorporationTax(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountPayroll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) WorkloadPersonalTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.PersonalTax, error) {
	args := m.Called(ctx, caseWorker, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasks.PersonalTax), args.Error(1)
}

func (m *MockRepository) WorkloadCorporationTax(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.CorporationTax, error) {
	args := m.Called(ctx, caseWorker, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasks.CorporationTax), args.Error(1)
}

func (m *MockRepository) WorkloadPayroll(ctx context.Context, caseWorker string, start, end *time.Time) ([]*tasks.Payroll, error) {
	args := m.Called(ctx, caseWorker, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tasks.Payroll), args.Error(1)
}

// MockUserFinder is a mock implementation of UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func emptyPanels(repo *MockRepository) {
	repo.On("RecentClients", mock.Anything, sampleSize).Return([]*clients.Client{}, nil)
	repo.On("RecentCorporations", mock.Anything, sampleSize).Return([]*corporations.Corporation{}, nil)
	repo.On("CountClients", mock.Anything).Return(int64(0), nil)
	repo.On("CountCorporations", mock.Anything).Return(int64(0), nil)
}

func TestSnapshotMergesDeadlines(t *testing.T) {
	repo := new(MockRepository)
	emptyPanels(repo)

	repo.On("UpcomingPersonalTax", mock.Anything, sampleSize).Return([]*tasks.PersonalTax{
		{TaskDescription: "T1 2024", ClientID: "c1", TargetDueDate: date(2025, 1, 10)},
		{TaskDescription: "T1 2023 late", ClientID: "c2", TargetDueDate: date(2025, 3, 1)},
	}, nil)
	repo.On("UpcomingCorporationTax", mock.Anything, sampleSize).Return([]*tasks.CorporationTax{
		{TaskDescription: "HST Q4", CorpID: "k1", DueDate: date(2025, 1, 5)},
		{TaskDescription: "T2 FY24", CorpID: "k2", DueDate: date(2025, 2, 1)},
	}, nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	resp, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	require.True(t, resp.Success)

	require.Len(t, resp.UpcomingDeadlines, 4)
	var got []time.Time
	for _, d := range resp.UpcomingDeadlines {
		got = append(got, *d.DueDate)
	}
	want := []time.Time{
		*date(2025, 1, 5),
		*date(2025, 1, 10),
		*date(2025, 2, 1),
		*date(2025, 3, 1),
	}
	assert.Equal(t, want, got)

	assert.Equal(t, DeadlineCorporateTax, resp.UpcomingDeadlines[0].Type)
	assert.Equal(t, "k1", resp.UpcomingDeadlines[0].SubjectID)
	assert.Equal(t, DeadlinePersonalTax, resp.UpcomingDeadlines[1].Type)
	assert.Equal(t, "c1", resp.UpcomingDeadlines[1].SubjectID)

	assert.Equal(t, 4, resp.Stats.PendingTasks)
	assert.Equal(t, 0, resp.Stats.CompletedTasks)
}

func TestSnapshotCapsDeadlinesAtFive(t *testing.T) {
	repo := new(MockRepository)
	emptyPanels(repo)

	var personal []*tasks.PersonalTax
	for d := 1; d <= 5; d++ {
		personal = append(personal, &tasks.PersonalTax{TargetDueDate: date(2025, 4, d)})
	}
	repo.On("UpcomingPersonalTax", mock.Anything, sampleSize).Return(personal, nil)
	repo.On("UpcomingCorporationTax", mock.Anything, sampleSize).Return([]*tasks.CorporationTax{
		{DueDate: date(2025, 3, 31)},
	}, nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	resp, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, resp.UpcomingDeadlines, 5)
	assert.Equal(t, *date(2025, 3, 31), *resp.UpcomingDeadlines[0].DueDate)
	assert.Equal(t, *date(2025, 4, 4), *resp.UpcomingDeadlines[4].DueDate)
}

func TestSnapshotRevenueSkipsUnparsablePayments(t *testing.T) {
	repo := new(MockRepository)
	emptyPanels(repo)

	// "bad" decodes to an invalid Amount and contributes nothing.
	repo.On("UpcomingPersonalTax", mock.Anything, sampleSize).Return([]*tasks.PersonalTax{
		{Paid: true, Payment: tasks.NewAmount(100), Completed: true},
		{Paid: true, Payment: tasks.Amount{}, Completed: true},
		{Paid: false, Payment: tasks.NewAmount(500)},
	}, nil)
	repo.On("UpcomingCorporationTax", mock.Anything, sampleSize).Return([]*tasks.CorporationTax{}, nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	resp, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Stats.TotalRevenue)
	assert.Equal(t, 2, resp.Stats.CompletedTasks)
	assert.Equal(t, 1, resp.Stats.PendingTasks)
}

func TestSnapshotEmployeesRequireAdmin(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RecentClients", mock.Anything, sampleSize).Return([]*clients.Client{}, nil)
	repo.On("RecentCorporations", mock.Anything, sampleSize).Return([]*corporations.Corporation{}, nil)
	repo.On("UpcomingPersonalTax", mock.Anything, sampleSize).Return([]*tasks.PersonalTax{}, nil)
	repo.On("UpcomingCorporationTax", mock.Anything, sampleSize).Return([]*tasks.CorporationTax{}, nil)
	repo.On("CountClients", mock.Anything).Return(int64(42), nil)
	repo.On("CountCorporations", mock.Anything).Return(int64(7), nil)
	repo.On("CountUsers", mock.Anything).Return(int64(8), nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	resp, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Stats.Employees)
	assert.Equal(t, int64(42), resp.Stats.TotalClients)
	repo.AssertNotCalled(t, "CountUsers", mock.Anything)

	resp, err = svc.Snapshot(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.Stats.Employees)
}

func TestSnapshotFailsWhole(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RecentClients", mock.Anything, sampleSize).Return([]*clients.Client{}, nil)
	repo.On("RecentCorporations", mock.Anything, sampleSize).Return(nil, errors.New("read timeout"))
	repo.On("UpcomingPersonalTax", mock.Anything, sampleSize).Return([]*tasks.PersonalTax{}, nil)
	repo.On("UpcomingCorporationTax", mock.Anything, sampleSize).Return([]*tasks.CorporationTax{}, nil)
	repo.On("CountClients", mock.Anything).Return(int64(0), nil)
	repo.On("CountCorporations", mock.Anything).Return(int64(0), nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	_, err := svc.Snapshot(context.Background(), false)
	assert.EqualError(t, err, "failed to fetch dashboard data")
}

func TestAdminStats(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CountUsers", mock.Anything).Return(int64(8), nil)
	repo.On("CountUsersByRole", mock.Anything, auth.RoleAdmin).Return(int64(2), nil)
	repo.On("CountUsersByStatus", mock.Anything, auth.StatusActive).Return(int64(7), nil)
	repo.On("CountClients", mock.Anything).Return(int64(120), nil)
	repo.On("CountCorporations", mock.Anything).Return(int64(34), nil)
	repo.On("CountPersonalTax", mock.Anything).Return(int64(200), nil)
	repo.On("CountCorporationTax", mock.Anything).Return(int64(80), nil)
	repo.On("CountPayroll", mock.Anything).Return(int64(30), nil)

	svc := NewService(repo, new(MockUserFinder), silentLogger)

	resp, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AdminStats{
		TotalUsers:        8,
		AdminUsers:        2,
		RegularUsers:      6,
		ActiveUsers:       7,
		InactiveUsers:     1,
		TotalClients:      120,
		TotalCorporations: 34,
		TotalTasks:        310,
	}, resp.Stats)
}

func TestWorkload(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserFinder)
	userID := bson.NewObjectID()

	users.On("FindByID", mock.Anything, userID).Return(&auth.User{ID: userID, Name: "Dana"}, nil)

	repo.On("WorkloadPersonalTax", mock.Anything, userID.Hex(), (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*tasks.PersonalTax{
			{Payment: tasks.NewAmount(300)},
			{Payment: tasks.Amount{}},
		}, nil)
	repo.On("WorkloadCorporationTax", mock.Anything, userID.Hex(), (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*tasks.CorporationTax{{Payment: tasks.NewAmount(1530)}}, nil)
	repo.On("WorkloadPayroll", mock.Anything, userID.Hex(), (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*tasks.Payroll{{}, {}, {}}, nil)

	svc := NewService(repo, users, silentLogger)

	resp, err := svc.Workload(context.Background(), WorkloadRequest{UserID: userID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, "Dana", resp.User.Name)
	assert.Equal(t, 1830.0, resp.TotalPayment)
	assert.Equal(t, WorkloadStats{PersonalTaxCount: 2, CorporationTaxCount: 1, PayrollCount: 3}, resp.Stats)
}

func TestWorkloadEndDateCoversWholeDay(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserFinder)
	userID := bson.NewObjectID()

	users.On("FindByID", mock.Anything, userID).Return(&auth.User{ID: userID}, nil)

	endOfDay := time.Date(2025, 6, 30, 23, 59, 59, 999_000_000, time.UTC)
	match := mock.MatchedBy(func(end *time.Time) bool {
		return end != nil && end.Equal(endOfDay)
	})
	repo.On("WorkloadPersonalTax", mock.Anything, userID.Hex(), (*time.Time)(nil), match).
		Return([]*tasks.PersonalTax{}, nil)
	repo.On("WorkloadCorporationTax", mock.Anything, userID.Hex(), (*time.Time)(nil), match).
		Return([]*tasks.CorporationTax{}, nil)
	repo.On("WorkloadPayroll", mock.Anything, userID.Hex(), (*time.Time)(nil), match).
		Return([]*tasks.Payroll{}, nil)

	svc := NewService(repo, users, silentLogger)

	_, err := svc.Workload(context.Background(), WorkloadRequest{
		UserID:  userID.Hex(),
		EndDate: date(2025, 6, 30),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestWorkloadUserNotFound(t *testing.T) {
	repo := new(MockRepository)
	users := new(MockUserFinder)
	userID := bson.NewObjectID()

	users.On("FindByID", mock.Anything, userID).Return(nil, auth.ErrUserNotFound)

	svc := NewService(repo, users, silentLogger)

	_, err := svc.Workload(context.Background(), WorkloadRequest{UserID: userID.Hex()})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Workload(context.Background(), WorkloadRequest{UserID: "nope"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
