package users

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"taxtracker/cmd/server/testutil"
	"taxtracker/internal/services/auth"
	"taxtracker/internal/services/dashboard"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockUsersService mocks the staff management service
type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) GetUser(ctx context.Context, id bson.ObjectID) (*auth.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserResponse), args.Error(1)
}

func (m *MockUsersService) CreateUser(ctx context.Context, req auth.CreateUserRequest) (*auth.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserResponse), args.Error(1)
}

func (m *MockUsersService) UpdateUser(ctx context.Context, id bson.ObjectID, req auth.UpdateUserRequest) (*auth.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.UserResponse), args.Error(1)
}

func (m *MockUsersService) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsersService) ListUsers(ctx context.Context, req auth.ListUsersRequest) (*auth.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.ListUsersResponse), args.Error(1)
}

// MockWorkloadService mocks the workload reporter
type MockWorkloadService struct {
	mock.Mock
}

func (m *MockWorkloadService) Workload(ctx context.Context, req dashboard.WorkloadRequest) (*dashboard.WorkloadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.WorkloadResponse), args.Error(1)
}

func setupUsersTest(t *testing.T) (*MockUsersService, *MockWorkloadService, *fiber.App) {
	t.Helper()

	usersSvc := &MockUsersService{}
	workloadSvc := &MockWorkloadService{}
	app := testutil.CreateTestApp(t)
	h := NewHandlers(usersSvc, workloadSvc, testutil.CreateTestValidator(t))

	grp := app.Group("/api/v1/users")
	grp.Post("/", h.Create)
	grp.Get("/:id/workload", h.Workload)
	grp.Delete("/:id", h.Delete)

	return usersSvc, workloadSvc, app
}

func TestCreateUser(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		usersSvc, _, app := setupUsersTest(t)
		created := &auth.UserResponse{Success: true, User: &auth.User{Email: "new@office.example"}}
		usersSvc.On("CreateUser", mock.Anything, auth.CreateUserRequest{
			Email:    "new@office.example",
			Name:     "New Employee",
			Password: "Password123",
		}).Return(created, nil).Once()

		req := testutil.CreateJSONRequest("POST", "/api/v1/users/", map[string]string{
			"email":    "new@office.example",
			"name":     "New Employee",
			"password": "Password123",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		usersSvc.AssertExpectations(t)
	})

	t.Run("weak password fails validation", func(t *testing.T) {
		usersSvc, _, app := setupUsersTest(t)

		req := testutil.CreateJSONRequest("POST", "/api/v1/users/", map[string]string{
			"email":    "new@office.example",
			"name":     "New Employee",
			"password": "short",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		usersSvc.AssertNotCalled(t, "CreateUser")
	})

	t.Run("duplicate email maps to 400", func(t *testing.T) {
		usersSvc, _, app := setupUsersTest(t)
		usersSvc.On("CreateUser", mock.Anything, mock.Anything).Return(nil, auth.ErrDuplicate).Once()

		req := testutil.CreateJSONRequest("POST", "/api/v1/users/", map[string]string{
			"email":    "dup@office.example",
			"name":     "Dup",
			"password": "Password123",
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	usersSvc, _, app := setupUsersTest(t)
	id := bson.NewObjectID()
	usersSvc.On("DeleteUser", mock.Anything, id).Return(nil).Once()

	resp, err := app.Test(testutil.CreateJSONRequest("DELETE", "/api/v1/users/"+id.Hex(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, true, got["success"])
	assert.Equal(t, "User deleted successfully", got["message"])
	usersSvc.AssertExpectations(t)
}

func TestWorkload(t *testing.T) {
	id := bson.NewObjectID()

	t.Run("passes parsed date range to the service", func(t *testing.T) {
		_, workloadSvc, app := setupUsersTest(t)
		workloadSvc.On("Workload", mock.Anything, mock.MatchedBy(func(r dashboard.WorkloadRequest) bool {
			return r.UserID == id.Hex() &&
				r.StartDate != nil && r.StartDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				r.EndDate != nil && r.EndDate.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
		})).Return(&dashboard.WorkloadResponse{Success: true}, nil).Once()

		url := "/api/v1/users/" + id.Hex() + "/workload?startDate=2025-01-01&endDate=2025-03-31"
		resp, err := app.Test(testutil.CreateJSONRequest("GET", url, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		workloadSvc.AssertExpectations(t)
	})

	t.Run("invalid date reads as bad request", func(t *testing.T) {
		_, workloadSvc, app := setupUsersTest(t)

		url := "/api/v1/users/" + id.Hex() + "/workload?startDate=01-01-2025"
		resp, err := app.Test(testutil.CreateJSONRequest("GET", url, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		workloadSvc.AssertNotCalled(t, "Workload")
	})

	t.Run("unknown user reads as not found", func(t *testing.T) {
		_, workloadSvc, app := setupUsersTest(t)
		workloadSvc.On("Workload", mock.Anything, mock.Anything).Return(nil, dashboard.ErrUserNotFound).Once()

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/api/v1/users/"+id.Hex()+"/workload", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		_, workloadSvc, app := setupUsersTest(t)

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/api/v1/users/not-hex/workload", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		workloadSvc.AssertNotCalled(t, "Workload")
	})
}
