package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxtracker/internal/config"
	"taxtracker/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) List(ctx context.Context, skip, limit int) ([]*User, int64, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUsersRepo) Update(ctx context.Context, id bson.ObjectID, patch UpdateUser) (*User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{
		BcryptCost:    4,
		JWTSecret:     "super-secret-jwt-key-at-least-32-chars",
		JWTAlgorithm:  "HS256",
		TokenTTLHours: 168,
	}
}

func activeUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := crypto.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Now()
	return &User{
		ID:           bson.NewObjectID(),
		Email:        "jane@office.example",
		Name:         "Jane",
		PasswordHash: hash,
		Role:         RoleUser,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestService_Login(t *testing.T) {
	user := activeUser(t, "Password123")

	tests := []struct {
		name    string
		req     LoginRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: "jane@office.example", Password: "Password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "jane@office.example").Return(user, nil)
			},
		},
		{
			name: "email is normalized before lookup",
			req:  LoginRequest{Email: "  Jane@Office.Example ", Password: "Password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "jane@office.example").Return(user, nil)
			},
		},
		{
			name: "unknown user collapses to invalid credentials",
			req:  LoginRequest{Email: "nobody@office.example", Password: "Password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "nobody@office.example").Return(nil, ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password collapses to invalid credentials",
			req:  LoginRequest{Email: "jane@office.example", Password: "WrongPassword1"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "jane@office.example").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUsersRepo{}
			tt.setup(repo)
			svc := NewService(repo, testConfig(), silentLogger)

			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.True(t, resp.Success)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, user.ID, resp.User.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_IssueToken(t *testing.T) {
	cfg := testConfig()
	svc := NewService(&MockUsersRepo{}, cfg, silentLogger)
	user := activeUser(t, "Password123")

	signed, err := svc.IssueToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		require.Equal(t, jwt.SigningMethodHS256, token.Method)
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(cfg.TokenTTLHours)*time.Hour, exp.Sub(iat.Time))
}

func TestService_IssueToken_UnsupportedAlgorithm(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAlgorithm = "RS256"
	svc := NewService(&MockUsersRepo{}, cfg, silentLogger)

	_, err := svc.IssueToken(activeUser(t, "Password123"))
	require.ErrorIs(t, err, ErrUnsupportedJWTAlg)
}

func TestService_Authenticate(t *testing.T) {
	user := activeUser(t, "Password123")

	t.Run("resolves claim to current user record", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		svc := NewService(repo, testConfig(), silentLogger)

		got, err := svc.Authenticate(context.Background(), user.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, user, got)
		repo.AssertExpectations(t)
	})

	t.Run("deleted user is rejected", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("FindByID", mock.Anything, user.ID).Return(nil, ErrUserNotFound)
		svc := NewService(repo, testConfig(), silentLogger)

		_, err := svc.Authenticate(context.Background(), user.ID.Hex())
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("malformed id never reaches the repository", func(t *testing.T) {
		repo := &MockUsersRepo{}
		svc := NewService(repo, testConfig(), silentLogger)

		_, err := svc.Authenticate(context.Background(), "not-a-hex-id")
		require.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertNotCalled(t, "FindByID")
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Run("defaults role and status", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Role == RoleUser &&
				u.Status == StatusActive &&
				u.Email == "new@office.example" &&
				u.PasswordHash != "Password123" &&
				u.CreatedAt.Equal(u.UpdatedAt)
		})).Return(nil)
		svc := NewService(repo, testConfig(), silentLogger)

		resp, err := svc.CreateUser(context.Background(), CreateUserRequest{
			Email:    " New@Office.Example ",
			Name:     "New Employee",
			Password: "Password123",
		})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NoError(t, crypto.CheckPassword("Password123", resp.User.PasswordHash))
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email surfaces as ErrDuplicate", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(ErrDuplicate)
		svc := NewService(repo, testConfig(), silentLogger)

		_, err := svc.CreateUser(context.Background(), CreateUserRequest{
			Email:    "dup@office.example",
			Name:     "Dup",
			Password: "Password123",
		})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("name is sanitized", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Eve"
		})).Return(nil)
		svc := NewService(repo, testConfig(), silentLogger)

		_, err := svc.CreateUser(context.Background(), CreateUserRequest{
			Email:    "eve@office.example",
			Name:     "<script>alert(1)</script>Eve",
			Password: "Password123",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateUser(t *testing.T) {
	id := bson.NewObjectID()
	updated := activeUser(t, "Password123")

	t.Run("password patch is re-hashed", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Update", mock.Anything, id, mock.MatchedBy(func(p UpdateUser) bool {
			if p.PasswordHash == nil || *p.PasswordHash == "NewPassword1" {
				return false
			}
			return crypto.CheckPassword("NewPassword1", *p.PasswordHash) == nil
		})).Return(updated, nil)
		svc := NewService(repo, testConfig(), silentLogger)

		newPass := "NewPassword1"
		resp, err := svc.UpdateUser(context.Background(), id, UpdateUserRequest{Password: &newPass})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("email patch is normalized", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Update", mock.Anything, id, mock.MatchedBy(func(p UpdateUser) bool {
			return p.Email != nil && *p.Email == "moved@office.example"
		})).Return(updated, nil)
		svc := NewService(repo, testConfig(), silentLogger)

		email := " Moved@Office.Example "
		_, err := svc.UpdateUser(context.Background(), id, UpdateUserRequest{Email: &email})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing user surfaces as ErrUserNotFound", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Update", mock.Anything, id, mock.Anything).Return(nil, ErrUserNotFound)
		svc := NewService(repo, testConfig(), silentLogger)

		_, err := svc.UpdateUser(context.Background(), id, UpdateUserRequest{})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_DeleteUser(t *testing.T) {
	id := bson.NewObjectID()

	t.Run("deletes existing user", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Delete", mock.Anything, id).Return(nil)
		svc := NewService(repo, testConfig(), silentLogger)

		require.NoError(t, svc.DeleteUser(context.Background(), id))
		repo.AssertExpectations(t)
	})

	t.Run("missing user surfaces as ErrUserNotFound", func(t *testing.T) {
		repo := &MockUsersRepo{}
		repo.On("Delete", mock.Anything, id).Return(ErrUserNotFound)
		svc := NewService(repo, testConfig(), silentLogger)

		require.ErrorIs(t, svc.DeleteUser(context.Background(), id), ErrUserNotFound)
	})
}

func TestService_ListUsers(t *testing.T) {
	repo := &MockUsersRepo{}
	users := []*User{activeUser(t, "Password123"), activeUser(t, "Password123")}
	repo.On("List", mock.Anything, 10, 10).Return(users, int64(12), nil)
	svc := NewService(repo, testConfig(), silentLogger)

	resp, err := svc.ListUsers(context.Background(), ListUsersRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, int64(12), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
	repo.AssertExpectations(t)
}
