package middlewares

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"taxtracker/cmd/server/testutil"
	"taxtracker/internal/config"
	"taxtracker/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testJWTSecret = "test-secret-with-32-plus-characters"

// MockAuthenticator mocks the token-to-user resolution step
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, userIDHex string) (*auth.User, error) {
	args := m.Called(ctx, userIDHex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func testUser(role string) *auth.User {
	now := time.Now().UTC()
	return &auth.User{
		ID:        bson.NewObjectID(),
		Email:     "jane@office.example",
		Name:      "Jane",
		Role:      role,
		Status:    auth.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func setupJWTApp(t *testing.T, authSvc *MockAuthenticator) *fiber.App {
	t.Helper()

	app := testutil.CreateTestApp(t)
	cfg := config.Config{JWTSecret: testJWTSecret}

	app.Get("/protected", JWT(cfg, authSvc), func(c *fiber.Ctx) error {
		user := c.Locals("authUser").(*auth.User)
		return c.JSON(fiber.Map{"uid": c.Locals("userID"), "email": user.Email})
	})

	return app
}

func TestJWTMiddleware(t *testing.T) {
	t.Run("valid token resolves to fresh user record", func(t *testing.T) {
		user := testUser(auth.RoleUser)
		authSvc := &MockAuthenticator{}
		authSvc.On("Authenticate", mock.Anything, user.ID.Hex()).Return(user, nil).Once()
		app := setupJWTApp(t, authSvc)

		token, err := testutil.CreateTestJWT(user.ID.Hex(), []byte(testJWTSecret), time.Hour)
		require.NoError(t, err)

		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/protected", nil, token), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, user.ID.Hex(), got["uid"])
		assert.Equal(t, user.Email, got["email"])
		authSvc.AssertExpectations(t)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		app := setupJWTApp(t, &MockAuthenticator{})

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/protected", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		app := setupJWTApp(t, &MockAuthenticator{})

		token, err := testutil.CreateTestJWT(bson.NewObjectID().Hex(), []byte("some-other-secret-32-plus-characters"), time.Hour)
		require.NoError(t, err)

		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/protected", nil, token), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		app := setupJWTApp(t, &MockAuthenticator{})

		token, err := testutil.CreateTestJWT(bson.NewObjectID().Hex(), []byte(testJWTSecret), -time.Hour)
		require.NoError(t, err)

		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/protected", nil, token), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("verified token without user_id claim is rejected", func(t *testing.T) {
		authSvc := &MockAuthenticator{}
		app := setupJWTApp(t, authSvc)

		now := time.Now().UTC()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
		}).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/protected", nil, token), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
		authSvc.AssertNotCalled(t, "Authenticate")
	})

	t.Run("deleted user cannot ride a stale token", func(t *testing.T) {
		id := bson.NewObjectID()
		authSvc := &MockAuthenticator{}
		authSvc.On("Authenticate", mock.Anything, id.Hex()).Return(nil, auth.ErrUserNotFound).Once()
		app := setupJWTApp(t, authSvc)

		token, err := testutil.CreateTestJWT(id.Hex(), []byte(testJWTSecret), time.Hour)
		require.NoError(t, err)

		resp, err := app.Test(testutil.CreateAuthenticatedRequest("GET", "/protected", nil, token), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
		authSvc.AssertExpectations(t)
	})
}

func TestRequireAdmin(t *testing.T) {
	okHandler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	}

	t.Run("admin passes", func(t *testing.T) {
		app := testutil.CreateTestApp(t)
		app.Get("/admin", testutil.WithUser(testUser(auth.RoleAdmin)), RequireAdmin, okHandler)

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/admin", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		app := testutil.CreateTestApp(t)
		app.Get("/admin", testutil.WithUser(testUser(auth.RoleUser)), RequireAdmin, okHandler)

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/admin", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, false, got["success"])
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		app := testutil.CreateTestApp(t)
		app.Get("/admin", RequireAdmin, okHandler)

		resp, err := app.Test(testutil.CreateJSONRequest("GET", "/admin", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
