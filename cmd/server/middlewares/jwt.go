package middlewares

import (
	"context"

	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/config"
	"taxtracker/internal/logger"
	"taxtracker/internal/services/auth"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator resolves a verified token's user_id claim to the
// current user record.
type Authenticator interface {
	Authenticate(ctx context.Context, userIDHex string) (*auth.User, error)
}

// JWT returns a configured Fiber middleware that:
//
//   - validates the Bearer token signature using cfg.JWTSecret
//   - resolves the "user_id" claim against the users collection, so a
//     deleted user or a demoted admin can never ride on a stale token
//   - stores the fresh record in ctx.Locals("authUser") and the id in
//     ctx.Locals("userID") so downstream handlers can trust them.
//
// On any problem it bubbles up a 401 via the global httperr handler.
func JWT(cfg config.Config, authSvc Authenticator) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			// Token signature already verified at this point.
			token := c.Locals("user").(*jwt.Token)
			claims, _ := token.Claims.(jwt.MapClaims)

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				logger.L().Warn("token rejected", "path", c.Path(), "error", auth.ErrInvalidTokenMissingUserID)
				return httperr.Fail(httperr.ErrInvalidToken)
			}

			user, err := authSvc.Authenticate(c.Context(), userID)
			if err != nil {
				return httperr.Fail(httperr.ErrInvalidToken)
			}

			c.Locals("authUser", user)
			c.Locals("userID", user.ID.Hex())
			return c.Next()
		},

		// Override the default "unauthorized" JSON to match the project style
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return httperr.Fail(httperr.ErrInvalidToken)
		},
	})
}

// RequireAdmin gates a route on the admin role. It must run after JWT,
// which guarantees a fresh user record in the context.
func RequireAdmin(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*auth.User)
	if !ok || user == nil {
		return httperr.Fail(httperr.ErrUnauthorized)
	}
	if !user.IsAdmin() {
		return httperr.Fail(httperr.ErrForbidden)
	}
	return c.Next()
}
