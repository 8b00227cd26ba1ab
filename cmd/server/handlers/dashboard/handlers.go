package dashboard

import (
	"context"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/internal/services/dashboard"

	"github.com/gofiber/fiber/v2"
)

// DashboardService defines the interface for the dashboard reporter
type DashboardService interface {
	Snapshot(ctx context.Context, isAdmin bool) (*dashboard.SnapshotResponse, error)
	AdminStats(ctx context.Context) (*dashboard.AdminStatsResponse, error)
}

// Handlers contains the dashboard HTTP handlers
type Handlers struct {
	service DashboardService
}

// NewHandlers creates new dashboard handlers
func NewHandlers(service DashboardService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Snapshot returns the aggregated dashboard
// @Summary Dashboard snapshot
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dashboard.SnapshotResponse
// @Failure 401 {object} httperr.E
// @Router /dashboard [get]
func (h *Handlers) Snapshot(c *fiber.Ctx) error {
	user, err := handlerutil.CurrentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Snapshot(c.Context(), user.IsAdmin())
	if err != nil {
		return handlerutil.HandleServiceError(err, "Dashboard", dashboard.ErrUserNotFound)
	}

	return c.JSON(resp)
}

// AdminStats returns the user-management statistics block
// @Summary Admin statistics
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dashboard.AdminStatsResponse
// @Failure 403 {object} httperr.E
// @Router /admin/stats [get]
func (h *Handlers) AdminStats(c *fiber.Ctx) error {
	resp, err := h.service.AdminStats(c.Context())
	if err != nil {
		return handlerutil.HandleServiceError(err, "AdminStats", dashboard.ErrUserNotFound)
	}

	return c.JSON(resp)
}
