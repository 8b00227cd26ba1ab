package users

import (
	"context"
	"errors"
	"time"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/logger"
	"taxtracker/internal/services/auth"
	"taxtracker/internal/services/dashboard"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UsersService defines the interface for staff account management
type UsersService interface {
	GetUser(ctx context.Context, id bson.ObjectID) (*auth.UserResponse, error)
	CreateUser(ctx context.Context, req auth.CreateUserRequest) (*auth.UserResponse, error)
	UpdateUser(ctx context.Context, id bson.ObjectID, req auth.UpdateUserRequest) (*auth.UserResponse, error)
	DeleteUser(ctx context.Context, id bson.ObjectID) error
	ListUsers(ctx context.Context, req auth.ListUsersRequest) (*auth.ListUsersResponse, error)
}

// WorkloadService builds the per-user workload report
type WorkloadService interface {
	Workload(ctx context.Context, req dashboard.WorkloadRequest) (*dashboard.WorkloadResponse, error)
}

// Handlers contains the staff management HTTP handlers
type Handlers struct {
	users     UsersService
	workloads WorkloadService
	validator *validator.Validate
}

// NewHandlers creates new users handlers
func NewHandlers(users UsersService, workloads WorkloadService, validator *validator.Validate) *Handlers {
	return &Handlers{
		users:     users,
		workloads: workloads,
		validator: validator,
	}
}

// List returns a page of staff accounts
// @Summary List users
// @Tags users
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} auth.ListUsersResponse
// @Failure 403 {object} httperr.E
// @Router /users [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	var req auth.ListUsersRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListUsers"); err != nil {
		return err
	}

	resp, err := h.users.ListUsers(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListUsers", auth.ErrUserNotFound)
	}

	return c.JSON(resp)
}

// Create registers a new staff account
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body auth.CreateUserRequest true "Create user request"
// @Success 201 {object} auth.UserResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Router /users [post]
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req auth.CreateUserRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "CreateUser"); err != nil {
		return err
	}

	resp, err := h.users.CreateUser(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
		}
		return handlerutil.HandleServiceError(err, "CreateUser", auth.ErrUserNotFound)
	}

	return c.Status(201).JSON(resp)
}

// Get returns a single staff account
// @Summary Get user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} auth.UserResponse
// @Failure 404 {object} httperr.E
// @Router /users/{id} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetUser", auth.ErrUserNotFound)
	if err != nil {
		return err
	}

	resp, err := h.users.GetUser(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetUser", auth.ErrUserNotFound)
	}

	return c.JSON(resp)
}

// Update patches a staff account
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param request body auth.UpdateUserRequest true "Update user request"
// @Success 200 {object} auth.UserResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /users/{id} [put]
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "UpdateUser", auth.ErrUserNotFound)
	if err != nil {
		return err
	}

	var req auth.UpdateUserRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateUser"); err != nil {
		return err
	}

	resp, err := h.users.UpdateUser(c.Context(), id, req)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
		}
		return handlerutil.HandleServiceError(err, "UpdateUser", auth.ErrUserNotFound)
	}

	return c.JSON(resp)
}

// Delete removes a staff account
// @Summary Delete user
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} httperr.E
// @Router /users/{id} [delete]
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "DeleteUser", auth.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(c.Context(), id); err != nil {
		return handlerutil.HandleServiceError(err, "DeleteUser", auth.ErrUserNotFound)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

// Workload reports every task assigned to one staff member
// @Summary Per-user workload report
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dashboard.WorkloadResponse
// @Failure 404 {object} httperr.E
// @Router /users/{id}/workload [get]
func (h *Handlers) Workload(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "UserWorkload", dashboard.ErrUserNotFound)
	if err != nil {
		return err
	}

	req := dashboard.WorkloadRequest{UserID: id.Hex()}
	if v := c.Query("startDate"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			logger.L().Warn("invalid startDate", "handler", "UserWorkload", "value", v)
			return httperr.Fail(httperr.ErrBadRequest)
		}
		req.StartDate = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			logger.L().Warn("invalid endDate", "handler", "UserWorkload", "value", v)
			return httperr.Fail(httperr.ErrBadRequest)
		}
		req.EndDate = &end
	}

	resp, err := h.workloads.Workload(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "UserWorkload", dashboard.ErrUserNotFound)
	}

	return c.JSON(resp)
}
