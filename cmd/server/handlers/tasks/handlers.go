package tasks

import (
	"context"
	"errors"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/services/tasks"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TasksService defines the interface covering the three task boards
type TasksService interface {
	UpsertPersonalTax(ctx context.Context, req tasks.UpsertPersonalTaxRequest) (*tasks.PersonalTaxResponse, error)
	GetPersonalTax(ctx context.Context, id bson.ObjectID) (*tasks.PersonalTaxResponse, error)
	ListPersonalTax(ctx context.Context, req tasks.ListPersonalTaxRequest) (*tasks.ListPersonalTaxResponse, error)

	UpsertCorporationTax(ctx context.Context, req tasks.UpsertCorporationTaxRequest) (*tasks.CorporationTaxResponse, error)
	GetCorporationTax(ctx context.Context, id bson.ObjectID) (*tasks.CorporationTaxResponse, error)
	ListCorporationTax(ctx context.Context, req tasks.ListCorporationTaxRequest) (*tasks.ListCorporationTaxResponse, error)

	UpsertPayroll(ctx context.Context, req tasks.UpsertPayrollRequest) (*tasks.PayrollResponse, error)
	GetPayroll(ctx context.Context, id bson.ObjectID) (*tasks.PayrollResponse, error)
	ListPayroll(ctx context.Context, req tasks.ListPayrollRequest) (*tasks.ListPayrollResponse, error)
}

// Handlers contains the task HTTP handlers
type Handlers struct {
	service   TasksService
	validator *validator.Validate
}

// NewHandlers creates new task handlers
func NewHandlers(service TasksService, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

func upsertError(err error) error {
	if errors.Is(err, tasks.ErrClientIDRequired) || errors.Is(err, tasks.ErrCorpIDRequired) {
		return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
	}
	return nil
}

// ListPersonalTax returns a page of personal tax tasks
// @Summary List personal tax tasks
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param clientId query string false "Filter by client"
// @Success 200 {object} tasks.ListPersonalTaxResponse
// @Router /personal-tax [get]
func (h *Handlers) ListPersonalTax(c *fiber.Ctx) error {
	var req tasks.ListPersonalTaxRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListPersonalTax"); err != nil {
		return err
	}

	resp, err := h.service.ListPersonalTax(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListPersonalTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// UpsertPersonalTax inserts or patches a personal tax task
// @Summary Create or update a personal tax task
// @Tags tasks
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body tasks.UpsertPersonalTaxRequest true "Task payload"
// @Success 200 {object} tasks.PersonalTaxResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /personal-tax/upsert [post]
func (h *Handlers) UpsertPersonalTax(c *fiber.Ctx) error {
	var req tasks.UpsertPersonalTaxRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertPersonalTax"); err != nil {
		return err
	}

	resp, err := h.service.UpsertPersonalTax(c.Context(), req)
	if err != nil {
		if e := upsertError(err); e != nil {
			return e
		}
		return handlerutil.HandleServiceError(err, "UpsertPersonalTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// GetPersonalTax returns a single personal tax task
// @Summary Get personal tax task
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param id path string true "Task ID"
// @Success 200 {object} tasks.PersonalTaxResponse
// @Failure 404 {object} httperr.E
// @Router /personal-tax/{id} [get]
func (h *Handlers) GetPersonalTax(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetPersonalTax", tasks.ErrTaskNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.GetPersonalTax(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetPersonalTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// ListCorporationTax returns a page of corporate tax tasks
// @Summary List corporate tax tasks
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param corpId query string false "Filter by corporation"
// @Success 200 {object} tasks.ListCorporationTaxResponse
// @Router /corporation-tax [get]
func (h *Handlers) ListCorporationTax(c *fiber.Ctx) error {
	var req tasks.ListCorporationTaxRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListCorporationTax"); err != nil {
		return err
	}

	resp, err := h.service.ListCorporationTax(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListCorporationTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// UpsertCorporationTax inserts or patches a corporate tax task
// @Summary Create or update a corporate tax task
// @Tags tasks
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body tasks.UpsertCorporationTaxRequest true "Task payload"
// @Success 200 {object} tasks.CorporationTaxResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /corporation-tax/upsert [post]
func (h *Handlers) UpsertCorporationTax(c *fiber.Ctx) error {
	var req tasks.UpsertCorporationTaxRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertCorporationTax"); err != nil {
		return err
	}

	resp, err := h.service.UpsertCorporationTax(c.Context(), req)
	if err != nil {
		if e := upsertError(err); e != nil {
			return e
		}
		return handlerutil.HandleServiceError(err, "UpsertCorporationTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// GetCorporationTax returns a single corporate tax task
// @Summary Get corporate tax task
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param id path string true "Task ID"
// @Success 200 {object} tasks.CorporationTaxResponse
// @Failure 404 {object} httperr.E
// @Router /corporation-tax/{id} [get]
func (h *Handlers) GetCorporationTax(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetCorporationTax", tasks.ErrTaskNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.GetCorporationTax(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetCorporationTax", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// ListPayroll returns a page of payroll records
// @Summary List payroll records
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param corpId query string false "Filter by corporation"
// @Param year query int false "Filter by year"
// @Success 200 {object} tasks.ListPayrollResponse
// @Router /corporation-payroll [get]
func (h *Handlers) ListPayroll(c *fiber.Ctx) error {
	var req tasks.ListPayrollRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListPayroll"); err != nil {
		return err
	}

	resp, err := h.service.ListPayroll(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListPayroll", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// UpsertPayroll inserts or patches a payroll record
// @Summary Create or update a payroll record
// @Tags tasks
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body tasks.UpsertPayrollRequest true "Payroll payload"
// @Success 200 {object} tasks.PayrollResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /corporation-payroll/upsert [post]
func (h *Handlers) UpsertPayroll(c *fiber.Ctx) error {
	var req tasks.UpsertPayrollRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertPayroll"); err != nil {
		return err
	}

	resp, err := h.service.UpsertPayroll(c.Context(), req)
	if err != nil {
		if e := upsertError(err); e != nil {
			return e
		}
		return handlerutil.HandleServiceError(err, "UpsertPayroll", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}

// GetPayroll returns a single payroll record
// @Summary Get payroll record
// @Tags tasks
// @Produce json
// @Security Bearer
// @Param id path string true "Record ID"
// @Success 200 {object} tasks.PayrollResponse
// @Failure 404 {object} httperr.E
// @Router /corporation-payroll/{id} [get]
func (h *Handlers) GetPayroll(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetPayroll", tasks.ErrTaskNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.GetPayroll(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetPayroll", tasks.ErrTaskNotFound)
	}

	return c.JSON(resp)
}
