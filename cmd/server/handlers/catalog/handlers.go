package catalog

import (
	"context"
	"errors"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/services/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CatalogService defines the interface for price list management
type CatalogService interface {
	UpsertPersonalTaxService(ctx context.Context, req catalog.UpsertPersonalTaxServiceRequest) (*catalog.PersonalTaxServiceResponse, error)
	ListPersonalTaxServices(ctx context.Context) (*catalog.ListPersonalTaxServicesResponse, error)
	DeletePersonalTaxService(ctx context.Context, id bson.ObjectID) (*catalog.DeleteServiceResponse, error)

	UpsertPayrollService(ctx context.Context, req catalog.UpsertPayrollServiceRequest) (*catalog.PayrollServiceResponse, error)
	ListPayrollServices(ctx context.Context) (*catalog.ListPayrollServicesResponse, error)
	DeletePayrollService(ctx context.Context, id bson.ObjectID) (*catalog.DeleteServiceResponse, error)
}

// Handlers contains the price list HTTP handlers
type Handlers struct {
	service   CatalogService
	validator *validator.Validate
}

// NewHandlers creates new price list handlers
func NewHandlers(service CatalogService, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

func upsertError(err error) error {
	if errors.Is(err, catalog.ErrNameRequired) || errors.Is(err, catalog.ErrBadPrice) {
		return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
	}
	return nil
}

// ListPersonalTaxServices returns the personal tax price list
// @Summary List personal tax services
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} catalog.ListPersonalTaxServicesResponse
// @Router /personal-tax-services [get]
func (h *Handlers) ListPersonalTaxServices(c *fiber.Ctx) error {
	resp, err := h.service.ListPersonalTaxServices(c.Context())
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListPersonalTaxServices", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}

// UpsertPersonalTaxService inserts or replaces a price list entry
// @Summary Create or update a personal tax service
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body catalog.UpsertPersonalTaxServiceRequest true "Service payload"
// @Success 200 {object} catalog.PersonalTaxServiceResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /personal-tax-services/upsert [post]
func (h *Handlers) UpsertPersonalTaxService(c *fiber.Ctx) error {
	var req catalog.UpsertPersonalTaxServiceRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertPersonalTaxService"); err != nil {
		return err
	}

	resp, err := h.service.UpsertPersonalTaxService(c.Context(), req)
	if err != nil {
		if e := upsertError(err); e != nil {
			return e
		}
		return handlerutil.HandleServiceError(err, "UpsertPersonalTaxService", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}

// DeletePersonalTaxService removes a price list entry
// @Summary Delete personal tax service
// @Tags catalog
// @Produce json
// @Security Bearer
// @Param id path string true "Service ID"
// @Success 200 {object} catalog.DeleteServiceResponse
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /personal-tax-services/{id} [delete]
func (h *Handlers) DeletePersonalTaxService(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "DeletePersonalTaxService", catalog.ErrServiceNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.DeletePersonalTaxService(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "DeletePersonalTaxService", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}

// ListPayrollServices returns the payroll price list
// @Summary List payroll services
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} catalog.ListPayrollServicesResponse
// @Router /payroll-services [get]
func (h *Handlers) ListPayrollServices(c *fiber.Ctx) error {
	resp, err := h.service.ListPayrollServices(c.Context())
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListPayrollServices", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}

// UpsertPayrollService inserts or replaces a price list entry
// @Summary Create or update a payroll service
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body catalog.UpsertPayrollServiceRequest true "Service payload"
// @Success 200 {object} catalog.PayrollServiceResponse
// @Failure 400 {object} httperr.E
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /payroll-services/upsert [post]
func (h *Handlers) UpsertPayrollService(c *fiber.Ctx) error {
	var req catalog.UpsertPayrollServiceRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertPayrollService"); err != nil {
		return err
	}

	resp, err := h.service.UpsertPayrollService(c.Context(), req)
	if err != nil {
		if e := upsertError(err); e != nil {
			return e
		}
		return handlerutil.HandleServiceError(err, "UpsertPayrollService", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}

// DeletePayrollService removes a price list entry
// @Summary Delete payroll service
// @Tags catalog
// @Produce json
// @Security Bearer
// @Param id path string true "Service ID"
// @Success 200 {object} catalog.DeleteServiceResponse
// @Failure 403 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /payroll-services/{id} [delete]
func (h *Handlers) DeletePayrollService(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "DeletePayrollService", catalog.ErrServiceNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.DeletePayrollService(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "DeletePayrollService", catalog.ErrServiceNotFound)
	}

	return c.JSON(resp)
}
