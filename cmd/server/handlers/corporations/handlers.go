package corporations

import (
	"context"
	"errors"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/services/corporations"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CorporationsService defines the interface for corporation record management
type CorporationsService interface {
	Upsert(ctx context.Context, req corporations.UpsertCorporationRequest) (*corporations.CorporationResponse, error)
	Get(ctx context.Context, id bson.ObjectID) (*corporations.CorporationResponse, error)
	List(ctx context.Context, req corporations.ListCorporationsRequest) (*corporations.ListCorporationsResponse, error)
}

// Handlers contains the corporation HTTP handlers
type Handlers struct {
	service   CorporationsService
	validator *validator.Validate
}

// NewHandlers creates new corporation handlers
func NewHandlers(service CorporationsService, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// List returns a page of corporations sorted by name
// @Summary List corporations
// @Tags corporations
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param clientId query string false "Filter by owning client"
// @Success 200 {object} corporations.ListCorporationsResponse
// @Failure 401 {object} httperr.E
// @Router /corporations [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	var req corporations.ListCorporationsRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListCorporations"); err != nil {
		return err
	}

	resp, err := h.service.List(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListCorporations", corporations.ErrCorporationNotFound)
	}

	return c.JSON(resp)
}

// Upsert inserts a corporation when no id is supplied, or patches the
// referenced record
// @Summary Create or update a corporation
// @Tags corporations
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body corporations.UpsertCorporationRequest true "Corporation payload"
// @Success 200 {object} corporations.CorporationResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /corporations/upsert [post]
func (h *Handlers) Upsert(c *fiber.Ctx) error {
	var req corporations.UpsertCorporationRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertCorporation"); err != nil {
		return err
	}

	resp, err := h.service.Upsert(c.Context(), req)
	if err != nil {
		if errors.Is(err, corporations.ErrNameRequired) {
			return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
		}
		return handlerutil.HandleServiceError(err, "UpsertCorporation", corporations.ErrCorporationNotFound)
	}

	return c.JSON(resp)
}

// Get returns a single corporation
// @Summary Get corporation
// @Tags corporations
// @Produce json
// @Security Bearer
// @Param id path string true "Corporation ID"
// @Success 200 {object} corporations.CorporationResponse
// @Failure 404 {object} httperr.E
// @Router /corporations/{id} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetCorporation", corporations.ErrCorporationNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetCorporation", corporations.ErrCorporationNotFound)
	}

	return c.JSON(resp)
}
