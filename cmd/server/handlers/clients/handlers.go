package clients

import (
	"context"
	"errors"

	"taxtracker/cmd/server/handlers/handlerutil"
	"taxtracker/cmd/server/handlers/httperr"
	"taxtracker/internal/services/clients"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ClientsService defines the interface for client record management
type ClientsService interface {
	Upsert(ctx context.Context, req clients.UpsertClientRequest) (*clients.ClientResponse, error)
	Get(ctx context.Context, id bson.ObjectID) (*clients.ClientResponse, error)
	List(ctx context.Context, req clients.ListClientsRequest) (*clients.ListClientsResponse, error)
}

// Handlers contains the client HTTP handlers
type Handlers struct {
	service   ClientsService
	validator *validator.Validate
}

// NewHandlers creates new client handlers
func NewHandlers(service ClientsService, validator *validator.Validate) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// List returns a page of clients sorted by name
// @Summary List clients
// @Tags clients
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} clients.ListClientsResponse
// @Failure 401 {object} httperr.E
// @Router /clients [get]
func (h *Handlers) List(c *fiber.Ctx) error {
	var req clients.ListClientsRequest
	if err := handlerutil.ParseAndValidateQuery(c, &req, h.validator, "ListClients"); err != nil {
		return err
	}

	resp, err := h.service.List(c.Context(), req)
	if err != nil {
		return handlerutil.HandleServiceError(err, "ListClients", clients.ErrClientNotFound)
	}

	return c.JSON(resp)
}

// Upsert inserts a client when no id is supplied, or patches the
// referenced record
// @Summary Create or update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body clients.UpsertClientRequest true "Client payload"
// @Success 200 {object} clients.ClientResponse
// @Failure 400 {object} httperr.E
// @Failure 404 {object} httperr.E
// @Router /clients/upsert [post]
func (h *Handlers) Upsert(c *fiber.Ctx) error {
	var req clients.UpsertClientRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpsertClient"); err != nil {
		return err
	}

	resp, err := h.service.Upsert(c.Context(), req)
	if err != nil {
		if errors.Is(err, clients.ErrNameRequired) {
			return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
		}
		return handlerutil.HandleServiceError(err, "UpsertClient", clients.ErrClientNotFound)
	}

	return c.JSON(resp)
}

// Get returns a single client
// @Summary Get client
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path string true "Client ID"
// @Success 200 {object} clients.ClientResponse
// @Failure 404 {object} httperr.E
// @Router /clients/{id} [get]
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := handlerutil.ExtractID(c, "GetClient", clients.ErrClientNotFound)
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), id)
	if err != nil {
		return handlerutil.HandleServiceError(err, "GetClient", clients.ErrClientNotFound)
	}

	return c.JSON(resp)
}
