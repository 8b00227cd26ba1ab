package clients

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"taxtracker/internal/utils/pagination"
	"taxtracker/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrClientNotFound - client not found in DB
var ErrClientNotFound = errors.New("client not found")

// ErrNameRequired is returned when creating a client without a name
var ErrNameRequired = errors.New("name is required")

// Service handles client business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new clients service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// UpsertClientRequest inserts when ID is empty, otherwise patches the
// referenced record. Only the listed fields are ever written.
type UpsertClientRequest struct {
	ID            string     `json:"id" validate:"omitempty,len=24,hexadecimal" example:"683cdb8aa96ad71e8e075bd1"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1" example:"John Smith"`
	DOB           *time.Time `json:"dob,omitempty"`
	SIN           *string    `json:"sin,omitempty"`
	Telephone     *string    `json:"telephone,omitempty"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string    `json:"address,omitempty"`
	City          *string    `json:"city,omitempty"`
	Province      *string    `json:"province,omitempty"`
	MaritalStatus *string    `json:"maritalStatus,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	Status        *string    `json:"status,omitempty" example:"Active"`
}

// ListClientsRequest represents a paged client listing request
type ListClientsRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100" example:"10"`
}

// ClientResponse wraps a single client payload
type ClientResponse struct {
	Success bool    `json:"success" example:"true"`
	Client  *Client `json:"client"`
}

// ListClientsResponse represents a paged list of clients
type ListClientsResponse struct {
	Success    bool            `json:"success" example:"true"`
	Clients    []*Client       `json:"clients"`
	Pagination pagination.Page `json:"pagination"`
}

// Upsert inserts a new client when no id is supplied, or patches the
// existing one. lts is always refreshed; ts is immutable after creation.
func (s *Service) Upsert(ctx context.Context, req UpsertClientRequest) (*ClientResponse, error) {
	if req.ID == "" {
		return s.create(ctx, req)
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrClientNotFound
	}

	patch := UpdateClient{
		DOB:           req.DOB,
		SIN:           req.SIN,
		Telephone:     req.Telephone,
		Email:         req.Email,
		City:          req.City,
		Province:      req.Province,
		MaritalStatus: req.MaritalStatus,
		Gender:        req.Gender,
		Status:        req.Status,
	}
	if req.Name != nil {
		name := sanitize.Clean(*req.Name)
		patch.Name = &name
	}
	if req.Address != nil {
		addr := sanitize.Clean(*req.Address)
		patch.Address = &addr
	}

	client, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			s.log.Info("client not found for update", "client_id", id.Hex())
			return nil, ErrClientNotFound
		}
		s.log.Error("client update failed", "client_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update client")
	}

	return &ClientResponse{Success: true, Client: client}, nil
}

func (s *Service) create(ctx context.Context, req UpsertClientRequest) (*ClientResponse, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	client := &Client{
		ID:        bson.NewObjectID(),
		Name:      sanitize.Clean(*req.Name),
		DOB:       req.DOB,
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.SIN != nil {
		client.SIN = *req.SIN
	}
	if req.Telephone != nil {
		client.Telephone = *req.Telephone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = sanitize.Clean(*req.Address)
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.Province != nil {
		client.Province = *req.Province
	}
	if req.MaritalStatus != nil {
		client.MaritalStatus = *req.MaritalStatus
	}
	if req.Gender != nil {
		client.Gender = *req.Gender
	}
	if req.Status != nil && *req.Status != "" {
		client.Status = *req.Status
	}

	if err := s.repo.Create(ctx, client); err != nil {
		s.log.Error("client create failed", "error", err)
		return nil, errors.New("failed to create client")
	}

	return &ClientResponse{Success: true, Client: client}, nil
}

// Get returns a single client by id.
func (s *Service) Get(ctx context.Context, id bson.ObjectID) (*ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.log.Error("client lookup failed", "client_id", id.Hex(), "error", err)
		return nil, errors.New("failed to fetch client")
	}
	return &ClientResponse{Success: true, Client: client}, nil
}

// List returns a page of clients sorted by name.
func (s *Service) List(ctx context.Context, req ListClientsRequest) (*ListClientsResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	clientsList, total, err := s.repo.List(ctx, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("client list failed", "error", err)
		return nil, errors.New("failed to list clients")
	}

	return &ListClientsResponse{
		Success:    true,
		Clients:    clientsList,
		Pagination: pagination.Build(page, limit, total),
	}, nil
}
