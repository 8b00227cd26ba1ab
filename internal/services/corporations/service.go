package corporations

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"taxtracker/internal/utils/pagination"
	"taxtracker/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrCorporationNotFound - corporation not found in DB
var ErrCorporationNotFound = errors.New("corporation not found")

// ErrNameRequired is returned when creating a corporation without a name
var ErrNameRequired = errors.New("name is required")

// Service handles corporation business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new corporations service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// UpsertCorporationRequest inserts when ID is empty, otherwise patches
// the referenced record.
type UpsertCorporationRequest struct {
	ID             string  `json:"id" validate:"omitempty,len=24,hexadecimal"`
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1" example:"Maple Leaf Consulting Inc."`
	ClientID       *string `json:"clientId,omitempty"`
	BusinessNumber *string `json:"businessNumber,omitempty"`
	YearEnd        *string `json:"yearEnd,omitempty"`
	Telephone      *string `json:"telephone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string `json:"address,omitempty"`
	Status         *string `json:"status,omitempty"`
}

// ListCorporationsRequest represents a paged corporation listing request
type ListCorporationsRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1" example:"1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100" example:"10"`
	ClientID string `query:"clientId" validate:"omitempty,len=24,hexadecimal"`
}

// CorporationResponse wraps a single corporation payload
type CorporationResponse struct {
	Success     bool         `json:"success" example:"true"`
	Corporation *Corporation `json:"corporation"`
}

// ListCorporationsResponse represents a paged list of corporations
type ListCorporationsResponse struct {
	Success      bool            `json:"success" example:"true"`
	Corporations []*Corporation  `json:"corporations"`
	Pagination   pagination.Page `json:"pagination"`
}

// Upsert inserts a new corporation when no id is supplied, or patches
// the existing one. lts is always refreshed; ts is immutable.
func (s *Service) Upsert(ctx context.Context, req UpsertCorporationRequest) (*CorporationResponse, error) {
	if req.ID == "" {
		return s.create(ctx, req)
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrCorporationNotFound
	}

	patch := UpdateCorporation{
		ClientID:       req.ClientID,
		BusinessNumber: req.BusinessNumber,
		YearEnd:        req.YearEnd,
		Telephone:      req.Telephone,
		Email:          req.Email,
		Status:         req.Status,
	}
	if req.Name != nil {
		name := sanitize.Clean(*req.Name)
		patch.Name = &name
	}
	if req.Address != nil {
		addr := sanitize.Clean(*req.Address)
		patch.Address = &addr
	}

	corp, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrCorporationNotFound) {
			s.log.Info("corporation not found for update", "corp_id", id.Hex())
			return nil, ErrCorporationNotFound
		}
		s.log.Error("corporation update failed", "corp_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update corporation")
	}

	return &CorporationResponse{Success: true, Corporation: corp}, nil
}

func (s *Service) create(ctx context.Context, req UpsertCorporationRequest) (*CorporationResponse, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	corp := &Corporation{
		ID:        bson.NewObjectID(),
		Name:      sanitize.Clean(*req.Name),
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ClientID != nil {
		corp.ClientID = *req.ClientID
	}
	if req.BusinessNumber != nil {
		corp.BusinessNumber = *req.BusinessNumber
	}
	if req.YearEnd != nil {
		corp.YearEnd = *req.YearEnd
	}
	if req.Telephone != nil {
		corp.Telephone = *req.Telephone
	}
	if req.Email != nil {
		corp.Email = *req.Email
	}
	if req.Address != nil {
		corp.Address = sanitize.Clean(*req.Address)
	}
	if req.Status != nil && *req.Status != "" {
		corp.Status = *req.Status
	}

	if err := s.repo.Create(ctx, corp); err != nil {
		s.log.Error("corporation create failed", "error", err)
		return nil, errors.New("failed to create corporation")
	}

	return &CorporationResponse{Success: true, Corporation: corp}, nil
}

// Get returns a single corporation by id.
func (s *Service) Get(ctx context.Context, id bson.ObjectID) (*CorporationResponse, error) {
	corp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCorporationNotFound) {
			return nil, ErrCorporationNotFound
		}
		s.log.Error("corporation lookup failed", "corp_id", id.Hex(), "error", err)
		return nil, errors.New("failed to fetch corporation")
	}
	return &CorporationResponse{Success: true, Corporation: corp}, nil
}

// List returns a page of corporations sorted by name, optionally
// filtered by owning client.
func (s *Service) List(ctx context.Context, req ListCorporationsRequest) (*ListCorporationsResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	corps, total, err := s.repo.List(ctx, req.ClientID, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("corporation list failed", "error", err)
		return nil, errors.New("failed to list corporations")
	}

	return &ListCorporationsResponse{
		Success:      true,
		Corporations: corps,
		Pagination:   pagination.Build(page, limit, total),
	}, nil
}
