package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"taxtracker/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sentinel errors for the price list catalog.
var (
	ErrServiceNotFound = errors.New("service not found")
	ErrNameRequired    = errors.New("name is required")
	ErrBadPrice        = errors.New("price must be a number")
)

// Service manages the two office price lists.
type Service struct {
	personal PersonalTaxServicesRepo
	payroll  PayrollServicesRepo
	log      *slog.Logger
}

// NewService creates a new catalog service
func NewService(personal PersonalTaxServicesRepo, payroll PayrollServicesRepo, log *slog.Logger) *Service {
	return &Service{
		personal: personal,
		payroll:  payroll,
		log:      log,
	}
}

// UpsertPersonalTaxServiceRequest inserts when ID is empty, otherwise
// replaces the referenced entry. Price arrives as a string from legacy
// form clients, so it is parsed here.
type UpsertPersonalTaxServiceRequest struct {
	ID          string `json:"id" validate:"omitempty,len=24,hexadecimal"`
	Name        string `json:"name" validate:"required,min=1" example:"T1 Basic Return"`
	Price       string `json:"price" validate:"required" example:"80"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

// UpsertPayrollServiceRequest inserts when ID is empty, otherwise
// replaces the referenced entry.
type UpsertPayrollServiceRequest struct {
	ID    string  `json:"id" validate:"omitempty,len=24,hexadecimal"`
	Name  string  `json:"name" validate:"required,min=1" example:"Monthly Payroll (1-5 employees)"`
	Price float64 `json:"price" validate:"min=0" example:"60"`
}

// PersonalTaxServiceResponse wraps a single price list entry
type PersonalTaxServiceResponse struct {
	Success bool                `json:"success" example:"true"`
	Service *PersonalTaxService `json:"service"`
}

// PayrollServiceResponse wraps a single price list entry
type PayrollServiceResponse struct {
	Success bool            `json:"success" example:"true"`
	Service *PayrollService `json:"service"`
}

// ListPersonalTaxServicesResponse lists the personal tax price list,
// sorted by name.
type ListPersonalTaxServicesResponse struct {
	Success  bool                  `json:"success" example:"true"`
	Services []*PersonalTaxService `json:"services"`
}

// ListPayrollServicesResponse lists the payroll price list, sorted by
// name.
type ListPayrollServicesResponse struct {
	Success  bool              `json:"success" example:"true"`
	Services []*PayrollService `json:"services"`
}

// DeleteServiceResponse acknowledges a deletion
type DeleteServiceResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Service deleted successfully"`
}

// UpsertPersonalTaxService inserts or fully replaces a personal tax
// price list entry. Missing optional fields fall back to defaults, the
// way the office always entered them.
func (s *Service) UpsertPersonalTaxService(ctx context.Context, req UpsertPersonalTaxServiceRequest) (*PersonalTaxServiceResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil {
		return nil, ErrBadPrice
	}

	set := SetPersonalTaxService{
		Name:        sanitize.Clean(req.Name),
		Price:       price,
		Description: sanitize.Clean(req.Description),
		Category:    req.Category,
		Status:      req.Status,
	}
	if set.Category == "" {
		set.Category = "forms"
	}
	if set.Status == "" {
		set.Status = "Active"
	}

	if req.ID == "" {
		now := time.Now()
		entry := &PersonalTaxService{
			ID:          bson.NewObjectID(),
			Name:        set.Name,
			Price:       set.Price,
			Description: set.Description,
			Category:    set.Category,
			Status:      set.Status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.personal.Create(ctx, entry); err != nil {
			s.log.Error("personal tax service create failed", "error", err)
			return nil, errors.New("failed to save personal tax service")
		}
		return &PersonalTaxServiceResponse{Success: true, Service: entry}, nil
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	entry, err := s.personal.Replace(ctx, id, set)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.log.Error("personal tax service replace failed", "service_id", id.Hex(), "error", err)
		return nil, errors.New("failed to save personal tax service")
	}
	return &PersonalTaxServiceResponse{Success: true, Service: entry}, nil
}

// ListPersonalTaxServices returns the whole personal tax price list,
// name ascending.
func (s *Service) ListPersonalTaxServices(ctx context.Context) (*ListPersonalTaxServicesResponse, error) {
	entries, err := s.personal.List(ctx)
	if err != nil {
		s.log.Error("personal tax service list failed", "error", err)
		return nil, errors.New("failed to fetch personal tax services")
	}
	return &ListPersonalTaxServicesResponse{Success: true, Services: entries}, nil
}

// DeletePersonalTaxService removes a personal tax price list entry.
func (s *Service) DeletePersonalTaxService(ctx context.Context, id bson.ObjectID) (*DeleteServiceResponse, error) {
	if err := s.personal.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.log.Error("personal tax service delete failed", "service_id", id.Hex(), "error", err)
		return nil, errors.New("failed to delete personal tax service")
	}
	return &DeleteServiceResponse{Success: true, Message: "Service deleted successfully"}, nil
}

// UpsertPayrollService inserts or fully replaces a payroll price list
// entry.
func (s *Service) UpsertPayrollService(ctx context.Context, req UpsertPayrollServiceRequest) (*PayrollServiceResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	set := SetPayrollService{
		Name:  sanitize.Clean(req.Name),
		Price: req.Price,
	}

	if req.ID == "" {
		now := time.Now()
		entry := &PayrollService{
			ID:        bson.NewObjectID(),
			Name:      set.Name,
			Price:     set.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.payroll.Create(ctx, entry); err != nil {
			s.log.Error("payroll service create failed", "error", err)
			return nil, errors.New("failed to save payroll service")
		}
		return &PayrollServiceResponse{Success: true, Service: entry}, nil
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	entry, err := s.payroll.Replace(ctx, id, set)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.log.Error("payroll service replace failed", "service_id", id.Hex(), "error", err)
		return nil, errors.New("failed to save payroll service")
	}
	return &PayrollServiceResponse{Success: true, Service: entry}, nil
}

// ListPayrollServices returns the whole payroll price list, name
// ascending.
func (s *Service) ListPayrollServices(ctx context.Context) (*ListPayrollServicesResponse, error) {
	entries, err := s.payroll.List(ctx)
	if err != nil {
		s.log.Error("payroll service list failed", "error", err)
		return nil, errors.New("failed to fetch payroll services")
	}
	return &ListPayrollServicesResponse{Success: true, Services: entries}, nil
}

// DeletePayrollService removes a payroll price list entry.
func (s *Service) DeletePayrollService(ctx context.Context, id bson.ObjectID) (*DeleteServiceResponse, error) {
	if err := s.payroll.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.log.Error("payroll service delete failed", "service_id", id.Hex(), "error", err)
		return nil, errors.New("failed to delete payroll service")
	}
	return &DeleteServiceResponse{Success: true, Message: "Payroll service deleted successfully"}, nil
}
