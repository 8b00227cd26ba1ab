package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"taxtracker/internal/utils/pagination"
	"taxtracker/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sentinel errors shared by the three task collections.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrClientIDRequired = errors.New("clientId is required")
	ErrCorpIDRequired   = errors.New("corpId is required")
)

// Service handles task business logic across the personal tax,
// corporate tax, and payroll collections.
type Service struct {
	personal  PersonalTaxRepo
	corporate CorporationTaxRepo
	payroll   PayrollRepo
	log       *slog.Logger
}

// NewService creates a new tasks service
func NewService(personal PersonalTaxRepo, corporate CorporationTaxRepo, payroll PayrollRepo, log *slog.Logger) *Service {
	return &Service{
		personal:  personal,
		corporate: corporate,
		payroll:   payroll,
		log:       log,
	}
}

// UpsertPersonalTaxRequest inserts when ID is empty, otherwise patches.
type UpsertPersonalTaxRequest struct {
	ID                  string     `json:"id" validate:"omitempty,len=24,hexadecimal"`
	ClientID            *string    `json:"clientId,omitempty" validate:"omitempty,min=1"`
	TaskDescription     *string    `json:"taskDescription,omitempty"`
	TaxYear             *int       `json:"taxYear,omitempty" validate:"omitempty,min=1900,max=2200"`
	CaseWorker          *string    `json:"caseWorker,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	DocumentsFrom       *string    `json:"documentsFrom,omitempty"`
	TargetDueDate       *time.Time `json:"targetDueDate,omitempty"`
	ActualCompletedDate *time.Time `json:"actualCompletedDate,omitempty"`
	Status              *string    `json:"status,omitempty"`
	Blocker             *string    `json:"blocker,omitempty"`
	Priority            *string    `json:"priority,omitempty"`
	Receivable          *float64   `json:"receivable,omitempty"`
	Invoice             *bool      `json:"invoice,omitempty"`
	Paid                *bool      `json:"paid,omitempty"`
	Payment             *Amount    `json:"payment,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	Completed           *bool      `json:"completed,omitempty"`
}

// UpsertCorporationTaxRequest inserts when ID is empty, otherwise patches.
type UpsertCorporationTaxRequest struct {
	ID                  string     `json:"id" validate:"omitempty,len=24,hexadecimal"`
	CorpID              *string    `json:"corpId,omitempty" validate:"omitempty,min=1"`
	TaskType            *string    `json:"taskType,omitempty"`
	Category            *string    `json:"category,omitempty"`
	YearEnding          *string    `json:"yearEnding,omitempty"`
	TaskDescription     *string    `json:"taskDescription,omitempty"`
	CaseWorker          *string    `json:"caseWorker,omitempty"`
	DocsReceivedDate    *time.Time `json:"docsReceivedDate,omitempty"`
	Channel             *string    `json:"channel,omitempty"`
	HSTDocStatus        *string    `json:"hstDocStatus,omitempty"`
	T2DocStatus         *string    `json:"t2DocStatus,omitempty"`
	MissingItems        *string    `json:"missingItems,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	ActualCompletedDate *time.Time `json:"actualCompletedDate,omitempty"`
	Status              *string    `json:"status,omitempty"`
	BlockerWaitingFor   *string    `json:"blockerWaitingFor,omitempty"`
	Priority            *string    `json:"priority,omitempty"`
	Invoice             *bool      `json:"invoice,omitempty"`
	ReceivableAmount    *float64   `json:"receivableAmount,omitempty"`
	Paid                *bool      `json:"paid,omitempty"`
	Payment             *Amount    `json:"payment,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	Completed           *bool      `json:"completed,omitempty"`
}

// UpsertPayrollRequest inserts when ID is empty, otherwise patches.
type UpsertPayrollRequest struct {
	ID         string  `json:"id" validate:"omitempty,len=24,hexadecimal"`
	CorpID     *string `json:"corpId,omitempty" validate:"omitempty,min=1"`
	Year       *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2200"`
	Period     *string `json:"period,omitempty"`
	CaseWorker *string `json:"caseWorker,omitempty"`
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Completed  *bool   `json:"completed,omitempty"`
}

// ListPersonalTaxRequest represents a paged personal tax listing request
type ListPersonalTaxRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	ClientID string `query:"clientId" validate:"omitempty,min=1"`
}

// ListCorporationTaxRequest represents a paged corporate tax listing request
type ListCorporationTaxRequest struct {
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	CorpID string `query:"corpId" validate:"omitempty,min=1"`
}

// ListPayrollRequest represents a paged payroll listing request
type ListPayrollRequest struct {
	Page   int    `query:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	CorpID string `query:"corpId" validate:"omitempty,min=1"`
	Year   int    `query:"year" validate:"omitempty,min=1900,max=2200"`
}

// PersonalTaxResponse wraps a single personal tax task
type PersonalTaxResponse struct {
	Success     bool         `json:"success" example:"true"`
	PersonalTax *PersonalTax `json:"personalTax"`
}

// CorporationTaxResponse wraps a single corporate tax task
type CorporationTaxResponse struct {
	Success        bool            `json:"success" example:"true"`
	CorporationTax *CorporationTax `json:"corporationTax"`
}

// PayrollResponse wraps a single payroll record
type PayrollResponse struct {
	Success bool     `json:"success" example:"true"`
	Payroll *Payroll `json:"corporationPayroll"`
}

// ListPersonalTaxResponse represents a paged list of personal tax tasks
type ListPersonalTaxResponse struct {
	Success       bool            `json:"success" example:"true"`
	PersonalTaxes []*PersonalTax  `json:"personalTaxes"`
	Pagination    pagination.Page `json:"pagination"`
}

// ListCorporationTaxResponse represents a paged list of corporate tax tasks
type ListCorporationTaxResponse struct {
	Success          bool              `json:"success" example:"true"`
	CorporationTaxes []*CorporationTax `json:"corporationTaxes"`
	Pagination       pagination.Page   `json:"pagination"`
}

// ListPayrollResponse represents a paged list of payroll records
type ListPayrollResponse struct {
	Success    bool            `json:"success" example:"true"`
	Payrolls   []*Payroll      `json:"corporationPayrolls"`
	Pagination pagination.Page `json:"pagination"`
}

// UpsertPersonalTax inserts or patches a personal tax task.
// lts is always refreshed, even for a no-op patch; ts is immutable.
func (s *Service) UpsertPersonalTax(ctx context.Context, req UpsertPersonalTaxRequest) (*PersonalTaxResponse, error) {
	if req.ID == "" {
		if req.ClientID == nil || *req.ClientID == "" {
			return nil, ErrClientIDRequired
		}

		now := time.Now()
		task := &PersonalTax{
			ID:        bson.NewObjectID(),
			ClientID:  *req.ClientID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyPersonalTax(task, req)

		if err := s.personal.Create(ctx, task); err != nil {
			s.log.Error("personal tax create failed", "error", err)
			return nil, errors.New("failed to create personal tax task")
		}
		return &PersonalTaxResponse{Success: true, PersonalTax: task}, nil
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	patch := UpdatePersonalTax{
		ClientID:            req.ClientID,
		TaxYear:             req.TaxYear,
		CaseWorker:          req.CaseWorker,
		StartDate:           req.StartDate,
		DocumentsFrom:       req.DocumentsFrom,
		TargetDueDate:       req.TargetDueDate,
		ActualCompletedDate: req.ActualCompletedDate,
		Status:              req.Status,
		Blocker:             req.Blocker,
		Priority:            req.Priority,
		Receivable:          req.Receivable,
		Invoice:             req.Invoice,
		Paid:                req.Paid,
		Payment:             req.Payment,
		Completed:           req.Completed,
	}
	if req.TaskDescription != nil {
		desc := sanitize.Clean(*req.TaskDescription)
		patch.TaskDescription = &desc
	}
	if req.Notes != nil {
		notes := sanitize.Clean(*req.Notes)
		patch.Notes = &notes
	}

	task, err := s.personal.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.log.Info("personal tax not found for update", "task_id", id.Hex())
			return nil, ErrTaskNotFound
		}
		s.log.Error("personal tax update failed", "task_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update personal tax task")
	}
	return &PersonalTaxResponse{Success: true, PersonalTax: task}, nil
}

func applyPersonalTax(task *PersonalTax, req UpsertPersonalTaxRequest) {
	if req.TaskDescription != nil {
		task.TaskDescription = sanitize.Clean(*req.TaskDescription)
	}
	if req.TaxYear != nil {
		task.TaxYear = *req.TaxYear
	}
	if req.CaseWorker != nil {
		task.CaseWorker = *req.CaseWorker
	}
	task.StartDate = req.StartDate
	if req.DocumentsFrom != nil {
		task.DocumentsFrom = *req.DocumentsFrom
	}
	task.TargetDueDate = req.TargetDueDate
	task.ActualCompletedDate = req.ActualCompletedDate
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Blocker != nil {
		task.Blocker = *req.Blocker
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Receivable != nil {
		task.Receivable = *req.Receivable
	}
	if req.Invoice != nil {
		task.Invoice = *req.Invoice
	}
	if req.Paid != nil {
		task.Paid = *req.Paid
	}
	if req.Payment != nil {
		task.Payment = *req.Payment
	}
	if req.Notes != nil {
		task.Notes = sanitize.Clean(*req.Notes)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
}

// GetPersonalTax returns a single personal tax task by id.
func (s *Service) GetPersonalTax(ctx context.Context, id bson.ObjectID) (*PersonalTaxResponse, error) {
	task, err := s.personal.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.log.Error("personal tax lookup failed", "task_id", id.Hex(), "error", err)
		return nil, errors.New("failed to fetch personal tax task")
	}
	return &PersonalTaxResponse{Success: true, PersonalTax: task}, nil
}

// ListPersonalTax returns a page of personal tax tasks, newest first,
// optionally filtered by client.
func (s *Service) ListPersonalTax(ctx context.Context, req ListPersonalTaxRequest) (*ListPersonalTaxResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	items, total, err := s.personal.List(ctx, req.ClientID, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("personal tax list failed", "error", err)
		return nil, errors.New("failed to list personal tax tasks")
	}

	return &ListPersonalTaxResponse{
		Success:       true,
		PersonalTaxes: items,
		Pagination:    pagination.Build(page, limit, total),
	}, nil
}

// UpsertCorporationTax inserts or patches a corporate tax task.
func (s *Service) UpsertCorporationTax(ctx context.Context, req UpsertCorporationTaxRequest) (*CorporationTaxResponse, error) {
	if req.ID == "" {
		if req.CorpID == nil || *req.CorpID == "" {
			return nil, ErrCorpIDRequired
		}

		now := time.Now()
		task := &CorporationTax{
			ID:        bson.NewObjectID(),
			CorpID:    *req.CorpID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		applyCorporationTax(task, req)

		if err := s.corporate.Create(ctx, task); err != nil {
			s.log.Error("corporation tax create failed", "error", err)
			return nil, errors.New("failed to create corporation tax task")
		}
		return &CorporationTaxResponse{Success: true, CorporationTax: task}, nil
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	patch := UpdateCorporationTax{
		CorpID:              req.CorpID,
		TaskType:            req.TaskType,
		Category:            req.Category,
		YearEnding:          req.YearEnding,
		CaseWorker:          req.CaseWorker,
		DocsReceivedDate:    req.DocsReceivedDate,
		Channel:             req.Channel,
		HSTDocStatus:        req.HSTDocStatus,
		T2DocStatus:         req.T2DocStatus,
		StartDate:           req.StartDate,
		DueDate:             req.DueDate,
		ActualCompletedDate: req.ActualCompletedDate,
		Status:              req.Status,
		Priority:            req.Priority,
		Invoice:             req.Invoice,
		ReceivableAmount:    req.ReceivableAmount,
		Paid:                req.Paid,
		Payment:             req.Payment,
		Completed:           req.Completed,
	}
	if req.TaskDescription != nil {
		desc := sanitize.Clean(*req.TaskDescription)
		patch.TaskDescription = &desc
	}
	if req.MissingItems != nil {
		items := sanitize.Clean(*req.MissingItems)
		patch.MissingItems = &items
	}
	if req.BlockerWaitingFor != nil {
		blocker := sanitize.Clean(*req.BlockerWaitingFor)
		patch.BlockerWaitingFor = &blocker
	}
	if req.Notes != nil {
		notes := sanitize.Clean(*req.Notes)
		patch.Notes = &notes
	}

	task, err := s.corporate.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.log.Info("corporation tax not found for update", "task_id", id.Hex())
			return nil, ErrTaskNotFound
		}
		s.log.Error("corporation tax update failed", "task_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update corporation tax task")
	}
	return &CorporationTaxResponse{Success: true, CorporationTax: task}, nil
}

func applyCorporationTax(task *CorporationTax, req UpsertCorporationTaxRequest) {
	if req.TaskType != nil {
		task.TaskType = *req.TaskType
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.YearEnding != nil {
		task.YearEnding = *req.YearEnding
	}
	if req.TaskDescription != nil {
		task.TaskDescription = sanitize.Clean(*req.TaskDescription)
	}
	if req.CaseWorker != nil {
		task.CaseWorker = *req.CaseWorker
	}
	task.DocsReceivedDate = req.DocsReceivedDate
	if req.Channel != nil {
		task.Channel = *req.Channel
	}
	if req.HSTDocStatus != nil {
		task.HSTDocStatus = *req.HSTDocStatus
	}
	if req.T2DocStatus != nil {
		task.T2DocStatus = *req.T2DocStatus
	}
	if req.MissingItems != nil {
		task.MissingItems = sanitize.Clean(*req.MissingItems)
	}
	task.StartDate = req.StartDate
	task.DueDate = req.DueDate
	task.ActualCompletedDate = req.ActualCompletedDate
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.BlockerWaitingFor != nil {
		task.BlockerWaitingFor = sanitize.Clean(*req.BlockerWaitingFor)
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Invoice != nil {
		task.Invoice = *req.Invoice
	}
	if req.ReceivableAmount != nil {
		task.ReceivableAmount = *req.ReceivableAmount
	}
	if req.Paid != nil {
		task.Paid = *req.Paid
	}
	if req.Payment != nil {
		task.Payment = *req.Payment
	}
	if req.Notes != nil {
		task.Notes = sanitize.Clean(*req.Notes)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
}

// GetCorporationTax returns a single corporate tax task by id.
func (s *Service) GetCorporationTax(ctx context.Context, id bson.ObjectID) (*CorporationTaxResponse, error) {
	task, err := s.corporate.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.log.Error("corporation tax lookup failed", "task_id", id.Hex(), "error", err)
		return nil, errors.New("failed to fetch corporation tax task")
	}
	return &CorporationTaxResponse{Success: true, CorporationTax: task}, nil
}

// ListCorporationTax returns a page of corporate tax tasks, newest
// first, optionally filtered by corporation.
func (s *Service) ListCorporationTax(ctx context.Context, req ListCorporationTaxRequest) (*ListCorporationTaxResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	items, total, err := s.corporate.List(ctx, req.CorpID, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("corporation tax list failed", "error", err)
		return nil, errors.New("failed to list corporation tax tasks")
	}

	return &ListCorporationTaxResponse{
		Success:          true,
		CorporationTaxes: items,
		Pagination:       pagination.Build(page, limit, total),
	}, nil
}

// UpsertPayroll inserts or patches a payroll record.
func (s *Service) UpsertPayroll(ctx context.Context, req UpsertPayrollRequest) (*PayrollResponse, error) {
	if req.ID == "" {
		if req.CorpID == nil || *req.CorpID == "" {
			return nil, ErrCorpIDRequired
		}

		now := time.Now()
		record := &Payroll{
			ID:        bson.NewObjectID(),
			CorpID:    *req.CorpID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.Year != nil {
			record.Year = *req.Year
		}
		if req.Period != nil {
			record.Period = *req.Period
		}
		if req.CaseWorker != nil {
			record.CaseWorker = *req.CaseWorker
		}
		if req.Status != nil {
			record.Status = *req.Status
		}
		if req.Priority != nil {
			record.Priority = *req.Priority
		}
		if req.Notes != nil {
			record.Notes = sanitize.Clean(*req.Notes)
		}
		if req.Completed != nil {
			record.Completed = *req.Completed
		}

		if err := s.payroll.Create(ctx, record); err != nil {
			s.log.Error("payroll create failed", "error", err)
			return nil, errors.New("failed to create payroll record")
		}
		return &PayrollResponse{Success: true, Payroll: record}, nil
	}

	id, err := bson.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	patch := UpdatePayroll{
		CorpID:     req.CorpID,
		Year:       req.Year,
		Period:     req.Period,
		CaseWorker: req.CaseWorker,
		Status:     req.Status,
		Priority:   req.Priority,
		Completed:  req.Completed,
	}
	if req.Notes != nil {
		notes := sanitize.Clean(*req.Notes)
		patch.Notes = &notes
	}

	record, err := s.payroll.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.log.Info("payroll not found for update", "record_id", id.Hex())
			return nil, ErrTaskNotFound
		}
		s.log.Error("payroll update failed", "record_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update payroll record")
	}
	return &PayrollResponse{Success: true, Payroll: record}, nil
}

// GetPayroll returns a single payroll record by id.
func (s *Service) GetPayroll(ctx context.Context, id bson.ObjectID) (*PayrollResponse, error) {
	record, err := s.payroll.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		s.log.Error("payroll lookup failed", "record_id", id.Hex(), "error", err)
		return nil, errors.New("failed to fetch payroll record")
	}
	return &PayrollResponse{Success: true, Payroll: record}, nil
}

// ListPayroll returns a page of payroll records, newest year first,
// optionally filtered by corporation and year.
func (s *Service) ListPayroll(ctx context.Context, req ListPayrollRequest) (*ListPayrollResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	items, total, err := s.payroll.List(ctx, req.CorpID, req.Year, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("payroll list failed", "error", err)
		return nil, errors.New("failed to list payroll records")
	}

	return &ListPayrollResponse{
		Success:    true,
		Payrolls:   items,
		Pagination: pagination.Build(page, limit, total),
	}, nil
}
