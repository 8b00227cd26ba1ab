package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PersonalTax represents a personal tax engagement for one client.
// ts is set once at creation; lts is refreshed on every update.
type PersonalTax struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd3"`
	ClientID            string        `bson:"clientId" json:"clientId"`
	TaskDescription     string        `bson:"taskDescription,omitempty" json:"taskDescription,omitempty" example:"T1 return 2024"`
	TaxYear             int           `bson:"taxYear,omitempty" json:"taxYear,omitempty" example:"2024"`
	CaseWorker          string        `bson:"caseWorker,omitempty" json:"caseWorker,omitempty"`
	StartDate           *time.Time    `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DocumentsFrom       string        `bson:"documentsFrom,omitempty" json:"documentsFrom,omitempty"`
	TargetDueDate       *time.Time    `bson:"targetDueDate,omitempty" json:"targetDueDate,omitempty"`
	ActualCompletedDate *time.Time    `bson:"actualCompletedDate,omitempty" json:"actualCompletedDate,omitempty"`
	Status              string        `bson:"status,omitempty" json:"status,omitempty" example:"In Progress"`
	Blocker             string        `bson:"blocker,omitempty" json:"blocker,omitempty"`
	Priority            string        `bson:"priority,omitempty" json:"priority,omitempty" example:"High"`
	Receivable          float64       `bson:"receivable,omitempty" json:"receivable,omitempty"`
	Invoice             bool          `bson:"invoice" json:"invoice"`
	Paid                bool          `bson:"paid" json:"paid"`
	Payment             Amount        `bson:"payment,omitempty" json:"payment"`
	Notes               string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed           bool          `bson:"completed" json:"completed"`
	CreatedAt           time.Time     `bson:"ts" json:"ts"`
	UpdatedAt           time.Time     `bson:"lts" json:"lts"`
}

// CorporationTax represents a corporate tax engagement (T2/HST work).
type CorporationTax struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd4"`
	CorpID              string        `bson:"corpId" json:"corpId"`
	TaskType            string        `bson:"taskType,omitempty" json:"taskType,omitempty" example:"PFS"`
	Category            string        `bson:"category,omitempty" json:"category,omitempty"`
	YearEnding          string        `bson:"yearEnding,omitempty" json:"yearEnding,omitempty" example:"2024-12"`
	TaskDescription     string        `bson:"taskDescription,omitempty" json:"taskDescription,omitempty"`
	CaseWorker          string        `bson:"caseWorker,omitempty" json:"caseWorker,omitempty"`
	DocsReceivedDate    *time.Time    `bson:"docsReceivedDate,omitempty" json:"docsReceivedDate,omitempty"`
	Channel             string        `bson:"channel,omitempty" json:"channel,omitempty"`
	HSTDocStatus        string        `bson:"hstDocStatus,omitempty" json:"hstDocStatus,omitempty"`
	T2DocStatus         string        `bson:"t2DocStatus,omitempty" json:"t2DocStatus,omitempty"`
	MissingItems        string        `bson:"missingItems,omitempty" json:"missingItems,omitempty"`
	StartDate           *time.Time    `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DueDate             *time.Time    `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ActualCompletedDate *time.Time    `bson:"actualCompletedDate,omitempty" json:"actualCompletedDate,omitempty"`
	Status              string        `bson:"status,omitempty" json:"status,omitempty"`
	BlockerWaitingFor   string        `bson:"blockerWaitingFor,omitempty" json:"blockerWaitingFor,omitempty"`
	Priority            string        `bson:"priority,omitempty" json:"priority,omitempty"`
	Invoice             bool          `bson:"invoice" json:"invoice"`
	ReceivableAmount    float64       `bson:"receivableAmount,omitempty" json:"receivableAmount,omitempty"`
	Paid                bool          `bson:"paid" json:"paid"`
	Payment             Amount        `bson:"payment,omitempty" json:"payment"`
	Notes               string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed           bool          `bson:"completed" json:"completed"`
	CreatedAt           time.Time     `bson:"ts" json:"ts"`
	UpdatedAt           time.Time     `bson:"lts" json:"lts"`
}

// Payroll represents a corporation payroll period record.
type Payroll struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd5"`
	CorpID     string        `bson:"corpId" json:"corpId"`
	Year       int           `bson:"year,omitempty" json:"year,omitempty" example:"2025"`
	Period     string        `bson:"period,omitempty" json:"period,omitempty" example:"Q2"`
	CaseWorker string        `bson:"caseWorker,omitempty" json:"caseWorker,omitempty"`
	Status     string        `bson:"status,omitempty" json:"status,omitempty"`
	Priority   string        `bson:"priority,omitempty" json:"priority,omitempty"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed  bool          `bson:"completed" json:"completed"`
	CreatedAt  time.Time     `bson:"ts" json:"ts"`
	UpdatedAt  time.Time     `bson:"lts" json:"lts"`
}

// UpdatePersonalTax is the allow-listed patch for personal tax updates.
type UpdatePersonalTax struct {
	ClientID            *string    `bson:"clientId,omitempty"`
	TaskDescription     *string    `bson:"taskDescription,omitempty"`
	TaxYear             *int       `bson:"taxYear,omitempty"`
	CaseWorker          *string    `bson:"caseWorker,omitempty"`
	StartDate           *time.Time `bson:"startDate,omitempty"`
	DocumentsFrom       *string    `bson:"documentsFrom,omitempty"`
	TargetDueDate       *time.Time `bson:"targetDueDate,omitempty"`
	ActualCompletedDate *time.Time `bson:"actualCompletedDate,omitempty"`
	Status              *string    `bson:"status,omitempty"`
	Blocker             *string    `bson:"blocker,omitempty"`
	Priority            *string    `bson:"priority,omitempty"`
	Receivable          *float64   `bson:"receivable,omitempty"`
	Invoice             *bool      `bson:"invoice,omitempty"`
	Paid                *bool      `bson:"paid,omitempty"`
	Payment             *Amount    `bson:"payment,omitempty"`
	Notes               *string    `bson:"notes,omitempty"`
	Completed           *bool      `bson:"completed,omitempty"`
}

// UpdateCorporationTax is the allow-listed patch for corporate tax updates.
type UpdateCorporationTax struct {
	CorpID              *string    `bson:"corpId,omitempty"`
	TaskType            *string    `bson:"taskType,omitempty"`
	Category            *string    `bson:"category,omitempty"`
	YearEnding          *string    `bson:"yearEnding,omitempty"`
	TaskDescription     *string    `bson:"taskDescription,omitempty"`
	CaseWorker          *string    `bson:"caseWorker,omitempty"`
	DocsReceivedDate    *time.Time `bson:"docsReceivedDate,omitempty"`
	Channel             *string    `bson:"channel,omitempty"`
	HSTDocStatus        *string    `bson:"hstDocStatus,omitempty"`
	T2DocStatus         *string    `bson:"t2DocStatus,omitempty"`
	MissingItems        *string    `bson:"missingItems,omitempty"`
	StartDate           *time.Time `bson:"startDate,omitempty"`
	DueDate             *time.Time `bson:"dueDate,omitempty"`
	ActualCompletedDate *time.Time `bson:"actualCompletedDate,omitempty"`
	Status              *string    `bson:"status,omitempty"`
	BlockerWaitingFor   *string    `bson:"blockerWaitingFor,omitempty"`
	Priority            *string    `bson:"priority,omitempty"`
	Invoice             *bool      `bson:"invoice,omitempty"`
	ReceivableAmount    *float64   `bson:"receivableAmount,omitempty"`
	Paid                *bool      `bson:"paid,omitempty"`
	Payment             *Amount    `bson:"payment,omitempty"`
	Notes               *string    `bson:"notes,omitempty"`
	Completed           *bool      `bson:"completed,omitempty"`
}

// UpdatePayroll is the allow-listed patch for payroll updates.
type UpdatePayroll struct {
	CorpID     *string `bson:"corpId,omitempty"`
	Year       *int    `bson:"year,omitempty"`
	Period     *string `bson:"period,omitempty"`
	CaseWorker *string `bson:"caseWorker,omitempty"`
	Status     *string `bson:"status,omitempty"`
	Priority   *string `bson:"priority,omitempty"`
	Notes      *string `bson:"notes,omitempty"`
	Completed  *bool   `bson:"completed,omitempty"`
}
