package dashboard

import (
	"time"

	"taxtracker/internal/services/auth"
	"taxtracker/internal/services/clients"
	"taxtracker/internal/services/corporations"
	"taxtracker/internal/services/tasks"
)

// Deadline types surfaced on the dashboard.
const (
	DeadlinePersonalTax  = "Personal Tax"
	DeadlineCorporateTax = "Corporate Tax"
)

// Stats is the headline number block of the dashboard.
type Stats struct {
	TotalClients      int64   `json:"totalClients" example:"120"`
	TotalCorporations int64   `json:"totalCorporations" example:"34"`
	PendingTasks      int     `json:"pendingTasks" example:"6"`
	CompletedTasks    int     `json:"completedTasks" example:"4"`
	TotalRevenue      float64 `json:"totalRevenue" example:"4250.5"`
	Employees         int64   `json:"employees" example:"8"`
}

// Deadline is one upcoming due date, drawn from either task board.
// SubjectID carries the client id for personal tax entries and the
// corporation id for corporate tax entries.
type Deadline struct {
	Type        string     `json:"type" example:"Personal Tax"`
	Description string     `json:"description" example:"T1 return 2024"`
	SubjectID   string     `json:"subjectId"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority,omitempty" example:"High"`
}

// SnapshotResponse is the full dashboard payload.
type SnapshotResponse struct {
	Success            bool                        `json:"success" example:"true"`
	Stats              Stats                       `json:"stats"`
	RecentClients      []*clients.Client           `json:"recentClients"`
	RecentCorporations []*corporations.Corporation `json:"recentCorporations"`
	UpcomingDeadlines  []Deadline                  `json:"upcomingDeadlines"`
}

// AdminStats is the user-management statistics block.
type AdminStats struct {
	TotalUsers        int64 `json:"totalUsers" example:"8"`
	AdminUsers        int64 `json:"adminUsers" example:"2"`
	RegularUsers      int64 `json:"regularUsers" example:"6"`
	ActiveUsers       int64 `json:"activeUsers" example:"7"`
	InactiveUsers     int64 `json:"inactiveUsers" example:"1"`
	TotalClients      int64 `json:"totalClients" example:"120"`
	TotalCorporations int64 `json:"totalCorporations" example:"34"`
	TotalTasks        int64 `json:"totalTasks" example:"310"`
}

// AdminStatsResponse wraps the admin statistics block.
type AdminStatsResponse struct {
	Success bool       `json:"success" example:"true"`
	Stats   AdminStats `json:"stats"`
}

// WorkloadStats counts the records assigned to one case worker.
type WorkloadStats struct {
	PersonalTaxCount    int `json:"personalTaxCount" example:"12"`
	CorporationTaxCount int `json:"corporationTaxCount" example:"5"`
	PayrollCount        int `json:"payrollCount" example:"9"`
}

// WorkloadResponse is the per-user workload report: every task
// assigned to the user, optionally bounded by a creation date range,
// plus the payments those tasks brought in.
type WorkloadResponse struct {
	Success          bool                    `json:"success" example:"true"`
	User             *auth.User              `json:"user"`
	PersonalTaxes    []*tasks.PersonalTax    `json:"personalTaxes"`
	CorporationTaxes []*tasks.CorporationTax `json:"corporationTaxes"`
	Payrolls         []*tasks.Payroll        `json:"corporationPayrolls"`
	TotalPayment     float64                 `json:"totalPayment" example:"1830"`
	Stats            WorkloadStats           `json:"stats"`
}
