package domain

import (
	"strings"
	"time"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

type Resource struct {
	ID              string
	ProjectID       string
	Name            string
	Type            ResourceType
	CostPerUnit     float64
	Availability    string
	AllocatedAmount float64
	Description     string
	CreatedAt       time.Time
}

// TotalCost is the resource's booked cost: unit cost times allocated units.
func (r *Resource) TotalCost() float64 {
	return r.CostPerUnit * r.AllocatedAmount
}

// ExpenseDescription is the description given to the expense that books
// this resource's cost, e.g. "Vendor: Marketing Consultant".
func (r *Resource) ExpenseDescription() string {
	return r.Type.Label() + ": " + r.Name
}

type Milestone struct {
	ID            string
	ProjectID     string
	Title         string
	Description   string
	DueDate       time.Time
	Completed     bool
	CompletedDate *time.Time
	CreatedAt     time.Time
}

// IsOverdue reports whether the milestone is past due and still open.
func (m *Milestone) IsOverdue(now time.Time) bool {
	return !m.Completed && m.DueDate.Before(now)
}

type Expense struct {
	ID          string
	ProjectID   string
	ResourceID  *string
	Description string
	Amount      float64
	Type        ExpenseType
	Date        time.Time
	CreatedAt   time.Time
}

// SubjectName strips a "Label: " prefix from the description, so that
// "Material: Premium Steel" yields "Premium Steel".
func (e *Expense) SubjectName() string {
	if i := strings.Index(e.Description, ": "); i >= 0 {
		return strings.TrimSpace(e.Description[i+2:])
	}
	return e.Description
}

const RootFolder = "/"

type Document struct {
	ID         string
	ProjectID  string
	Name       string
	Filename   string
	Version    int
	FolderPath string
	FilePath   string
	FileSize   int64
	Status     DocumentStatus
	UploadedBy string
	UploadedAt time.Time
	ApprovedBy *string
	ApprovedAt *time.Time
}

// NormalizeFolder returns a clean folder path that always starts with "/".
func NormalizeFolder(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return RootFolder
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return CoalesceStr(path, RootFolder)
}

type BudgetSummary struct {
	Budget         float64
	TotalExpenses  float64
	Remaining      float64
	PercentageUsed float64
}

// NewBudgetSummary derives remaining budget and usage from a budget and the
// total spent against it. Usage is 0 when there is no positive budget.
func NewBudgetSummary(budget, totalExpenses float64) BudgetSummary {
	s := BudgetSummary{
		Budget:        budget,
		TotalExpenses: totalExpenses,
		Remaining:     budget - totalExpenses,
	}
	if budget > 0 {
		s.PercentageUsed = totalExpenses / budget * 100
	}
	return s
}
