package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

// WithWindow sets the project's planned start and end dates.
func WithWindow(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithStage(s domain.ProjectStage) ProjectOption {
	return func(p *domain.Project) {
		p.Stage = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithBudget(b float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = b
	}
}

func WithManager(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ManagerID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestProject returns a project in execution that started a month ago and
// ends two months from now.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Stage:     domain.StageExecution,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 2, 0),
		Budget:    10000,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestUser(name string) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Role:      domain.DefaultUserRole,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithResourceType(t domain.ResourceType) ResourceOption {
	return func(r *domain.Resource) {
		r.Type = t
	}
}

func WithCost(perUnit, allocated float64) ResourceOption {
	return func(r *domain.Resource) {
		r.CostPerUnit = perUnit
		r.AllocatedAmount = allocated
	}
}

func NewTestResource(projectID, name string, opts ...ResourceOption) *domain.Resource {
	r := &domain.Resource{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		Name:            name,
		Type:            domain.ResourceTeamMember,
		CostPerUnit:     100,
		Availability:    "full-time",
		AllocatedAmount: 10,
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithDueDate(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DueDate = d
	}
}

func WithCompleted(at time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Completed = true
		m.CompletedDate = &at
	}
}

func NewTestMilestone(projectID, title string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		DueDate:   now.AddDate(0, 0, 14),
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Expense options
type ExpenseOption func(*domain.Expense)

func WithExpenseResource(resourceID string) ExpenseOption {
	return func(e *domain.Expense) {
		e.ResourceID = &resourceID
	}
}

func WithExpenseType(t domain.ExpenseType) ExpenseOption {
	return func(e *domain.Expense) {
		e.Type = t
	}
}

func NewTestExpense(projectID, description string, amount float64, opts ...ExpenseOption) *domain.Expense {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Expense{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Description: description,
		Amount:      amount,
		Type:        domain.ExpenseOther,
		Date:        now,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document options
type DocumentOption func(*domain.Document)

func WithFolder(path string) DocumentOption {
	return func(d *domain.Document) {
		d.FolderPath = path
	}
}

func WithVersion(v int) DocumentOption {
	return func(d *domain.Document) {
		d.Version = v
	}
}

func NewTestDocument(projectID, name string, opts ...DocumentOption) *domain.Document {
	d := &domain.Document{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Name:       name,
		Filename:   name + ".pdf",
		Version:    1,
		FolderPath: domain.RootFolder,
		FilePath:   "/tmp/" + name + ".pdf",
		FileSize:   1024,
		Status:     domain.DocumentDraft,
		UploadedBy: "tester",
		UploadedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
