package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain objects produced from a snapshot.
type Converted struct {
	Users      []*domain.User
	Projects   []*domain.Project
	Resources  []*domain.Resource
	Milestones []*domain.Milestone
	Expenses   []*domain.Expense
	Documents  []*domain.Document
}

// ConvertSnapshot transforms a validated Snapshot into domain objects ready
// for persistence. Records without an id get a fresh one; missing creation
// timestamps default to now. Call ValidateSnapshot first.
func ConvertSnapshot(s *Snapshot, now time.Time) (*Converted, error) {
	now = now.UTC()
	out := &Converted{}

	for _, u := range s.Users {
		created, err := timestampOr(u.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Name, err)
		}
		out.Users = append(out.Users, &domain.User{
			ID:        idOrNew(u.ID),
			Name:      u.Name,
			Email:     u.Email,
			Role:      domain.CoalesceStr(u.Role, domain.DefaultUserRole),
			CreatedAt: created,
		})
	}

	for _, p := range s.Projects {
		proj, err := convertProject(p, now)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		out.Projects = append(out.Projects, proj)
	}

	for _, r := range s.Resources {
		created, err := timestampOr(r.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", r.Name, err)
		}
		out.Resources = append(out.Resources, &domain.Resource{
			ID:              idOrNew(r.ID),
			ProjectID:       r.ProjectID,
			Name:            r.Name,
			Type:            domain.ResourceType(r.Type),
			CostPerUnit:     r.CostPerUnit,
			Availability:    r.Availability,
			AllocatedAmount: r.AllocatedAmount,
			CreatedAt:       created,
		})
	}

	for _, m := range s.Milestones {
		due, err := ParseTimestamp(m.DueDate)
		if err != nil {
			return nil, fmt.Errorf("milestone %q: %w", m.Title, err)
		}
		created, err := timestampOr(m.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("milestone %q: %w", m.Title, err)
		}
		out.Milestones = append(out.Milestones, &domain.Milestone{
			ID:            idOrNew(m.ID),
			ProjectID:     m.ProjectID,
			Title:         m.Title,
			Description:   derefString(m.Description),
			DueDate:       due,
			Completed:     m.Completed,
			CompletedDate: parseOptionalTimestamp(m.CompletedDate),
			CreatedAt:     created,
		})
	}

	for _, e := range s.Expenses {
		created, err := timestampOr(e.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("expense %q: %w", e.Description, err)
		}
		date, err := timestampOr(e.Date, created)
		if err != nil {
			return nil, fmt.Errorf("expense %q: %w", e.Description, err)
		}
		var resourceID *string
		if e.ResourceID != nil && *e.ResourceID != "" {
			id := *e.ResourceID
			resourceID = &id
		}
		out.Expenses = append(out.Expenses, &domain.Expense{
			ID:          idOrNew(e.ID),
			ProjectID:   e.ProjectID,
			ResourceID:  resourceID,
			Description: e.Description,
			Amount:      e.Amount,
			Type:        domain.ExpenseType(e.Type),
			Date:        date,
			CreatedAt:   created,
		})
	}

	for _, d := range s.Documents {
		uploaded, err := timestampOr(d.UploadedAt, now)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", d.Name, err)
		}
		version := d.Version
		if version <= 0 {
			version = 1
		}
		out.Documents = append(out.Documents, &domain.Document{
			ID:         idOrNew(d.ID),
			ProjectID:  d.ProjectID,
			Name:       d.Name,
			Filename:   d.Filename,
			Version:    version,
			FolderPath: domain.NormalizeFolder(d.FolderPath),
			FilePath:   d.FilePath,
			FileSize:   d.FileSize,
			Status:     domain.DocumentStatus(domain.CoalesceStr(d.Status, string(domain.DocumentDraft))),
			UploadedBy: d.UploadedBy,
			UploadedAt: uploaded,
			ApprovedBy: d.ApprovedBy,
			ApprovedAt: parseOptionalTimestamp(d.ApprovedAt),
		})
	}

	return out, nil
}

func convertProject(p ProjectRecord, now time.Time) (*domain.Project, error) {
	start, err := ParseTimestamp(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := ParseTimestamp(p.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	created, err := timestampOr(p.CreatedAt, now)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	updated, err := timestampOr(p.UpdatedAt, created)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &domain.Project{
		ID:          p.ID,
		ShortID:     strings.ToUpper(p.ShortID),
		Name:        p.Name,
		Description: derefString(p.Description),
		Stage:       domain.ProjectStage(domain.CoalesceStr(p.Stage, string(domain.StageInitiation))),
		StartDate:   start,
		EndDate:     end,
		Budget:      p.Budget,
		ManagerID:   p.ManagerID,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
