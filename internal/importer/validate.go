package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
)

// ValidateSnapshot checks the snapshot for errors before conversion.
// Returns a slice of all validation errors found.
//
// Project windows are not required to be well-formed: an end date on or
// before the start date is accepted and handled by the timeline engine.
func ValidateSnapshot(s *Snapshot) []error {
	var errs []error

	projectIDs := make(map[string]bool)
	errs = append(errs, validateUsers(s.Users)...)
	errs = append(errs, validateProjects(s.Projects, projectIDs)...)

	resourceIDs := make(map[string]bool)
	errs = append(errs, validateResources(s.Resources, projectIDs, resourceIDs)...)
	errs = append(errs, validateMilestones(s.Milestones, projectIDs)...)
	errs = append(errs, validateExpenses(s.Expenses, projectIDs, resourceIDs)...)
	errs = append(errs, validateDocuments(s.Documents, projectIDs)...)

	return errs
}

func validateUsers(users []UserRecord) []error {
	var errs []error
	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if u.Email == "" {
			errs = append(errs, fmt.Errorf("%s.email is required", prefix))
		}
		errs = appendTimestampErr(errs, prefix+".created_at", u.CreatedAt, false)
	}
	return errs
}

func validateProjects(projects []ProjectRecord, ids map[string]bool) []error {
	var errs []error
	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", prefix, p.ID))
		} else {
			ids[p.ID] = true
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Stage != "" {
			if _, err := domain.ParseProjectStage(p.Stage); err != nil {
				errs = append(errs, fmt.Errorf("%s.stage: %w", prefix, err))
			}
		}
		if p.ShortID != "" {
			candidate := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
			if err := candidate.ValidateShortID(); err != nil {
				errs = append(errs, fmt.Errorf("%s.short_id: %w", prefix, err))
			}
		}
		if p.Budget < 0 {
			errs = append(errs, fmt.Errorf("%s.budget must not be negative", prefix))
		}
		errs = appendTimestampErr(errs, prefix+".start_date", p.StartDate, true)
		errs = appendTimestampErr(errs, prefix+".end_date", p.EndDate, true)
		errs = appendTimestampErr(errs, prefix+".created_at", p.CreatedAt, false)
		errs = appendTimestampErr(errs, prefix+".updated_at", p.UpdatedAt, false)
	}
	return errs
}

func validateResources(resources []ResourceRecord, projectIDs, ids map[string]bool) []error {
	var errs []error
	for i, r := range resources {
		prefix := fmt.Sprintf("resources[%d]", i)
		if r.ID != "" {
			ids[r.ID] = true
		}
		errs = appendProjectRefErr(errs, prefix, r.ProjectID, projectIDs)
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if !domain.ValidResourceTypes[r.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, r.Type))
		}
		if r.CostPerUnit < 0 {
			errs = append(errs, fmt.Errorf("%s.cost_per_unit must not be negative", prefix))
		}
		if r.AllocatedAmount < 0 {
			errs = append(errs, fmt.Errorf("%s.allocated_amount must not be negative", prefix))
		}
		errs = appendTimestampErr(errs, prefix+".created_at", r.CreatedAt, false)
	}
	return errs
}

func validateMilestones(milestones []MilestoneRecord, projectIDs map[string]bool) []error {
	var errs []error
	for i, m := range milestones {
		prefix := fmt.Sprintf("milestones[%d]", i)
		errs = appendProjectRefErr(errs, prefix, m.ProjectID, projectIDs)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = appendTimestampErr(errs, prefix+".due_date", m.DueDate, true)
		if m.CompletedDate != nil {
			errs = appendTimestampErr(errs, prefix+".completed_date", *m.CompletedDate, false)
		}
		errs = appendTimestampErr(errs, prefix+".created_at", m.CreatedAt, false)
	}
	return errs
}

func validateExpenses(expenses []ExpenseRecord, projectIDs, resourceIDs map[string]bool) []error {
	var errs []error
	for i, e := range expenses {
		prefix := fmt.Sprintf("expenses[%d]", i)
		errs = appendProjectRefErr(errs, prefix, e.ProjectID, projectIDs)
		if e.Description == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if e.Amount < 0 {
			errs = append(errs, fmt.Errorf("%s.amount must not be negative", prefix))
		}
		if !domain.ValidExpenseTypes[e.Type] {
			errs = append(errs, fmt.Errorf("%s.expense_type: invalid value %q", prefix, e.Type))
		}
		if e.ResourceID != nil && *e.ResourceID != "" && !resourceIDs[*e.ResourceID] {
			errs = append(errs, fmt.Errorf("%s.resource_id %q not found in snapshot", prefix, *e.ResourceID))
		}
		errs = appendTimestampErr(errs, prefix+".date", e.Date, false)
		errs = appendTimestampErr(errs, prefix+".created_at", e.CreatedAt, false)
	}
	return errs
}

func validateDocuments(documents []DocumentRecord, projectIDs map[string]bool) []error {
	var errs []error
	for i, d := range documents {
		prefix := fmt.Sprintf("documents[%d]", i)
		errs = appendProjectRefErr(errs, prefix, d.ProjectID, projectIDs)
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if d.Filename == "" {
			errs = append(errs, fmt.Errorf("%s.filename is required", prefix))
		}
		if d.Status != "" && !domain.ValidDocumentStatuses[d.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, d.Status))
		}
		if d.Version < 0 {
			errs = append(errs, fmt.Errorf("%s.version must not be negative", prefix))
		}
		if d.FileSize < 0 {
			errs = append(errs, fmt.Errorf("%s.file_size must not be negative", prefix))
		}
		errs = appendTimestampErr(errs, prefix+".uploaded_at", d.UploadedAt, false)
		if d.ApprovedAt != nil {
			errs = appendTimestampErr(errs, prefix+".approved_at", *d.ApprovedAt, false)
		}
	}
	return errs
}

func appendProjectRefErr(errs []error, prefix, projectID string, projectIDs map[string]bool) []error {
	if projectID == "" {
		return append(errs, fmt.Errorf("%s.project_id is required", prefix))
	}
	if !projectIDs[projectID] {
		return append(errs, fmt.Errorf("%s.project_id %q not found in snapshot", prefix, projectID))
	}
	return errs
}

func appendTimestampErr(errs []error, field, value string, required bool) []error {
	if value == "" {
		if required {
			return append(errs, fmt.Errorf("%s is required", field))
		}
		return errs
	}
	if _, err := ParseTimestamp(value); err != nil {
		return append(errs, fmt.Errorf("%s: %w", field, err))
	}
	return errs
}
