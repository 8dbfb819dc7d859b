package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the top-level JSON structure for a portfolio import. Field
// names follow the REST backend's entities so that an export of its /api
// responses can be loaded unchanged.
type Snapshot struct {
	Users      []UserRecord      `json:"users,omitempty"`
	Projects   []ProjectRecord   `json:"projects"`
	Resources  []ResourceRecord  `json:"resources,omitempty"`
	Milestones []MilestoneRecord `json:"milestones,omitempty"`
	Expenses   []ExpenseRecord   `json:"expenses,omitempty"`
	Documents  []DocumentRecord  `json:"documents,omitempty"`
}

type UserRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type ProjectRecord struct {
	ID          string  `json:"id"`
	ShortID     string  `json:"short_id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Budget      float64 `json:"budget"`
	ManagerID   string  `json:"manager_id"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type ResourceRecord struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"project_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	CostPerUnit     float64 `json:"cost_per_unit"`
	Availability    string  `json:"availability"`
	AllocatedAmount float64 `json:"allocated_amount"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

type MilestoneRecord struct {
	ID            string  `json:"id"`
	ProjectID     string  `json:"project_id"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	DueDate       string  `json:"due_date"`
	Completed     bool    `json:"completed"`
	CompletedDate *string `json:"completed_date,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type ExpenseRecord struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"project_id"`
	ResourceID  *string `json:"resource_id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"expense_type"`
	Date        string  `json:"date,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type DocumentRecord struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"project_id"`
	Name       string  `json:"name"`
	Filename   string  `json:"filename"`
	Version    int     `json:"version,omitempty"`
	FolderPath string  `json:"folder_path,omitempty"`
	FilePath   string  `json:"file_path"`
	FileSize   int64   `json:"file_size"`
	Status     string  `json:"status,omitempty"`
	UploadedBy string  `json:"uploaded_by"`
	UploadedAt string  `json:"uploaded_at,omitempty"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
}

// LoadSnapshot reads and parses a snapshot JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	return &s, nil
}
