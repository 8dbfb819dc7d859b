package domain

import (
	"fmt"
	"strings"
)

type ProjectStage string

const (
	StageInitiation ProjectStage = "initiation"
	StagePlanning   ProjectStage = "planning"
	StageExecution  ProjectStage = "execution"
	StageMonitoring ProjectStage = "monitoring"
	StageClosing    ProjectStage = "closing"
	StageClosed     ProjectStage = "closed"
)

// ProjectStages lists the stages in lifecycle order.
var ProjectStages = []ProjectStage{
	StageInitiation, StagePlanning, StageExecution, StageMonitoring, StageClosing, StageClosed,
}

// ParseProjectStage validates a stage string.
func ParseProjectStage(s string) (ProjectStage, error) {
	for _, st := range ProjectStages {
		if string(st) == s {
			return st, nil
		}
	}
	names := make([]string, len(ProjectStages))
	for i, st := range ProjectStages {
		names[i] = string(st)
	}
	return "", fmt.Errorf("invalid stage %q, must be one of: %s", s, strings.Join(names, ", "))
}

type ResourceType string

const (
	ResourceTeamMember ResourceType = "team_member"
	ResourceVendor     ResourceType = "vendor"
	ResourceEquipment  ResourceType = "equipment"
	ResourceMaterial   ResourceType = "material"
)

// ValidResourceTypes is the canonical set of accepted resource type strings.
var ValidResourceTypes = map[string]bool{
	"team_member": true, "vendor": true, "equipment": true, "material": true,
}

// Label returns the human label used as an expense description prefix.
func (t ResourceType) Label() string {
	switch t {
	case ResourceTeamMember:
		return "Team Member"
	case ResourceVendor:
		return "Vendor"
	case ResourceEquipment:
		return "Equipment"
	case ResourceMaterial:
		return "Material"
	default:
		return "Resource"
	}
}

// ExpenseType returns the expense category a resource's cost is booked under.
func (t ResourceType) ExpenseType() ExpenseType {
	switch t {
	case ResourceVendor:
		return ExpenseVendor
	case ResourceEquipment:
		return ExpenseEquipment
	case ResourceMaterial:
		return ExpenseMaterial
	default:
		return ExpenseResource
	}
}

type ExpenseType string

const (
	ExpenseResource  ExpenseType = "resource"
	ExpenseVendor    ExpenseType = "vendor"
	ExpenseEquipment ExpenseType = "equipment"
	ExpenseMaterial  ExpenseType = "material"
	ExpenseOther     ExpenseType = "other"
)

// ValidExpenseTypes is the canonical set of accepted expense type strings.
var ValidExpenseTypes = map[string]bool{
	"resource": true, "vendor": true, "equipment": true, "material": true, "other": true,
}

type DocumentStatus string

const (
	DocumentDraft           DocumentStatus = "draft"
	DocumentPendingApproval DocumentStatus = "pending_approval"
	DocumentApproved        DocumentStatus = "approved"
	DocumentRejected        DocumentStatus = "rejected"
)

// ValidDocumentStatuses is the canonical set of accepted document status strings.
var ValidDocumentStatuses = map[string]bool{
	"draft": true, "pending_approval": true, "approved": true, "rejected": true,
}

const DefaultUserRole = "project_manager"
