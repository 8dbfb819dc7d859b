package app

import (
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timeline"
)

type TimelineRequest struct {
	Now           *time.Time
	ProjectScope  []string
	IncludeClosed bool
}

func NewTimelineRequest() TimelineRequest {
	return TimelineRequest{}
}

type ProjectTimelineView struct {
	ProjectID   string
	DisplayID   string
	ProjectName string
	Stage       domain.ProjectStage
	StartDate   time.Time
	EndDate     time.Time
	Status      timeline.Status
	Band        timeline.Band
	Badge       string
}

type TimelineSummary struct {
	GeneratedAt   time.Time
	CountsTotal   int
	CountsHealthy int
	Risk          timeline.RiskCounts
	PolicyMessage string
}

type TimelineResponse struct {
	Summary  TimelineSummary
	Projects []ProjectTimelineView
}

type TimelineErrorCode string

const (
	TimelineErrInvalidScope TimelineErrorCode = "INVALID_SCOPE"
)

type TimelineError struct {
	Code    TimelineErrorCode
	Message string
}

func (e *TimelineError) Error() string {
	return string(e.Code) + ": " + e.Message
}
