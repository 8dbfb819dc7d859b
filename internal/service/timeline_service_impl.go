package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/timeline"
)

type timelineService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewTimelineService(projects repository.ProjectRepo, observers ...UseCaseObserver) TimelineService {
	return &timelineService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *timelineService) GetTimeline(ctx context.Context, req app.TimelineRequest) (resp *app.TimelineResponse, err error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	startedAt := time.Now()
	fields := map[string]any{"scope": len(req.ProjectScope)}
	defer func() { observeUseCase(ctx, s.observer, "timeline", startedAt, fields, err) }()

	projects, err := s.projects.List(ctx, req.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	projects, err = filterProjectsByScope(projects, req.ProjectScope)
	if err != nil {
		return nil, err
	}

	views := buildTimelineViews(projects, now)
	sortTimelineViews(views)

	summary := buildTimelineSummary(views, now)
	fields["overdue"] = summary.Risk.Overdue
	fields["near_deadline"] = summary.Risk.NearDeadline

	return &app.TimelineResponse{
		Summary:  summary,
		Projects: views,
	}, nil
}

// filterProjectsByScope keeps projects named in scope by ID or short ID.
// An empty scope keeps everything; an entry matching nothing is an error.
func filterProjectsByScope(projects []*domain.Project, scope []string) ([]*domain.Project, error) {
	if len(scope) == 0 {
		return projects, nil
	}

	var out []*domain.Project
	for _, want := range scope {
		found := false
		for _, p := range projects {
			if p.ID == want || (p.ShortID != "" && strings.EqualFold(p.ShortID, want)) {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, &app.TimelineError{
				Code:    app.TimelineErrInvalidScope,
				Message: fmt.Sprintf("project %q is not in the listed projects", want),
			}
		}
	}
	return out, nil
}

func buildTimelineViews(projects []*domain.Project, now time.Time) []app.ProjectTimelineView {
	views := make([]app.ProjectTimelineView, 0, len(projects))
	for _, p := range projects {
		st := p.Timeline(now)
		views = append(views, app.ProjectTimelineView{
			ProjectID:   p.ID,
			DisplayID:   p.DisplayID(),
			ProjectName: p.Name,
			Stage:       p.Stage,
			StartDate:   p.StartDate,
			EndDate:     p.EndDate,
			Status:      st,
			Band:        timeline.Classify(st),
			Badge:       st.Badge(),
		})
	}
	return views
}

// sortTimelineViews orders views so that the projects needing attention come
// first, then by end date and name.
func sortTimelineViews(views []app.ProjectTimelineView) {
	sort.SliceStable(views, func(i, j int) bool {
		bi := timeline.BandPriority(views[i].Band)
		bj := timeline.BandPriority(views[j].Band)
		if bi != bj {
			return bi < bj
		}
		if !views[i].EndDate.Equal(views[j].EndDate) {
			return views[i].EndDate.Before(views[j].EndDate)
		}
		return views[i].ProjectName < views[j].ProjectName
	})
}

func buildTimelineSummary(views []app.ProjectTimelineView, now time.Time) app.TimelineSummary {
	var risk timeline.RiskCounts
	for _, v := range views {
		risk.Add(v.Status)
	}

	policyMsg := "All projects on schedule"
	switch {
	case risk.Overdue > 0:
		policyMsg = fmt.Sprintf("%d overdue, review end dates", risk.Overdue)
	case risk.NearDeadline > 0:
		policyMsg = "Some projects are close to their deadline, monitor closely"
	}

	return app.TimelineSummary{
		GeneratedAt:   now,
		CountsTotal:   len(views),
		CountsHealthy: len(views) - risk.AtRisk(),
		Risk:          risk,
		PolicyMessage: policyMsg,
	}
}
