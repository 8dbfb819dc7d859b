package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project": p.Name}
	defer func() { observeUseCase(ctx, s.observer, "create-project", startedAt, fields, err) }()

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	p.ShortID = strings.ToUpper(p.ShortID)
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if err := p.ValidateWindow(); err != nil {
		return err
	}
	if p.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Stage == "" {
		p.Stage = domain.StageInitiation
	} else if _, err := domain.ParseProjectStage(string(p.Stage)); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	fields["project_id"] = p.ID
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	// 1. Exact short ID match (case-insensitive)
	p, err := s.projects.GetByShortID(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 2. Exact UUID match
	p, err = s.projects.GetByID(ctx, input)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. UUID prefix match
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func (s *projectService) List(ctx context.Context, includeClosed bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeClosed)
}

func (s *projectService) Update(ctx context.Context, id string, upd ProjectUpdate) (p *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observeUseCase(ctx, s.observer, "update-project", startedAt, fields, err) }()

	p, err = s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ShortID != nil {
		p.ShortID = strings.ToUpper(*upd.ShortID)
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, fmt.Errorf("project name is required")
		}
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Stage != nil {
		if _, err := domain.ParseProjectStage(string(*upd.Stage)); err != nil {
			return nil, err
		}
		p.Stage = *upd.Stage
	}
	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		p.EndDate = *upd.EndDate
	}
	if upd.Budget != nil && *upd.Budget < 0 {
		return nil, fmt.Errorf("budget must not be negative")
	}
	p.Budget = domain.FloatFromPtrWithDefault(p.Budget, upd.Budget)
	if upd.ManagerID != nil {
		p.ManagerID = *upd.ManagerID
	}

	if err := p.ValidateShortID(); err != nil {
		return nil, err
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		if err := p.ValidateWindow(); err != nil {
			return nil, err
		}
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) UpdateStage(ctx context.Context, id string, stage string) (*domain.Project, error) {
	st, err := domain.ParseProjectStage(strings.ToLower(strings.TrimSpace(stage)))
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, ProjectUpdate{Stage: &st})
}

func (s *projectService) Delete(ctx context.Context, id string, force bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id, "force": force}
	defer func() { observeUseCase(ctx, s.observer, "delete-project", startedAt, fields, err) }()

	if !force {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Stage != domain.StageClosed {
			return fmt.Errorf("project must be closed before deletion (use --force to override)")
		}
	}
	return s.projects.Delete(ctx, id)
}
