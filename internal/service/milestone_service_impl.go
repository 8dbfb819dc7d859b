package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
}

func NewMilestoneService(milestones repository.MilestoneRepo) MilestoneService {
	return &milestoneService{milestones: milestones}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	if m.ProjectID == "" {
		return fmt.Errorf("milestone project is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("milestone title is required")
	}
	if m.DueDate.IsZero() {
		return fmt.Errorf("milestone due date is required")
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC()
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	return s.milestones.ListByProject(ctx, projectID)
}

func (s *milestoneService) Complete(ctx context.Context, id string) error {
	return s.milestones.Complete(ctx, id, time.Now().UTC())
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	return s.milestones.Delete(ctx, id)
}
