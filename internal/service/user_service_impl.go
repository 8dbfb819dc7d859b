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

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Role = domain.CoalesceStr(u.Role, domain.DefaultUserRole)
	u.CreatedAt = time.Now().UTC()
	return s.users.Create(ctx, u)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
