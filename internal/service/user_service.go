package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidPermission = errors.New("unknown permission label")

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := Authorize(actor, domain.PermissionAdmin, domain.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// UpdatePermissions replaces the target user's permission set. Pure
// permission gate: being the target user is not enough.
func (s *UserService) UpdatePermissions(ctx context.Context, actor *domain.User, targetID uuid.UUID, permissions []domain.Permission) (*domain.User, error) {
	if err := Authorize(actor, domain.PermissionAdmin, domain.PermissionPermissionUpdate); err != nil {
		return nil, err
	}

	for _, p := range permissions {
		if !p.Valid() {
			return nil, ErrInvalidPermission
		}
	}

	if err := s.userRepo.UpdatePermissions(ctx, targetID, permissions); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, targetID)
}
