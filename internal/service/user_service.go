package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

// UserService exposes directory operations.
type UserService interface {
	Register(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListInstructors(ctx context.Context) ([]model.User, error)
	HasRole(ctx context.Context, callerEmail, email string, role model.Role) (bool, error)
	SetRole(ctx context.Context, callerEmail string, id uint, role model.Role) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register inserts a new user keyed by email. Registering an email that
// already exists returns ErrUserExists and leaves the stored record, role
// included, untouched.
func (s *userService) Register(ctx context.Context, user *model.User) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ListInstructors(ctx context.Context) ([]model.User, error) {
	return s.repo.ListByRole(ctx, model.RoleInstructor)
}

// HasRole answers "is email a <role>" for the authenticated caller. When the
// caller asks about an email other than their own the answer is false without
// touching the directory; the lookup never runs for a foreign identity.
func (s *userService) HasRole(ctx context.Context, callerEmail, email string, role model.Role) (bool, error) {
	if callerEmail != email {
		return false, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}

// SetRole overwrites a user's role. Only admins may assign roles, and the
// role must be one of the known values.
func (s *userService) SetRole(ctx context.Context, callerEmail string, id uint, role model.Role) (*model.User, error) {
	caller, err := s.repo.FindByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if caller.Role != model.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if !model.KnownRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	affected, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	return s.repo.FindByID(ctx, id)
}
