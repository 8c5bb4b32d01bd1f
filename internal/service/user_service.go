package service

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/port"
)

// CreateUserInput is the DTO for creating a user.
type CreateUserInput struct {
	Name string `json:"name"`
}

// UserService manages the actors that perform audited actions.
type UserService interface {
	Create(ctx context.Context, input *CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	if input == nil {
		return nil, domain.NewValidationError("input", "is required")
	}
	input.Name = strings.TrimSpace(input.Name)
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name, validation.Required, validation.RuneLength(1, 200)),
	)
	if err != nil {
		return nil, structError(err)
	}

	user := &domain.User{Name: input.Name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("userId", "is required")
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, offset, limit)
}
