package users

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/search"
)

type UserUseCase interface {
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Search string
	Role   domain.Role
}

type UserInput struct {
	Email   string      `json:"email"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List fetches the whole table and filters it in memory.
func (s *UserService) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, func(u domain.User) bool {
		if filter.Role != "" && u.Role != filter.Role {
			return false
		}
		return search.Match(filter.Search, u.Name, u.Email, u.Phone)
	}), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:      uuid.NewString(),
		Email:   input.Email,
		Name:    input.Name,
		Role:    input.Role,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:      id,
		Email:   input.Email,
		Name:    input.Name,
		Role:    input.Role,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (in UserInput) normalized() UserInput {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.Role == "" {
		in.Role = domain.RoleCustomer
	}
	return in
}

func (in UserInput) validate() error {
	if in.Email == "" {
		return domain.NewValidationError("email", "is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewValidationError("email", "is not a valid address")
	}
	if in.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !in.Role.Valid() {
		return domain.NewValidationError("role", "must be one of customer, driver, hotel, admin")
	}
	return nil
}

var _ UserUseCase = (*UserService)(nil)
