package vehicles

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/search"
)

type VehicleUseCase interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, actor domain.Actor, input VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, actor domain.Actor, id string, input VehicleInput) (*domain.Vehicle, error)
	SetAvailability(ctx context.Context, actor domain.Actor, id string, available bool) (*domain.Vehicle, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type ListFilter struct {
	Search        string
	DriverID      string
	AvailableOnly bool
}

type VehicleInput struct {
	// DriverID is honoured for admins only; drivers always own what they create.
	DriverID    string   `json:"driver_id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Seats       int      `json:"seats"`
	PricePerDay float64  `json:"price_per_day"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
	Available   *bool    `json:"available"`
}

type VehicleService struct {
	repo repository.VehicleRepository
}

func NewVehicleService(repo repository.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) List(ctx context.Context, filter ListFilter) ([]domain.Vehicle, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, func(v domain.Vehicle) bool {
		if filter.DriverID != "" && v.DriverID != filter.DriverID {
			return false
		}
		if filter.AvailableOnly && !v.Available {
			return false
		}
		return search.Match(filter.Search, v.Name, v.Type)
	}), nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, actor domain.Actor, input VehicleInput) (*domain.Vehicle, error) {
	if actor.Role != domain.RoleDriver && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	driverID := actor.UserID
	if actor.IsAdmin() && input.DriverID != "" {
		driverID = input.DriverID
	}

	v := &domain.Vehicle{
		ID:          uuid.NewString(),
		DriverID:    driverID,
		Name:        input.Name,
		Type:        input.Type,
		Seats:       input.Seats,
		PricePerDay: input.PricePerDay,
		Features:    input.Features,
		Images:      input.Images,
		Available:   input.Available == nil || *input.Available,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, actor domain.Actor, id string, input VehicleInput) (*domain.Vehicle, error) {
	current, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	v := &domain.Vehicle{
		ID:          id,
		DriverID:    current.DriverID,
		Name:        input.Name,
		Type:        input.Type,
		Seats:       input.Seats,
		PricePerDay: input.PricePerDay,
		Features:    input.Features,
		Images:      input.Images,
		Available:   current.Available,
	}
	if input.Available != nil {
		v.Available = *input.Available
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) SetAvailability(ctx context.Context, actor domain.Actor, id string, available bool) (*domain.Vehicle, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.repo.SetAvailability(ctx, id, available)
}

func (s *VehicleService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *VehicleService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(v.DriverID) {
		return nil, domain.ErrForbidden
	}
	return v, nil
}

func (in VehicleInput) normalized() VehicleInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.DriverID = strings.TrimSpace(in.DriverID)
	if in.Features == nil {
		in.Features = []string{}
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	return in
}

func (in VehicleInput) validate() error {
	if in.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if in.Type == "" {
		return domain.NewValidationError("type", "is required")
	}
	if in.Seats <= 0 {
		return domain.NewValidationError("seats", "must be positive")
	}
	if in.PricePerDay <= 0 {
		return domain.NewValidationError("price_per_day", "must be positive")
	}
	return nil
}

var _ VehicleUseCase = (*VehicleService)(nil)
