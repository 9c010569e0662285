package destinations

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/search"
)

type DestinationUseCase interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Destination, error)
	Get(ctx context.Context, id string) (*domain.Destination, error)
	Create(ctx context.Context, input DestinationInput) (*domain.Destination, error)
	Update(ctx context.Context, id string, input DestinationInput) (*domain.Destination, error)
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	GetDestinations(ctx context.Context) ([]domain.Destination, error)
	SetDestinations(ctx context.Context, destinations []domain.Destination) error
	InvalidateDestinations(ctx context.Context) error
}

type ListFilter struct {
	Search string
	Region string
}

type DestinationInput struct {
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Attractions []string `json:"attractions"`
	Weather     string   `json:"weather"`
	Popularity  int      `json:"popularity"`
}

type DestinationService struct {
	repo  repository.DestinationRepository
	cache Cache
}

func NewDestinationService(repo repository.DestinationRepository, cache Cache) *DestinationService {
	return &DestinationService{repo: repo, cache: cache}
}

func (s *DestinationService) List(ctx context.Context, filter ListFilter) ([]domain.Destination, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(all, func(d domain.Destination) bool {
		if filter.Region != "" && !strings.EqualFold(d.Region, filter.Region) {
			return false
		}
		return search.Match(filter.Search, d.Name, d.Region, d.Description)
	}), nil
}

func (s *DestinationService) all(ctx context.Context) ([]domain.Destination, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDestinations(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	destinations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetDestinations(ctx, destinations); err != nil {
			log.Printf("WARNING: cache destinations: %v", err)
		}
	}
	return destinations, nil
}

func (s *DestinationService) Get(ctx context.Context, id string) (*domain.Destination, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DestinationService) Create(ctx context.Context, input DestinationInput) (*domain.Destination, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	d := input.destination(uuid.NewString())
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *DestinationService) Update(ctx context.Context, id string, input DestinationInput) (*domain.Destination, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	d := input.destination(id)
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return d, nil
}

func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DestinationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateDestinations(ctx); err != nil {
		log.Printf("WARNING: invalidate destinations cache: %v", err)
	}
}

func (in DestinationInput) normalized() DestinationInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Region = strings.TrimSpace(in.Region)
	in.Description = strings.TrimSpace(in.Description)
	in.Weather = strings.TrimSpace(in.Weather)
	in.Images = compact(in.Images)
	in.Attractions = compact(in.Attractions)
	return in
}

func (in DestinationInput) validate() error {
	if in.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if in.Region == "" {
		return domain.NewValidationError("region", "is required")
	}
	if in.Popularity < 0 || in.Popularity > 100 {
		return domain.NewValidationError("popularity", "must be between 0 and 100")
	}
	return nil
}

func (in DestinationInput) destination(id string) *domain.Destination {
	return &domain.Destination{
		ID:          id,
		Name:        in.Name,
		Region:      in.Region,
		Description: in.Description,
		Images:      in.Images,
		Attractions: in.Attractions,
		Weather:     in.Weather,
		Popularity:  in.Popularity,
	}
}

// compact trims entries and drops empty ones. Never returns nil.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

var _ DestinationUseCase = (*DestinationService)(nil)
