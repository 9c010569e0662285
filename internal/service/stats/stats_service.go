package stats

import (
	"context"
	"log"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/repository"
)

type StatsUseCase interface {
	Overview(ctx context.Context) (*domain.Overview, error)
}

type Cache interface {
	GetOverview(ctx context.Context) (*domain.Overview, error)
	SetOverview(ctx context.Context, overview domain.Overview) error
}

type StatsService struct {
	repo  repository.StatsRepository
	users repository.UserRepository
	cache Cache
}

func NewStatsService(repo repository.StatsRepository, users repository.UserRepository, cache Cache) *StatsService {
	return &StatsService{repo: repo, users: users, cache: cache}
}

// Overview serves the dashboard counters from cache when it can.
func (s *StatsService) Overview(ctx context.Context) (*domain.Overview, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetOverview(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	overview, err := s.count(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetOverview(ctx, *overview); err != nil {
			log.Printf("WARNING: cache overview: %v", err)
		}
	}
	return overview, nil
}

func (s *StatsService) count(ctx context.Context) (*domain.Overview, error) {
	var o domain.Overview
	counters := []struct {
		table string
		dst   *int64
	}{
		{repository.TableUsers, &o.Users},
		{repository.TableDestinations, &o.Destinations},
		{repository.TableHotels, &o.Hotels},
		{repository.TableHotelRooms, &o.HotelRooms},
		{repository.TableVehicles, &o.Vehicles},
		{repository.TableTrips, &o.Trips},
		{repository.TableBookings, &o.Bookings},
	}
	for _, c := range counters {
		n, err := s.repo.Count(ctx, c.table)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	pending, err := s.repo.CountBookingsByStatus(ctx, domain.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	o.PendingBookings = pending

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	o.UsersByRole = make(map[domain.Role]int64, len(domain.Roles))
	for _, r := range domain.Roles {
		o.UsersByRole[r] = byRole[r]
	}
	return &o, nil
}

var _ StatsUseCase = (*StatsService)(nil)
