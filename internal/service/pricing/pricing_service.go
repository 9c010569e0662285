package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/pricing"
	"github.com/safarpk/safarpk/internal/repository"
)

const maxQuoteDays = 366

type PricingUseCase interface {
	Get(ctx context.Context, resource repository.Resource, id string) (*pricing.Payload, error)
	Save(ctx context.Context, actor domain.Actor, resource repository.Resource, id string, form pricing.Form) (pricing.Result, error)
	Quote(ctx context.Context, resource repository.Resource, id string, from, to time.Time) ([]DayQuote, error)
}

// DayQuote is the resolved price of one day. Price is nil when no price applies.
type DayQuote struct {
	Date       time.Time `json:"date"`
	Price      *float64  `json:"price"`
	Available  bool      `json:"available"`
	LastMinute bool      `json:"last_minute"`
}

type PricingService struct {
	repo     repository.PricingRepository
	vehicles repository.VehicleRepository
	rooms    repository.RoomRepository
	now      func() time.Time
}

func NewPricingService(repo repository.PricingRepository, vehicles repository.VehicleRepository, rooms repository.RoomRepository) *PricingService {
	return &PricingService{repo: repo, vehicles: vehicles, rooms: rooms, now: time.Now}
}

func (s *PricingService) Get(ctx context.Context, resource repository.Resource, id string) (*pricing.Payload, error) {
	return s.repo.Get(ctx, resource, id)
}

// Save validates the form and persists its derived payload. Validation
// messages come back as a domain.PricingError and nothing is written. A form
// that configures nothing removes any stored pricing.
func (s *PricingService) Save(ctx context.Context, actor domain.Actor, resource repository.Resource, id string, form pricing.Form) (pricing.Result, error) {
	if err := s.authorize(ctx, actor, resource, id); err != nil {
		return pricing.NotConfigured(), err
	}
	if err := checkRanges(form); err != nil {
		return pricing.NotConfigured(), err
	}

	result, errs := pricing.Submit(form)
	if len(errs) > 0 {
		return pricing.NotConfigured(), domain.PricingError{Messages: errs}
	}

	payload, ok := result.Payload()
	if !ok {
		if err := s.repo.Delete(ctx, resource, id); err != nil {
			return result, err
		}
		return result, nil
	}
	if err := s.repo.Upsert(ctx, resource, id, payload); err != nil {
		return result, err
	}
	return result, nil
}

// Quote prices every day in [from, to]. Vehicles fall back to their daily
// rate when no seasonal price applies.
func (s *PricingService) Quote(ctx context.Context, resource repository.Resource, id string, from, to time.Time) ([]DayQuote, error) {
	from, to = truncateDay(from), truncateDay(to)
	if to.Before(from) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxQuoteDays {
		return nil, domain.NewValidationError("to", fmt.Sprintf("range exceeds %d days", maxQuoteDays))
	}

	var base *float64
	switch resource {
	case repository.ResourceVehicle:
		v, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !v.Available {
			return unavailable(from, to), nil
		}
		base = &v.PricePerDay
	case repository.ResourceRoom:
		if _, err := s.rooms.OwnerID(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, unknownResource(resource)
	}

	payload, err := s.repo.Get(ctx, resource, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	bookedAt := s.now()
	quotes := make([]DayQuote, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		q := DayQuote{Date: day, Available: true, Price: base}
		if payload != nil {
			if payload.ClosedOn(day) {
				q.Available = false
				q.Price = nil
			} else if price, ok := pricing.Quote(*payload, day, bookedAt); ok {
				p := price
				q.Price = &p
				q.LastMinute = payload.LastMinuteOn(day, bookedAt)
			}
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (s *PricingService) authorize(ctx context.Context, actor domain.Actor, resource repository.Resource, id string) error {
	switch resource {
	case repository.ResourceVehicle:
		v, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(v.DriverID) {
			return domain.ErrForbidden
		}
	case repository.ResourceRoom:
		if actor.Role != domain.RoleHotel && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		owner, err := s.rooms.OwnerID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(owner) {
			return domain.ErrForbidden
		}
	default:
		return unknownResource(resource)
	}
	return nil
}

func unknownResource(resource repository.Resource) error {
	return domain.NewValidationError("resource", fmt.Sprintf("unknown resource %q", string(resource)))
}

func checkRanges(f pricing.Form) error {
	var rerr *pricing.RangeError
	if err := pricing.CheckRanges(f); errors.As(err, &rerr) {
		return domain.NewValidationError(rerr.Field, rerr.Msg)
	}
	return nil
}

func unavailable(from, to time.Time) []DayQuote {
	quotes := make([]DayQuote, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		quotes = append(quotes, DayQuote{Date: day})
	}
	return quotes
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ PricingUseCase = (*PricingService)(nil)
