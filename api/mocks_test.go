package api

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/pricing"
	"github.com/safarpk/safarpk/internal/repository"
	"github.com/safarpk/safarpk/internal/service/auth"
	"github.com/safarpk/safarpk/internal/service/calendar"
	"github.com/safarpk/safarpk/internal/service/destinations"
	pricingsvc "github.com/safarpk/safarpk/internal/service/pricing"
	"github.com/safarpk/safarpk/internal/service/users"
	"github.com/safarpk/safarpk/internal/service/vehicles"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) SignUp(ctx context.Context, input auth.SignUpInput) (*auth.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) SignUpPartner(ctx context.Context, input auth.SignUpInput) (*auth.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) SignIn(ctx context.Context, identifier, password string) (*auth.Session, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthUseCase) UpdatePassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func (m *MockAuthUseCase) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(ctx context.Context, filter users.ListFilter) ([]domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Create(ctx context.Context, input users.UserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Update(ctx context.Context, id string, input users.UserInput) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDestinationUseCase struct {
	mock.Mock
}

func (m *MockDestinationUseCase) List(ctx context.Context, filter destinations.ListFilter) ([]domain.Destination, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Destination), args.Error(1)
}

func (m *MockDestinationUseCase) Get(ctx context.Context, id string) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationUseCase) Create(ctx context.Context, input destinations.DestinationInput) (*domain.Destination, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationUseCase) Update(ctx context.Context, id string, input destinations.DestinationInput) (*domain.Destination, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockVehicleUseCase struct {
	mock.Mock
}

func (m *MockVehicleUseCase) List(ctx context.Context, filter vehicles.ListFilter) ([]domain.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Create(ctx context.Context, actor domain.Actor, input vehicles.VehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Update(ctx context.Context, actor domain.Actor, id string, input vehicles.VehicleInput) (*domain.Vehicle, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) SetAvailability(ctx context.Context, actor domain.Actor, id string, available bool) (*domain.Vehicle, error) {
	args := m.Called(ctx, actor, id, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleUseCase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockPricingUseCase struct {
	mock.Mock
}

func (m *MockPricingUseCase) Get(ctx context.Context, resource repository.Resource, id string) (*pricing.Payload, error) {
	args := m.Called(ctx, resource, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Payload), args.Error(1)
}

func (m *MockPricingUseCase) Save(ctx context.Context, actor domain.Actor, resource repository.Resource, id string, form pricing.Form) (pricing.Result, error) {
	args := m.Called(ctx, actor, resource, id, form)
	return args.Get(0).(pricing.Result), args.Error(1)
}

func (m *MockPricingUseCase) Quote(ctx context.Context, resource repository.Resource, id string, from, to time.Time) ([]pricingsvc.DayQuote, error) {
	args := m.Called(ctx, resource, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricingsvc.DayQuote), args.Error(1)
}

type MockCalendarUseCase struct {
	mock.Mock
}

func (m *MockCalendarUseCase) Events(ctx context.Context, actor domain.Actor, filter calendar.Filter) ([]calendar.Event, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Event), args.Error(1)
}

func (m *MockCalendarUseCase) Stats(ctx context.Context, actor domain.Actor, filter calendar.Filter) (calendar.Stats, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(calendar.Stats), args.Error(1)
}

func (m *MockCalendarUseCase) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockCalendarUseCase) Report(ctx context.Context, actor domain.Actor, filter calendar.Filter) ([]byte, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCalendarUseCase) CompleteEnded(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockStatsUseCase struct {
	mock.Mock
}

func (m *MockStatsUseCase) Overview(ctx context.Context) (*domain.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Overview), args.Error(1)
}
