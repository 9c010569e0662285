package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

// Counted tables of the dashboard.
const (
	TableUsers        = "user_profiles"
	TableDestinations = "destinations"
	TableHotels       = "hotels"
	TableHotelRooms   = "hotel_rooms"
	TableVehicles     = "vehicles"
	TableTrips        = "trips"
	TableBookings     = "bookings"
)

var countedTables = map[string]bool{
	TableUsers:        true,
	TableDestinations: true,
	TableHotels:       true,
	TableHotelRooms:   true,
	TableVehicles:     true,
	TableTrips:        true,
	TableBookings:     true,
}

type StatsRepository interface {
	Count(ctx context.Context, table string) (int64, error)
	CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

func (r *PGStatsRepository) Count(ctx context.Context, table string) (int64, error) {
	if !countedTables[table] {
		return 0, fmt.Errorf("table %q is not counted", table)
	}
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&n)
	return n, wrapErr(err, table, "count")
}

func (r *PGStatsRepository) CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE status=$1`, status).Scan(&n)
	return n, wrapErr(err, "booking", "count")
}

var _ StatsRepository = (*PGStatsRepository)(nil)
