package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

type BookingRepository interface {
	ListDetails(ctx context.Context, from, to time.Time) ([]domain.BookingDetails, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	CompleteEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, trip_id, customer_id, provider_id, vehicle_id, start_date, end_date, total_price, status, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.TripID, &b.CustomerID, &b.ProviderID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.TotalPrice, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListDetails returns bookings intersecting [from, to] with the customer and
// vehicle names the calendar shows.
func (r *PGBookingRepository) ListDetails(ctx context.Context, from, to time.Time) ([]domain.BookingDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.trip_id, b.customer_id, b.provider_id, b.vehicle_id, b.start_date, b.end_date,
		       b.total_price, b.status, b.created_at,
		       COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(v.name, '')
		FROM bookings b
		LEFT JOIN user_profiles u ON u.id = b.customer_id
		LEFT JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.start_date <= $2 AND b.end_date >= $1
		ORDER BY b.created_at DESC`, from, to)
	if err != nil {
		return nil, wrapErr(err, "booking", "list")
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		if err := rows.Scan(&d.ID, &d.TripID, &d.CustomerID, &d.ProviderID, &d.VehicleID, &d.StartDate, &d.EndDate,
			&d.TotalPrice, &d.Status, &d.CreatedAt, &d.CustomerName, &d.CustomerEmail, &d.VehicleName); err != nil {
			return nil, wrapErr(err, "booking", "scan")
		}
		bookings = append(bookings, d)
	}
	return bookings, wrapErr(rows.Err(), "booking", "list")
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, wrapErr(err, "booking", "get")
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 RETURNING `+bookingColumns, status, id))
	if err != nil {
		return nil, wrapErr(err, "booking", "update")
	}
	return b, nil
}

// CompleteEndedBefore marks confirmed bookings that ended before deadline as completed.
func (r *PGBookingRepository) CompleteEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1 WHERE status=$2 AND end_date < $3 RETURNING `+bookingColumns,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, deadline)
	if err != nil {
		return nil, wrapErr(err, "booking", "update")
	}
	defer rows.Close()

	var completed []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapErr(err, "booking", "scan")
		}
		completed = append(completed, *b)
	}
	return completed, wrapErr(rows.Err(), "booking", "update")
}

var _ BookingRepository = (*PGBookingRepository)(nil)
