package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	SetAvailability(ctx context.Context, id string, available bool) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

const vehicleColumns = `id, driver_id, name, COALESCE(type, ''), seats, price_per_day, COALESCE(features, '{}'), COALESCE(images, '{}'), available, created_at`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.DriverID, &v.Name, &v.Type, &v.Seats, &v.PricePerDay, &v.Features, &v.Images, &v.Available, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "vehicle", "list")
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, wrapErr(err, "vehicle", "scan")
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, wrapErr(rows.Err(), "vehicle", "list")
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id))
	if err != nil {
		return nil, wrapErr(err, "vehicle", "get")
	}
	return v, nil
}

func (r *PGVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	err := r.db.QueryRow(ctx, `INSERT INTO vehicles (id, driver_id, name, type, seats, price_per_day, features, images, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`, v.ID, v.DriverID, v.Name, v.Type, v.Seats, v.PricePerDay, v.Features, v.Images, v.Available).
		Scan(&v.CreatedAt)
	return wrapErr(err, "vehicle", "insert")
}

func (r *PGVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	err := r.db.QueryRow(ctx, `UPDATE vehicles
		SET name=$1, type=$2, seats=$3, price_per_day=$4, features=$5, images=$6, available=$7
		WHERE id=$8 RETURNING driver_id, created_at`, v.Name, v.Type, v.Seats, v.PricePerDay, v.Features, v.Images, v.Available, v.ID).
		Scan(&v.DriverID, &v.CreatedAt)
	return wrapErr(err, "vehicle", "update")
}

func (r *PGVehicleRepository) SetAvailability(ctx context.Context, id string, available bool) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx, `UPDATE vehicles SET available=$1 WHERE id=$2 RETURNING `+vehicleColumns, available, id))
	if err != nil {
		return nil, wrapErr(err, "vehicle", "update")
	}
	return v, nil
}

func (r *PGVehicleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err, "vehicle", "delete")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("vehicle")
	}
	return nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
