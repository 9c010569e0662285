package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	GetByID(ctx context.Context, id string) (*domain.Destination, error)
	Create(ctx context.Context, d *domain.Destination) error
	Update(ctx context.Context, d *domain.Destination) error
	Delete(ctx context.Context, id string) error
}

type PGDestinationRepository struct {
	db *pgxpool.Pool
}

func NewDestinationRepository(db *pgxpool.Pool) DestinationRepository {
	return &PGDestinationRepository{db: db}
}

const destinationColumns = `id, name, COALESCE(region, ''), COALESCE(description, ''), COALESCE(images, '{}'), COALESCE(attractions, '{}'), COALESCE(weather, ''), COALESCE(popularity, 0), created_at`

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Region, &d.Description, &d.Images, &d.Attractions, &d.Weather, &d.Popularity, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGDestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, `SELECT `+destinationColumns+` FROM destinations ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "destination", "list")
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, wrapErr(err, "destination", "scan")
		}
		destinations = append(destinations, *d)
	}
	return destinations, wrapErr(rows.Err(), "destination", "list")
}

func (r *PGDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	d, err := scanDestination(r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id=$1`, id))
	if err != nil {
		return nil, wrapErr(err, "destination", "get")
	}
	return d, nil
}

func (r *PGDestinationRepository) Create(ctx context.Context, d *domain.Destination) error {
	err := r.db.QueryRow(ctx, `INSERT INTO destinations (id, name, region, description, images, attractions, weather, popularity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`, d.ID, d.Name, d.Region, d.Description, d.Images, d.Attractions, d.Weather, d.Popularity).
		Scan(&d.CreatedAt)
	return wrapErr(err, "destination", "insert")
}

func (r *PGDestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	err := r.db.QueryRow(ctx, `UPDATE destinations
		SET name=$1, region=$2, description=$3, images=$4, attractions=$5, weather=$6, popularity=$7
		WHERE id=$8 RETURNING created_at`, d.Name, d.Region, d.Description, d.Images, d.Attractions, d.Weather, d.Popularity, d.ID).
		Scan(&d.CreatedAt)
	return wrapErr(err, "destination", "update")
}

func (r *PGDestinationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err, "destination", "delete")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("destination")
	}
	return nil
}

var _ DestinationRepository = (*PGDestinationRepository)(nil)
