package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/pricing"
)

// Resource names a priced entity and selects its pricing table.
type Resource string

const (
	ResourceVehicle Resource = "vehicle"
	ResourceRoom    Resource = "room"
)

func (r Resource) table() (string, error) {
	switch r {
	case ResourceVehicle:
		return "vehicle_pricing", nil
	case ResourceRoom:
		return "hotel_room_pricing", nil
	}
	return "", domain.NewValidationError("resource", fmt.Sprintf("unknown resource %q", string(r)))
}

type PricingRepository interface {
	Get(ctx context.Context, resource Resource, id string) (*pricing.Payload, error)
	Upsert(ctx context.Context, resource Resource, id string, p pricing.Payload) error
	Delete(ctx context.Context, resource Resource, id string) error
}

type PGPricingRepository struct {
	db *pgxpool.Pool
}

func NewPricingRepository(db *pgxpool.Pool) PricingRepository {
	return &PGPricingRepository{db: db}
}

func (r *PGPricingRepository) Get(ctx context.Context, resource Resource, id string) (*pricing.Payload, error) {
	table, err := resource.table()
	if err != nil {
		return nil, err
	}

	var p pricing.Payload
	err = r.db.QueryRow(ctx, `SELECT off_season_months, off_season_price, on_season_months, on_season_price,
		closed_months, last_minute_enabled, last_minute_days_before, last_minute_discount_price
		FROM `+table+` WHERE resource_id=$1`, id).
		Scan(&p.OffSeasonMonths, &p.OffSeasonPrice, &p.OnSeasonMonths, &p.OnSeasonPrice,
			&p.ClosedMonths, &p.LastMinuteEnabled, &p.LastMinuteDaysBefore, &p.LastMinuteDiscountPrice)
	if err != nil {
		return nil, wrapErr(err, "pricing", "get")
	}
	return &p, nil
}

func (r *PGPricingRepository) Upsert(ctx context.Context, resource Resource, id string, p pricing.Payload) error {
	table, err := resource.table()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `INSERT INTO `+table+` (resource_id, off_season_months, off_season_price, on_season_months,
		on_season_price, closed_months, last_minute_enabled, last_minute_days_before, last_minute_discount_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (resource_id) DO UPDATE SET
			off_season_months = EXCLUDED.off_season_months,
			off_season_price = EXCLUDED.off_season_price,
			on_season_months = EXCLUDED.on_season_months,
			on_season_price = EXCLUDED.on_season_price,
			closed_months = EXCLUDED.closed_months,
			last_minute_enabled = EXCLUDED.last_minute_enabled,
			last_minute_days_before = EXCLUDED.last_minute_days_before,
			last_minute_discount_price = EXCLUDED.last_minute_discount_price,
			updated_at = now()`,
		id, p.OffSeasonMonths, p.OffSeasonPrice, p.OnSeasonMonths, p.OnSeasonPrice,
		p.ClosedMonths, p.LastMinuteEnabled, p.LastMinuteDaysBefore, p.LastMinuteDiscountPrice)
	return wrapErr(err, "pricing", "upsert")
}

// Delete removes stored pricing. Deleting a missing row is not an error.
func (r *PGPricingRepository) Delete(ctx context.Context, resource Resource, id string) error {
	table, err := resource.table()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `DELETE FROM `+table+` WHERE resource_id=$1`, id)
	return wrapErr(err, "pricing", "delete")
}

var _ PricingRepository = (*PGPricingRepository)(nil)
