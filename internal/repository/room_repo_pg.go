package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	// OwnerID returns the user owning the hotel the room belongs to. Rooms
	// of hotels without an owner yield "".
	OwnerID(ctx context.Context, roomID string) (string, error)
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

func (r *PGRoomRepository) OwnerID(ctx context.Context, roomID string) (string, error) {
	var owner string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(h.owner_id::text, '')
		FROM hotel_rooms r
		JOIN hotels h ON h.id = r.hotel_id
		WHERE r.id = $1`, roomID).Scan(&owner)
	if err != nil {
		return "", wrapErr(err, "room", "get")
	}
	return owner, nil
}
