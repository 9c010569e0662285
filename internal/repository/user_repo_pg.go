package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, email, name, COALESCE(role, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.Address, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapErr(err, "user", "list")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr(err, "user", "scan")
		}
		users = append(users, *u)
	}
	return users, wrapErr(rows.Err(), "user", "list")
}

func (r *PGUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM user_profiles WHERE id=$1`, id))
	if err != nil {
		return nil, wrapErr(err, "user", "get")
	}
	return u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO user_profiles (id, email, name, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`, user.ID, user.Email, user.Name, user.Role, user.Phone, user.Address).
		Scan(&user.CreatedAt)
	return wrapErr(err, "user", "insert")
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `UPDATE user_profiles SET email=$1, name=$2, role=$3, phone=$4, address=$5
		WHERE id=$6 RETURNING created_at`, user.Email, user.Name, user.Role, user.Phone, user.Address, user.ID).
		Scan(&user.CreatedAt)
	return wrapErr(err, "user", "update")
}

func (r *PGUserRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE id=$1`, id)
	if err != nil {
		return wrapErr(err, "user", "delete")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("user")
	}
	return nil
}

func (r *PGUserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT COALESCE(role, ''), count(*) FROM user_profiles GROUP BY role`)
	if err != nil {
		return nil, wrapErr(err, "user", "count")
	}
	defer rows.Close()

	counts := make(map[domain.Role]int64)
	for rows.Next() {
		var (
			role  domain.Role
			count int64
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, wrapErr(err, "user", "scan")
		}
		counts[role] += count
	}
	return counts, wrapErr(rows.Err(), "user", "count")
}

var _ UserRepository = (*PGUserRepository)(nil)
