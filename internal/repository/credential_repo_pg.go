package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safarpk/safarpk/internal/domain"
)

// CredentialRepository stores login records next to user profiles.
type CredentialRepository interface {
	CreateAccount(ctx context.Context, user *domain.User, cred domain.Credential) error
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Credential, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type PGCredentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) CredentialRepository {
	return &PGCredentialRepository{db: db}
}

// CreateAccount inserts the profile and its credential in one transaction.
func (r *PGCredentialRepository) CreateAccount(ctx context.Context, user *domain.User, cred domain.Credential) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapErr(err, "account", "begin")
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO user_profiles (id, email, name, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`, user.ID, user.Email, user.Name, user.Role, user.Phone, user.Address).
		Scan(&user.CreatedAt); err != nil {
		return wrapErr(err, "account", "insert")
	}

	if _, err := tx.Exec(ctx, `INSERT INTO auth_credentials (user_id, email, phone, password_hash)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)`, user.ID, cred.Email, cred.Phone, cred.PasswordHash); err != nil {
		return wrapErr(err, "account", "insert")
	}

	return wrapErr(tx.Commit(ctx), "account", "commit")
}

func (r *PGCredentialRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error) {
	return r.find(ctx, `WHERE lower(email)=lower($1) OR phone=$1`, identifier)
}

func (r *PGCredentialRepository) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	return r.find(ctx, `WHERE user_id=$1`, userID)
}

func (r *PGCredentialRepository) find(ctx context.Context, where string, arg string) (*domain.Credential, error) {
	var c domain.Credential
	err := r.db.QueryRow(ctx, `SELECT user_id, COALESCE(email, ''), COALESCE(phone, ''), password_hash
		FROM auth_credentials `+where+` LIMIT 1`, arg).
		Scan(&c.UserID, &c.Email, &c.Phone, &c.PasswordHash)
	if err != nil {
		return nil, wrapErr(err, "account", "get")
	}
	return &c, nil
}

func (r *PGCredentialRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE auth_credentials SET password_hash=$1, updated_at=now() WHERE user_id=$2`, passwordHash, userID)
	if err != nil {
		return wrapErr(err, "account", "update")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("account")
	}
	return nil
}

var _ CredentialRepository = (*PGCredentialRepository)(nil)
