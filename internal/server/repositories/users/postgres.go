// Package users provides the PostgreSQL-backed repository for account records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/dbx"
	"github.com/toolly/toolly/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code raised by the username
// uniqueness constraint. The constraint, not the pre-insert existence check,
// is the authority on duplicates.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user and returns it with the server-assigned id.
// A duplicate username yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, totp_secret, totp_enabled)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.TOTPSecret, user.TOTPEnabled).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, COALESCE(email, ''), COALESCE(totp_secret, ''), totp_enabled
		FROM users
		WHERE username = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.TOTPSecret, &user.TOTPEnabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, COALESCE(email, ''), COALESCE(totp_secret, ''), totp_enabled
		FROM users
		WHERE id = $1
	`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.TOTPSecret, &user.TOTPEnabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// UsernameExists is an optimization for early signup feedback; the unique
// constraint remains the source of truth under races.
func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE username = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count > 0, nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, username string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $1
		WHERE username = $2
	`
	res, err := r.db.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// EnableTOTP stores the shared secret and flips the enrollment flag. Called
// only after the user has proven possession by echoing one valid code.
func (r *PostgresRepository) EnableTOTP(ctx context.Context, userID int64, secret string) error {
	query := `
		UPDATE users SET totp_secret = $1, totp_enabled = TRUE
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, secret, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
