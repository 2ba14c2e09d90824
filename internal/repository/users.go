package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"io.winapps.traveljournal/internal/apperr"
	models "io.winapps.traveljournal/internal/models/account"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new account and returns its id. A username or email
// collision surfaces as a conflict error.
func (r *UserRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query, username, email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Wrap(apperr.Conflict, "Username or email already registered", err)
		}
		return 0, apperr.Wrap(apperr.Storage, "Failed to create user", err)
	}
	return id, nil
}

// FindUserByUsername loads an account by username.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Storage, "Failed to load user", err)
	}
	return &user, nil
}

// FindUserByID loads an account by id.
func (r *UserRepository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Storage, "Failed to load user", err)
	}
	return &user, nil
}
