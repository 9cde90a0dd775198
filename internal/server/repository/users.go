package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Exists сообщает, занят ли email.
func (r *UsersRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`,
		email,
	).Scan(&exists)

	if err != nil {
		return false, serr.ErrInternal
	}
	return exists, nil
}

func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return uuid.Nil, serr.ErrAlreadyExists
			}
		}
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (uuid.UUID, string, string, error) {
	var (
		id   uuid.UUID
		name string
		hash string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&id, &name, &hash)

	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", "", serr.ErrNotFound
		}
		return uuid.Nil, "", "", serr.ErrInternal
	}

	return id, name, hash, nil
}
