// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// SessionsRepository отвечает за хранение серверных записей браузерных сессий.
//
// Используется для:
//   - привязки подписанного cookie-токена (jti) к пользователю;
//   - проверки срока жизни сессии на каждом защищённом запросе;
//   - отзыва сессии при logout.
type SessionsRepository struct {
	db *sql.DB
}

// NewSessionsRepository создает новый SessionsRepository.
func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// Create создаёт новую сессию пользователя.
//
// Сохраняет:
//   - userID и email владельца
//   - срок действия
//
// Возвращает:
//   - id созданной сессии (он попадает в jti токена)
//   - ErrInternal при ошибках БД
func (r *SessionsRepository) Create(ctx context.Context, userID uuid.UUID, email string, expiresAt time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sessions (user_id, email, expires_at)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		userID, email, expiresAt,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, serr.ErrInternal
	}
	return id, nil
}

// GetByID возвращает сессию по её id (jti токена).
//
// Возвращает:
//   - email владельца
//   - expiresAt
//   - revokedAt (nil если активна)
//
// Ошибки:
//   - ErrUnauthorized если сессия не найдена или ErrInternal при ошибке БД
func (r *SessionsRepository) GetByID(ctx context.Context, id uuid.UUID) (string, time.Time, *time.Time, error) {
	var (
		email     string
		expiresAt time.Time
		revokedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT email, expires_at, revoked_at
		   FROM sessions
		  WHERE id=$1`,
		id,
	).Scan(&email, &expiresAt, &revokedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", time.Time{}, nil, serr.ErrUnauthorized
		}
		return "", time.Time{}, nil, serr.ErrInternal
	}

	var revokedPtr *time.Time
	if revokedAt.Valid {
		t := revokedAt.Time
		revokedPtr = &t
	}

	return email, expiresAt, revokedPtr, nil
}

// Revoke отзывает сессию по id.
//
// Используется при logout. Повторный отзыв не ошибка.
func (r *SessionsRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now()
		  WHERE id = $1
		    AND revoked_at IS NULL`,
		id,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}
