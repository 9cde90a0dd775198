package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// PredictionsRepository реализует append-only хранилище результатов классификации.
// Записи никогда не обновляются и не удаляются.
type PredictionsRepository struct {
	db *sql.DB
}

// NewPredictionsRepository создаёт новый экземпляр PredictionsRepository.
func NewPredictionsRepository(db *sql.DB) *PredictionsRepository {
	return &PredictionsRepository{db: db}
}

// Append сохраняет одну запись результата классификации.
//
// ts — уже отформатированная строка "YYYY-MM-DD HH:MM:SS":
// в таком виде она показывается на дашборде и попадает в отчёт.
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *PredictionsRepository) Append(ctx context.Context, email, filename, label string, confidence float64, ts string) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO predictions (email, filename, label, confidence, ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		email, filename, label, confidence, ts,
	).Scan(&id)

	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

// ListByEmail возвращает все записи владельца в порядке вставки.
func (r *PredictionsRepository) ListByEmail(ctx context.Context, email string) ([]models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, filename, label, confidence, ts
		  FROM predictions
		 WHERE email = $1
		 ORDER BY seq
	`, email)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	var out []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.Email, &p.Filename, &p.Label, &p.Confidence, &p.Timestamp); err != nil {
			return nil, serr.ErrInternal
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return out, nil
}
