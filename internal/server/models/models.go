// Серверные модели предметной области
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — зарегистрированный пользователь. Ключ идентичности — email.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session — серверная запись браузерной сессии.
//
// Создаётся при логине, отзывается при logout. Идентификатор сессии
// попадает в jti подписанного токена (cookie).
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Prediction — одна append-only запись результата классификации снимка.
//
// Timestamp хранится строкой "YYYY-MM-DD HH:MM:SS" — в таком виде
// запись показывается на дашборде и в отчёте.
type Prediction struct {
	ID         uuid.UUID
	Email      string
	Filename   string
	Label      string
	Confidence float64
	Timestamp  string
}

// Метки классов модели: индекс 0 — NORMAL, индекс 1 — PNEUMONIA.
const (
	LabelNormal    = "NORMAL"
	LabelPneumonia = "PNEUMONIA"
)
