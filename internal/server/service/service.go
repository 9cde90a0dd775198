// Package service содержит бизнес-логику приложения (Pneumonia-Prediction).
// Это прослойка между HTTP-обработчиками (api) и хранилищами данных
// (repository, storage) плюс адаптером inference-сервера.
package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/config"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users       UsersRepo
	Sessions    SessionsRepo
	Predictions PredictionsRepo
}

// Stores — области бинарного контента: загруженные снимки и готовые отчёты.
type Stores struct {
	Uploads ImageStore
	Reports ImageStore
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth        *AuthService
	Predictions *PredictionsService
	Reports     *ReportsService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля и сессионных токенов).
func NewServices(repos Repositories, stores Stores, clf Classifier, gen ReportRenderer, cfg *config.Config) *Services {
	return &Services{
		Auth:        NewAuthService(repos.Users, repos.Sessions, cfg),
		Predictions: NewPredictionsService(repos.Predictions, stores.Uploads, clf),
		Reports:     NewReportsService(stores.Uploads, stores.Reports, gen),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (uuid.UUID, string, string, error)
}

// SessionsRepo — серверные записи браузерных сессий.
type SessionsRepo interface {
	Create(ctx context.Context, userID uuid.UUID, email string, expiresAt time.Time) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (email string, expiresAt time.Time, revokedAt *time.Time, err error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// PredictionsRepo — append-only журнал результатов классификации.
type PredictionsRepo interface {
	Append(ctx context.Context, email, filename, label string, confidence float64, ts string) (uuid.UUID, error)
	ListByEmail(ctx context.Context, email string) ([]models.Prediction, error)
}

// Classifier — непрозрачная модель: картинка на входе, метка и уверенность на выходе.
type Classifier interface {
	Classify(ctx context.Context, r io.Reader) (label string, confidence float64, err error)
}

// ImageStore — область контента (снимки либо отчёты).
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	URL(ctx context.Context, name string) (string, error)
}

// ReportRenderer — генератор одностраничного PDF-отчёта.
type ReportRenderer interface {
	Render(img io.Reader, filename, label string, confidence float64, requester string) ([]byte, error)
}
