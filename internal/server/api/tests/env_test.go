package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/api"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/config"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/crypto"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	h "github.com/Ruthu543/Pneumonia-Prediction/internal/server/net/http"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/service"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/service/mocks"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/web"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/logger"
)

const testSigningKey = "supersecretkeysupersecretkey123456"

// env — тестовое окружение: полный роутер поверх моков хранилищ.
type env struct {
	router http.Handler

	users       *mocks.MockUsersRepo
	sessions    *mocks.MockSessionsRepo
	predictions *mocks.MockPredictionsRepo
	uploads     *mocks.MockImageStore
	reports     *mocks.MockImageStore
	clf         *mocks.MockClassifier
	gen         *mocks.MockReportRenderer
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "issuer",
			Audience:   "audience",
			SessionTTL: 12 * time.Hour,
			CookieName: "xray_session",
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: testSigningKey,
			},
		},
		Password: config.PasswordConfig{
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()

	ctrl := gomock.NewController(t)

	e := &env{
		users:       mocks.NewMockUsersRepo(ctrl),
		sessions:    mocks.NewMockSessionsRepo(ctrl),
		predictions: mocks.NewMockPredictionsRepo(ctrl),
		uploads:     mocks.NewMockImageStore(ctrl),
		reports:     mocks.NewMockImageStore(ctrl),
		clf:         mocks.NewMockClassifier(ctrl),
		gen:         mocks.NewMockReportRenderer(ctrl),
	}

	cfg := testConfig()

	svc := service.NewServices(
		service.Repositories{
			Users:       e.users,
			Sessions:    e.sessions,
			Predictions: e.predictions,
		},
		service.Stores{Uploads: e.uploads, Reports: e.reports},
		e.clf,
		e.gen,
		cfg,
	)

	verifier := middleware.NewSessionVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.CookieName,
		e.sessions,
	)

	views, err := web.New()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	handler := api.NewHandler(svc, logger.NewHTTPLogger(), verifier, views)
	e.router = h.NewRouter(handler)

	return e
}

// sessionCookie выпускает валидный токен и настраивает мок проверки сессии.
func (e *env) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	sessID := uuid.New()
	token, err := crypto.NewSessionToken(email, sessID, crypto.JWTConfig{
		Issuer:     "issuer",
		Audience:   "audience",
		SigningKey: testSigningKey,
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e.sessions.EXPECT().
		GetByID(gomock.Any(), sessID).
		Return(email, time.Now().Add(time.Hour), nil, nil).
		AnyTimes()

	return &http.Cookie{Name: "xray_session", Value: token}
}
