// Package api реализует HTTP-слой сервера Pneumonia-Prediction.
//
// Пакет отвечает за:
//   - обработку браузерных форм (регистрация, логин, загрузка снимка);
//   - рендеринг страниц (html/template из internal/server/web);
//   - JSON-эндпоинты для CLI-клиента;
//   - маппинг доменных ошибок (service/repository) в inline-сообщения форм
//     и HTTP-коды.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/service"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/web"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/logger"
)

// Каждый JSON-метод отвечает в application/json.
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: проверка сессионных токенов и middleware;
//   - Views: распарсенные HTML-шаблоны.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.SessionVerifier
	Views    *web.Templates

	// параметры сессионного cookie
	CookieName   string
	CookieTTL    time.Duration
	CookieSecure bool

	// лимит размера multipart-загрузки
	MaxUploadBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.SessionVerifier, views *web.Templates) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
		Views:    views,

		CookieName:     verifier.CookieName,
		CookieTTL:      12 * time.Hour,
		MaxUploadBytes: 16 << 20,
	}
}

// ErrorResponse стандартный формат ошибки JSON API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Вспомогательная функция вывода ошибки JSON API
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// renderPage рендерит страницу; сбой рендеринга — это уже 500 без красивой формы.
func (h *Handler) renderPage(w http.ResponseWriter, name string, data any) {
	if err := h.Views.Render(w, name, data); err != nil {
		h.Log.Logger.Sugar().Errorf("render %s failed: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// setSessionCookie выставляет HttpOnly cookie с подписанным токеном.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie затирает сессионный cookie.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
