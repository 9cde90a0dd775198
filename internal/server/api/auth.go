// HTTP-хендлеры страниц регистрации, логина и logout
package api

import (
	"errors"
	"net/http"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// Inline-сообщения форм. Тексты фиксированы: их проверяют тесты
// и показывает пользователю та же форма, что породила ошибку.
const (
	MsgEmailExists        = "Email already exists."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgInvalidInput       = "Please fill in all fields correctly (password of 8+ characters)."
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmptyUpload        = "Please upload an image file."
	MsgProcessingError    = "Error processing the image or saving prediction."
)

// pageData — данные страниц с формой: только inline-сообщение.
type pageData struct {
	Message string
}

// Home отдаёт страницу входа (GET /).
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "login.html", pageData{})
}

// RegisterPage отдаёт форму регистрации (GET /register).
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "register.html", pageData{})
}

// Register обрабатывает сабмит формы регистрации.
//
// Поведение:
//   - дубликат email или несовпавшее подтверждение — та же форма
//     с inline-сообщением, пользователь в БД не создаётся;
//   - успех — редирект на /login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, "register.html", pageData{Message: MsgInvalidInput})
		return
	}

	_, err := h.Svc.Auth.Register(
		r.Context(),
		r.PostFormValue("name"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrAlreadyExists):
			h.renderPage(w, "register.html", pageData{Message: MsgEmailExists})
		case errors.Is(err, serr.ErrPasswordMismatch):
			h.renderPage(w, "register.html", pageData{Message: MsgPasswordMismatch})
		case errors.Is(err, serr.ErrInvalidInput):
			h.renderPage(w, "register.html", pageData{Message: MsgInvalidInput})
		default:
			h.Log.Logger.Sugar().Errorf("register failed: %v", err)
			h.renderPage(w, "register.html", pageData{Message: MsgInvalidInput})
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage отдаёт форму входа (GET /login).
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "login.html", pageData{})
}

// Login обрабатывает сабмит формы входа.
//
// Поведение:
//   - неверные данные — та же форма с "Invalid email or password";
//   - успех — сессионный cookie и редирект на /upload.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, "login.html", pageData{Message: MsgInvalidCredentials})
		return
	}

	token, err := h.Svc.Auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrInvalidCredentials):
			h.renderPage(w, "login.html", pageData{Message: MsgInvalidCredentials})
		default:
			h.Log.Logger.Sugar().Errorf("login failed: %v", err)
			h.renderPage(w, "login.html", pageData{Message: MsgInvalidCredentials})
		}
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

// Logout отзывает сессию (если она есть), чистит cookie и уводит на /login.
//
// Маршрут не требует аутентификации: logout без сессии — просто редирект.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		if err := h.Svc.Auth.Logout(r.Context(), sessionID); err != nil {
			h.Log.Logger.Sugar().Errorf("logout failed: %v", err)
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
