// JSON-эндпоинты для CLI-клиента (cmd/xray)
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse описывает успешный ответ регистрации.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse описывает успешный ответ входа пользователя.
type LoginResponse struct {
	Token string `json:"token"`
}

// UploadResponse описывает успешный результат классификации снимка.
type UploadResponse struct {
	Filename   string  `json:"filename"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// RecordsResponse описывает список записей владельца.
type RecordsResponse struct {
	Records []RecordResponse `json:"records"`
}

// RecordResponse — одна запись журнала в JSON-виде.
type RecordResponse struct {
	Filename   string  `json:"filename"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// APIRegister обрабатывает регистрацию через JSON API.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: пользователь уже существует;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) APIRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadForm)
		return
	}

	// у CLI нет отдельного поля подтверждения — confirm равен паролю
	id, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, err)
		default:
			h.Log.Logger.Sugar().Error("api register failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{UserID: id.String()})
}

// APILogin обрабатывает вход через JSON API и выдаёт сессионный токен.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadForm)
		return
	}

	token, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, err)
		default:
			h.Log.Logger.Sugar().Error("api login failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// APIUpload принимает multipart-снимок через JSON API (Bearer-авторизация).
//
// Ответы:
//   - 200 OK: метка и уверенность;
//   - 400 Bad Request: файл не передан;
//   - 401 Unauthorized: нет токена;
//   - 422 Unprocessable Entity: классификация не удалась;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) APIUpload(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrEmptyUpload)
		return
	}
	defer file.Close()

	res, err := h.Svc.Predictions.Upload(r.Context(), email, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrEmptyUpload):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrInference):
			h.Log.Logger.Sugar().Errorf("api upload inference failed: %v", err)
			WriteError(w, http.StatusUnprocessableEntity, serr.ErrInference)
		default:
			h.Log.Logger.Sugar().Errorf("api upload failed: %v", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(UploadResponse{
		Filename:   res.Filename,
		Label:      res.Label,
		Confidence: res.Confidence,
	})
}

// APIRecords возвращает все записи текущей идентичности.
//
// Ответы:
//   - 200 OK: список записей (возможно пустой);
//   - 401 Unauthorized: нет токена;
//   - 500 Internal Server Error: ошибка хранилища.
func (h *Handler) APIRecords(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	records, err := h.Svc.Predictions.ListFor(r.Context(), email)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	resp := RecordsResponse{Records: make([]RecordResponse, 0, len(records))}
	for _, p := range records {
		resp.Records = append(resp.Records, toRecordResponse(p))
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(resp)
}

func toRecordResponse(p models.Prediction) RecordResponse {
	return RecordResponse{
		Filename:   p.Filename,
		Label:      p.Label,
		Confidence: p.Confidence,
		Timestamp:  p.Timestamp,
	}
}
