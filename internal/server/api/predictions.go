// HTTP-хендлеры пайплайна: загрузка снимка, результат, дашборд, PDF-отчёт
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// uploadData — данные формы загрузки (inline-сообщение при ошибке).
type uploadData struct {
	Message string
}

// dashboardData — данные страницы истории.
type dashboardData struct {
	Email   string
	Records []models.Prediction
}

// UploadPage отдаёт форму загрузки снимка (GET /upload, за PageAuth).
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "upload.html", uploadData{})
}

// Upload обрабатывает POST /upload: ingest -> classify -> record -> result view.
//
// Поведение:
//   - нет файла или пустое имя — форма загрузки с "Please upload an image file.";
//   - сбой классификации или записи — форма загрузки с generic-сообщением,
//     запись в журнале при этом НЕ создаётся;
//   - успех — страница результата с меткой, уверенностью, файлом и email.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		h.renderPage(w, "upload.html", uploadData{Message: MsgEmptyUpload})
		return
	}
	defer file.Close()

	res, err := h.Svc.Predictions.Upload(r.Context(), email, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrEmptyUpload):
			h.renderPage(w, "upload.html", uploadData{Message: MsgEmptyUpload})
		default:
			// причина остаётся в server-side логе, пользователю — generic
			h.Log.Logger.Sugar().Errorf("upload pipeline failed: %v", err)
			h.renderPage(w, "upload.html", uploadData{Message: MsgProcessingError})
		}
		return
	}

	h.renderPage(w, "result.html", res)
}

// Dashboard отдаёт все записи текущей идентичности (GET /dashboard, за PageAuth).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	records, err := h.Svc.Predictions.ListFor(r.Context(), email)
	if err != nil {
		h.Log.Logger.Sugar().Errorf("dashboard list failed: %v", err)
		http.Error(w, serr.ErrInternal.Error(), http.StatusInternalServerError)
		return
	}

	h.renderPage(w, "dashboard.html", dashboardData{Email: email, Records: records})
}

// DownloadPDF генерирует отчёт по параметрам URL и редиректит на его адрес.
//
// GET /download_pdf/{filename}/{label}/{confidence}
//
// Маршрут читает email сессии, но не требует её: без сессии
// в отчёт попадает "Unknown" (поведение исходного приложения).
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	label := chi.URLParam(r, "label")

	confidence, err := strconv.ParseFloat(chi.URLParam(r, "confidence"), 64)
	if err != nil || confidence < 0 || confidence > 100 {
		http.Error(w, serr.ErrInvalidInput.Error(), http.StatusBadRequest)
		return
	}

	requester := "Unknown"
	if email, ok := middleware.IdentityFromContext(r.Context()); ok {
		requester = email
	}

	url, err := h.Svc.Reports.Generate(r.Context(), filename, label, confidence, requester)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			http.Error(w, serr.ErrNotFound.Error(), http.StatusNotFound)
		default:
			h.Log.Logger.Sugar().Errorf("report generation failed: %v", err)
			http.Error(w, serr.ErrInternal.Error(), http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}
