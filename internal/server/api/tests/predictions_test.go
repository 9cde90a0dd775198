package tests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/api"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// multipartUpload собирает multipart-запрос с файловым полем "image".
func multipartUpload(t *testing.T, path, filename, content string, cookie *http.Cookie) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// Полный happy path: сохранение, классификация, запись, страница результата
func TestUpload_OK_RendersResult(t *testing.T) {
	e := newEnv(t)
	cookie := e.sessionCookie(t, "test@mail.com")

	e.uploads.EXPECT().
		Save(gomock.Any(), "chest.jpeg", gomock.Any()).
		Return(nil)
	e.uploads.EXPECT().
		Open(gomock.Any(), "chest.jpeg").
		Return(io.NopCloser(strings.NewReader("image-bytes")), nil)
	e.clf.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return(models.LabelPneumonia, 97.42, nil)
	e.predictions.EXPECT().
		Append(gomock.Any(), "test@mail.com", "chest.jpeg", models.LabelPneumonia, 97.42, gomock.Any()).
		Return(uuid.New(), nil)
	e.uploads.EXPECT().
		URL(gomock.Any(), "chest.jpeg").
		Return("/static/uploads/chest.jpeg", nil)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, multipartUpload(t, "/upload", "chest.jpeg", "image-bytes", cookie))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, models.LabelPneumonia)
	require.Contains(t, body, "97.42")
	require.Contains(t, body, "chest.jpeg")
	require.Contains(t, body, "test@mail.com")
}

// Без файла — inline-сообщение, классификатор не вызывается
func TestUpload_NoFile_InlineMessage(t *testing.T) {
	e := newEnv(t)
	cookie := e.sessionCookie(t, "test@mail.com")

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("no-multipart"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), api.MsgEmptyUpload)
}

// Сбой классификации — generic-сообщение, записи в журнале нет
func TestUpload_ClassifyFails_InlineMessage(t *testing.T) {
	e := newEnv(t)
	cookie := e.sessionCookie(t, "test@mail.com")

	e.uploads.EXPECT().
		Save(gomock.Any(), "chest.jpeg", gomock.Any()).
		Return(nil)
	e.uploads.EXPECT().
		Open(gomock.Any(), "chest.jpeg").
		Return(io.NopCloser(strings.NewReader("image-bytes")), nil)
	e.clf.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		Return("", 0.0, serr.ErrInference)
	// predictions.Append не ожидается

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, multipartUpload(t, "/upload", "chest.jpeg", "image-bytes", cookie))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), api.MsgProcessingError)
}

// Дашборд показывает записи владельца в порядке вставки
func TestDashboard_ListsRecords(t *testing.T) {
	e := newEnv(t)
	cookie := e.sessionCookie(t, "test@mail.com")

	e.predictions.EXPECT().
		ListByEmail(gomock.Any(), "test@mail.com").
		Return([]models.Prediction{
			{Filename: "a.jpeg", Label: models.LabelNormal, Confidence: 88.1, Timestamp: "2026-08-28 10:00:00"},
			{Filename: "b.jpeg", Label: models.LabelPneumonia, Confidence: 97.42, Timestamp: "2026-08-28 10:05:00"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "a.jpeg")
	require.Contains(t, body, "b.jpeg")
	require.Contains(t, body, "2026-08-28 10:05:00")
	// порядок вставки сохраняется
	require.Less(t, strings.Index(body, "a.jpeg"), strings.Index(body, "b.jpeg"))
}

// Отчёт: редирект на адрес сгенерированного PDF
func TestDownloadPDF_OK_Redirects(t *testing.T) {
	e := newEnv(t)
	cookie := e.sessionCookie(t, "test@mail.com")

	e.uploads.EXPECT().
		Open(gomock.Any(), "chest.jpeg").
		Return(io.NopCloser(strings.NewReader("image-bytes")), nil)
	e.gen.EXPECT().
		Render(gomock.Any(), "chest.jpeg", models.LabelPneumonia, 97.42, "test@mail.com").
		Return([]byte("%PDF-1.4"), nil)
	e.reports.EXPECT().
		Save(gomock.Any(), "report_chest.pdf", gomock.Any()).
		Return(nil)
	e.reports.EXPECT().
		URL(gomock.Any(), "report_chest.pdf").
		Return("/static/reports/report_chest.pdf", nil)

	req := httptest.NewRequest(http.MethodGet, "/download_pdf/chest.jpeg/PNEUMONIA/97.42", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/static/reports/report_chest.pdf", rec.Header().Get("Location"))
}

// Без сессии отчёт подписывается "Unknown"
func TestDownloadPDF_Anonymous_UnknownRequester(t *testing.T) {
	e := newEnv(t)

	e.uploads.EXPECT().
		Open(gomock.Any(), "chest.jpeg").
		Return(io.NopCloser(strings.NewReader("image-bytes")), nil)
	e.gen.EXPECT().
		Render(gomock.Any(), "chest.jpeg", models.LabelNormal, 88.1, "Unknown").
		Return([]byte("%PDF-1.4"), nil)
	e.reports.EXPECT().
		Save(gomock.Any(), "report_chest.pdf", gomock.Any()).
		Return(nil)
	e.reports.EXPECT().
		URL(gomock.Any(), "report_chest.pdf").
		Return("/static/reports/report_chest.pdf", nil)

	req := httptest.NewRequest(http.MethodGet, "/download_pdf/chest.jpeg/NORMAL/88.10", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
}

// Некорректная уверенность в URL
func TestDownloadPDF_BadConfidence_400(t *testing.T) {
	e := newEnv(t)

	for _, conf := range []string{"abc", "-1", "150"} {
		req := httptest.NewRequest(http.MethodGet, "/download_pdf/chest.jpeg/NORMAL/"+conf, nil)
		rec := httptest.NewRecorder()
		e.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "confidence %q", conf)
	}
}

// Снимка нет — 404
func TestDownloadPDF_ImageMissing_404(t *testing.T) {
	e := newEnv(t)

	e.uploads.EXPECT().
		Open(gomock.Any(), "missing.jpeg").
		Return(nil, serr.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/download_pdf/missing.jpeg/NORMAL/50.00", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
