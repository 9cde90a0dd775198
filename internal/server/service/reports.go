package service

import (
	"bytes"
	"context"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/storage"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
)

// ReportsService собирает PDF-отчёт по сохранённому снимку и результату,
// переданному в параметрах URL, и кладёт его в область отчётов.
type ReportsService struct {
	uploads ImageStore
	reports ImageStore
	gen     ReportRenderer
}

// NewReportsService создаёт ReportsService.
func NewReportsService(uploads, reports ImageStore, gen ReportRenderer) *ReportsService {
	return &ReportsService{
		uploads: uploads,
		reports: reports,
		gen:     gen,
	}
}

// Generate рендерит отчёт и возвращает URL, по которому он доступен браузеру.
//
// Имя отчёта детерминировано выводится из имени снимка (report_<stem>.pdf),
// прежний отчёт с тем же именем затирается.
//
// Ошибки:
//   - ErrNotFound — снимок с таким локатором отсутствует;
//   - ErrInternal — сбой рендеринга или хранилища.
func (s *ReportsService) Generate(ctx context.Context, filename, label string, confidence float64, requester string) (string, error) {
	// повторная санитизация: filename приходит из URL
	name := storage.SanitizeFilename(filename)
	if name == "" {
		return "", serr.ErrNotFound
	}

	img, err := s.uploads.Open(ctx, name)
	if err != nil {
		return "", serr.ErrNotFound
	}
	defer img.Close()

	pdf, err := s.gen.Render(img, name, label, confidence, requester)
	if err != nil {
		return "", serr.ErrInternal
	}

	reportName := storage.ReportName(name)
	if err := s.reports.Save(ctx, reportName, bytes.NewReader(pdf)); err != nil {
		return "", serr.ErrInternal
	}

	return s.reports.URL(ctx, reportName)
}
