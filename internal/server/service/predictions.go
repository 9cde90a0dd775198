package service

import (
	"context"
	"io"
	"time"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/models"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/storage"
	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/utils"
)

// PredictionsService реализует пайплайн upload -> classify -> record.
//
// Последовательность строго такая:
//   - санитизация имени и сохранение снимка в область контента;
//   - один блокирующий вызов классификатора;
//   - append-запись результата в журнал.
//
// Сбой классификации означает, что запись НЕ создаётся.
type PredictionsService struct {
	records PredictionsRepo
	uploads ImageStore
	clf     Classifier

	now func() time.Time
}

// UploadResult — результат успешного прохождения пайплайна.
type UploadResult struct {
	Filename   string
	Label      string
	Confidence float64
	Email      string
	ImageURL   string
}

// NewPredictionsService создаёт PredictionsService.
func NewPredictionsService(records PredictionsRepo, uploads ImageStore, clf Classifier) *PredictionsService {
	return &PredictionsService{
		records: records,
		uploads: uploads,
		clf:     clf,
		now:     time.Now,
	}
}

// Upload прогоняет загруженный снимок через полный пайплайн.
//
// email — идентичность владельца (из сессии), filename — клиентское имя файла,
// file — содержимое загрузки.
//
// Ошибки:
//   - ErrEmptyUpload — файл не передан или имя после санитизации пустое;
//   - ErrInference — классификация не удалась (записи в журнале нет);
//   - ErrInternal — сбой хранилища или журнала.
func (s *PredictionsService) Upload(ctx context.Context, email, filename string, file io.Reader) (UploadResult, error) {
	if file == nil || filename == "" {
		return UploadResult{}, serr.ErrEmptyUpload
	}

	name := storage.SanitizeFilename(filename)
	if name == "" {
		return UploadResult{}, serr.ErrEmptyUpload
	}

	// одноимённый снимок затирается молча
	if err := s.uploads.Save(ctx, name, file); err != nil {
		return UploadResult{}, serr.ErrInternal
	}

	// классифицируем из области контента по локатору
	img, err := s.uploads.Open(ctx, name)
	if err != nil {
		return UploadResult{}, serr.ErrInternal
	}
	label, confidence, err := s.clf.Classify(ctx, img)
	img.Close()
	if err != nil {
		// на этом пути запись НЕ создаётся
		return UploadResult{}, err
	}

	ts := utils.FormatTimestamp(s.now())
	if _, err := s.records.Append(ctx, email, name, label, confidence, ts); err != nil {
		return UploadResult{}, err
	}

	// адрес для показа снимка на странице результата; ошибка не фатальна
	imgURL, _ := s.uploads.URL(ctx, name)

	return UploadResult{
		Filename:   name,
		Label:      label,
		Confidence: confidence,
		Email:      email,
		ImageURL:   imgURL,
	}, nil
}

// ListFor возвращает все записи владельца в порядке вставки.
func (s *PredictionsService) ListFor(ctx context.Context, email string) ([]models.Prediction, error) {
	return s.records.ListByEmail(ctx, email)
}
