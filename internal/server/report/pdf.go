// Package report содержит генератор одностраничных PDF-отчётов
// по результату классификации снимка.
package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	serr "github.com/Ruthu543/Pneumonia-Prediction/internal/shared/errors"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/utils"
)

// Generator рендерит PDF-отчёт по снимку и результату классификации.
//
// Генератор детерминирован по имени выхода: повторный вызов для того же
// снимка затирает прежний отчёт, дубликаты не создаются.
type Generator struct {
	now func() time.Time
}

// NewGenerator создаёт генератор отчётов.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Render собирает одностраничный PDF:
// заголовок, дата, владелец, метка, уверенность и сам снимок (x=10, y=60, w=100).
//
// img — содержимое исходного снимка, filename — его локатор
// (по расширению определяется формат картинки для встраивания).
//
// Возвращает байты PDF. Ошибки рендеринга приводятся к ErrInternal.
func (g *Generator) Render(img io.Reader, filename, label string, confidence float64, requester string) ([]byte, error) {
	raw, err := io.ReadAll(img)
	if err != nil {
		return nil, serr.ErrInternal
	}

	imgType := imageType(filename)
	if imgType == "" {
		return nil, serr.ErrInternal
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(200, 10, "Pneumonia Detection Report", "", 1, "C", false, 0, "")
	pdf.CellFormat(200, 10, "Date: "+utils.FormatTimestamp(g.now()), "", 1, "L", false, 0, "")
	pdf.CellFormat(200, 10, "User: "+requester, "", 1, "L", false, 0, "")
	pdf.CellFormat(200, 10, "Result: "+label, "", 1, "L", false, 0, "")
	pdf.CellFormat(200, 10, fmt.Sprintf("Confidence: %.2f%%", confidence), "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader(filename, opts, bytes.NewReader(raw))
	pdf.ImageOptions(filename, 10, 60, 100, 0, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, serr.ErrInternal
	}
	return buf.Bytes(), nil
}

// imageType сопоставляет расширение файла типу картинки, который понимает fpdf.
func imageType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return ""
	}
}
