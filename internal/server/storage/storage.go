// Package storage содержит хранилища бинарного контента (снимки и отчёты).
//
// Хранилище абстрагировано интерфейсом Store с двумя реализациями:
//   - LocalStore — директория на диске, раздаваемая сервером как static;
//   - S3Store — S3-совместимый bucket (например MinIO), ссылки через presign.
//
// Одноимённые файлы затираются молча: дедупликации и версионирования нет.
package storage

import (
	"context"
	"io"
	"strings"
)

// Store — минимальный контракт области контента.
type Store interface {
	// Save записывает содержимое r под именем name, затирая существующий объект.
	Save(ctx context.Context, name string, r io.Reader) error
	// Open открывает сохранённый объект на чтение.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// URL возвращает адрес, по которому объект доступен браузеру.
	URL(ctx context.Context, name string) (string, error)
}

// SanitizeFilename приводит клиентское имя файла к безопасному локатору.
//
// Отрезаются компоненты пути, все символы кроме [A-Za-z0-9._-]
// заменяются на "_". Пустой результат (или состоящий из одних точек)
// означает непригодное имя — возвращается "".
func SanitizeFilename(name string) string {
	// отрезаем путь и для unix, и для windows разделителей
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	s := b.String()
	if strings.Trim(s, "._-") == "" {
		return ""
	}
	return s
}

// ReportName выводит детерминированное имя отчёта из имени снимка:
// всё до первой точки + "report_" префикс и расширение .pdf.
func ReportName(imageName string) string {
	stem := imageName
	if i := strings.Index(imageName, "."); i >= 0 {
		stem = imageName[:i]
	}
	return "report_" + stem + ".pdf"
}
