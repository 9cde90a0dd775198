// Package web содержит встроенные HTML-шаблоны страниц приложения.
//
// Шаблоны компилируются в бинарник через embed, парсятся один раз при старте
// и рендерятся по базовому имени файла (login.html, upload.html и т.д.).
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

// Templates — распарсенный набор страниц приложения.
type Templates struct {
	t *template.Template
}

// New парсит все встроенные шаблоны.
func New() (*Templates, error) {
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{t: t}, nil
}

// Render рендерит страницу name с данными data.
func (tp *Templates) Render(w io.Writer, name string, data any) error {
	return tp.t.ExecuteTemplate(w, name, data)
}
