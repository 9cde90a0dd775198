// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - проверку сессионных токенов (cookie для страниц, Bearer для JSON API);
//   - раздачу статики (загруженные снимки и PDF-отчёты) при локальном хранилище.
package http

import (
	"net/http"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/api"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	"github.com/go-chi/chi/v5"
)

// StaticMount описывает каталог локального хранилища,
// который нужно раздавать по URL-префиксу.
type StaticMount struct {
	Pattern string // URL-префикс, например /static/uploads
	Dir     string // каталог на диске
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные страницы регистрации и входа;
//   - группу страниц за PageAuth (загрузка снимка, дашборд);
//   - выход и скачивание отчёта за Optional (идентичность берётся из сессии,
//     но её отсутствие не блокирует запрос);
//   - JSON API под префиксом /api (Bearer-токен для защищённых маршрутов);
//   - middleware логирования для всех запросов.
func NewRouter(h *api.Handler, static ...StaticMount) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())

	// Публичные страницы
	r.Get("/", h.Home)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)

	// Идентичность опциональна: без сессии запрос не блокируется
	r.Group(func(r chi.Router) {
		r.Use(h.Verifier.Optional())
		r.Get("/logout", h.Logout)
		r.Get("/download_pdf/{filename}/{label}/{confidence}", h.DownloadPDF)
	})

	// Страницы только для аутентифицированных
	r.Group(func(r chi.Router) {
		r.Use(h.Verifier.PageAuth())
		r.Get("/upload", h.UploadPage)
		r.Post("/upload", h.Upload)
		r.Get("/dashboard", h.Dashboard)
	})

	// JSON API для CLI-клиента
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.APIRegister)
		r.Post("/login", h.APILogin)
		r.Group(func(r chi.Router) {
			r.Use(h.Verifier.APIAuth())
			r.Post("/upload", h.APIUpload)
			r.Get("/records", h.APIRecords)
		})
	})

	// Статика локального хранилища (при S3 ссылки ведут напрямую в бакет)
	for _, m := range static {
		fs := http.StripPrefix(m.Pattern, http.FileServer(http.Dir(m.Dir)))
		r.Handle(m.Pattern+"/*", fs)
	}

	return r
}
