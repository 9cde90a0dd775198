// Package main содержит точку входа серверного приложения Pneumonia-Prediction.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - инициализацию подключения к базе данных и управление его жизненным циклом;
//   - выбор backend'а хранилища снимков и отчётов (локальные каталоги или S3);
//   - создание репозиториев, сервисов, inference-клиента, middleware и HTTP-обработчиков;
//   - настройку и запуск сервера с заданными таймаутами (TLS при включённой опции);
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/api"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/config"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/inference"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/middleware"
	h "github.com/Ruthu543/Pneumonia-Prediction/internal/server/net/http"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/report"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/repository"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/service"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/storage"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/server/web"
	"github.com/Ruthu543/Pneumonia-Prediction/internal/shared/logger"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	sugar := logger.NewHTTPLogger().Logger.Sugar()
	httpLogger := logger.NewHTTPLogger()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		sugar.Fatal(err)
	}
	// подключаем базу данных
	if err := config.Init(cfg.DB.DSN); err != nil {
		sugar.Fatal(err)
	}

	// возвращаем указатель на db
	db := config.GetDB()
	// делаем отложенное закрытие бд
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	// хранилище снимков и отчётов: локальные каталоги или S3
	var (
		uploads storage.Store
		reports storage.Store
		static  []h.StaticMount
	)
	switch cfg.Storage.Backend {
	case "s3":
		ctx := context.Background()
		uploads, err = storage.NewS3Store(ctx, cfg.Storage.S3, "uploads")
		if err != nil {
			sugar.Fatalf("s3 uploads store: %v", err)
		}
		reports, err = storage.NewS3Store(ctx, cfg.Storage.S3, "reports")
		if err != nil {
			sugar.Fatalf("s3 reports store: %v", err)
		}
	default:
		up, err := storage.NewLocalStore(cfg.Storage.Local.UploadDir, "/static/uploads")
		if err != nil {
			sugar.Fatalf("uploads dir: %v", err)
		}
		rp, err := storage.NewLocalStore(cfg.Storage.Local.ReportDir, "/static/reports")
		if err != nil {
			sugar.Fatalf("reports dir: %v", err)
		}
		uploads, reports = up, rp
		static = []h.StaticMount{
			{Pattern: "/static/uploads", Dir: up.Dir()},
			{Pattern: "/static/reports", Dir: rp.Dir()},
		}
	}

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	sessionsRepo := repository.NewSessionsRepository(db)
	predictionsRepo := repository.NewPredictionsRepository(db)
	// складываем в репозиторий
	repos := service.Repositories{
		Users:       usersRepo,
		Sessions:    sessionsRepo,
		Predictions: predictionsRepo,
	}
	// inference-клиент к внешнему серверу модели
	clf := inference.NewClient(cfg.Model.Endpoint, cfg.Model.TargetSize, cfg.Model.Timeout)
	// генератор PDF-отчётов
	gen := report.NewGenerator()
	// создаём сервис
	svc := service.NewServices(repos, service.Stores{Uploads: uploads, Reports: reports}, clf, gen, cfg)
	// проверка сессионных токенов
	verifier := middleware.NewSessionVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.CookieName,
		sessionsRepo,
	)
	// HTML-шаблоны
	views, err := web.New()
	if err != nil {
		sugar.Fatalf("templates: %v", err)
	}
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, verifier, views)
	handler.CookieTTL = cfg.Auth.SessionTTL
	handler.CookieSecure = cfg.TLS.Enabled
	handler.MaxUploadBytes = cfg.Server.MaxUploadBytes
	// создаём роутер
	router := h.NewRouter(handler, static...)
	// создаём сервер
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		var serveErr error
		if cfg.TLS.Enabled {
			serveErr = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			ctx,
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}
