package main

import (
	"context"
	"os"
	"time"

	"driveflow-docs-go/internal/api"
	"driveflow-docs-go/internal/domain/docs"
	"driveflow-docs-go/internal/domain/rental"
	"driveflow-docs-go/internal/pkg/logger"
	"driveflow-docs-go/internal/pkg/storage"
	"driveflow-docs-go/internal/pkg/tracing"

	"go.uber.org/zap"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Инициализируем логгер
	if err := logger.Init(getEnv("LOG_LEVEL", "info")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Log.Sync()

	// Инициализируем трейсинг
	tracingConfig := tracing.Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "driveflow-docs"),
		ServiceVersion: getEnv("VERSION", "dev"),
		Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
		CollectorURL:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
	shutdown, err := tracing.InitTracer(tracingConfig)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(err))
		}
	}()

	// Подключаемся к базе данных
	db, err := storage.NewPostgresDB(
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "driveflow"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
	)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connection established")

	// URL внешнего рендерера HTML -> PDF
	rendererURL := getEnv("RENDERER_URL", "http://gotenberg:3000")

	// Создаем сервисы
	rentalService := rental.NewService(db)
	docsService := docs.NewService(db, rendererURL)
	logger.Info("Services created", zap.String("renderer_url", rendererURL))

	// Наполняем хранилище стандартными шаблонами
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := docsService.SeedDefaults(seedCtx); err != nil {
		logger.Warn("Failed to seed default templates", zap.Error(err))
	}
	cancel()

	// Создаем и настраиваем сервер
	handlers := api.NewHandlers(docsService, rentalService)
	server := api.NewServer(handlers)
	server.SetupRoutes()

	addr := ":" + getEnv("PORT", "8080")
	if err := server.Start(addr); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
