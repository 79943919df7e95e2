package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/payroll-portal-api/internal/auth"
	"github.com/payroll-portal-api/internal/config"
	"github.com/payroll-portal-api/internal/handler"
	"github.com/payroll-portal-api/internal/repository"
	"github.com/payroll-portal-api/internal/service"
)

//go:embed migrations
var embedMigrations embed.FS

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключение к БД
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := runMigrations(sqlDB); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	payslipRepo := repository.NewPayslipRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	employeeCatalog := repository.NewEmployeeCatalog(db)
	payslipCatalog := repository.NewPayslipCatalog(db)

	// Хранилища аутентификации
	sessions := auth.NewSessionStore(cfg.Auth.SessionTTL)
	otps := auth.NewOTPStore(cfg.Auth.OTPTTL)
	sender := &auth.ConsoleSender{Logger: logger}

	// Инициализация сервисов.
	// Провайдер идентификации не настроен - вход по токену отключён.
	authService := service.NewAuthService(empRepo, otps, sessions, sender, nil)
	empService := service.NewEmployeeService(empRepo)
	payslipService := service.NewPayslipService(payslipRepo)
	importService := service.NewImportService(employeeCatalog, payslipCatalog, uploadRepo)

	// Инициализация хендлеров
	authHandler := handler.NewAuthHandler(authService, logger)
	portalHandler := handler.NewPortalHandler(empService, payslipService, importService, logger)

	// Настройка роутера
	router := handler.NewRouter(authHandler, portalHandler, sessions, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < 30; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, _ := db.DB()
			if sqlDB.Ping() == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
