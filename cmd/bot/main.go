package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablebot/internal/catalog"
	"tablebot/internal/config"
	"tablebot/internal/handler"
	"tablebot/internal/i18n"
	"tablebot/internal/middleware"
	"tablebot/internal/queue"
	"tablebot/internal/repository"
	memorystore "tablebot/internal/repository/memory"
	"tablebot/internal/repository/postgres"
	redisstore "tablebot/internal/repository/redis"
	"tablebot/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting TableBot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Reference data and templates are static; a broken table must stop
	// the process here, not surface mid-conversation
	if err := catalog.Validate(); err != nil {
		logger.Fatal("Catalog validation failed", zap.Error(err))
	}
	templates := i18n.Default()
	if err := templates.Validate(); err != nil {
		logger.Fatal("Template validation failed", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Session store backend
	sessions := buildSessionStore(cfg, logger)

	// Reservation event publishing is optional
	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL)
		logger.Info("Reservation event publishing enabled")
	}

	// Initialize services
	reservationRepo := postgres.NewReservationRepo(db)
	reservationService := service.NewReservationService(reservationRepo, publisher, logger)
	engine := service.NewEngine(sessions, reservationService, service.NewValidator(cfg), templates, cfg, logger)
	sweeper := service.NewSweepService(sessions, time.Minute, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	handler.NewTelegram(bot, engine, logger).Register()

	// Admin API
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	if cfg.AdminToken != "" {
		e.Use(middleware.AdminAuth(cfg.AdminToken, logger))
	}
	handler.NewAdmin(sessions, reservationService, logger).Register(e)

	logger.Info("Handlers registered")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sweeper.Run(ctx)

	go func() {
		logger.Info("Admin API listening", zap.String("addr", cfg.AdminAddr))
		if err := e.Start(cfg.AdminAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("Admin API stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Admin API shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

// buildSessionStore selects the configured session backend. An unreachable
// redis degrades to the in-memory store with a warning so the bot still
// comes up.
func buildSessionStore(cfg *config.Config, logger *zap.Logger) repository.SessionStore {
	if cfg.SessionBackend != "redis" {
		logger.Info("Using in-memory session store")
		return memorystore.NewSessionStore(cfg.SessionTimeout)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory session store",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		return memorystore.NewSessionStore(cfg.SessionTimeout)
	}

	logger.Info("Using redis session store", zap.String("addr", cfg.Redis.Addr))
	return redisstore.NewSessionStore(client, cfg.SessionTimeout)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
