package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medlyst-gateway/config"
	deliveryHttp "medlyst-gateway/internal/delivery/http"
	"medlyst-gateway/internal/delivery/http/handler"
	"medlyst-gateway/internal/delivery/http/middleware"
	"medlyst-gateway/internal/infrastructure/backend"
	"medlyst-gateway/internal/infrastructure/cache"
	"medlyst-gateway/internal/repository"
	"medlyst-gateway/internal/service"
	"medlyst-gateway/internal/usecase"
	"medlyst-gateway/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the gateway
type App struct {
	Config      *config.Config
	RedisClient *redis.Client
	History     *repository.SQLiteBookingHistory
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize Redis (optional directory cache)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize local booking history
	history, err := repository.NewSQLiteBookingHistory(cfg.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open booking history: %w", err)
	}
	app.History = history
	logrus.Info("Booking history store ready")

	// Initialize all layers
	server := initializeServer(cfg, redisClient, history)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, redisClient *redis.Client, history *repository.SQLiteBookingHistory) *http.Server {
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize external collaborators
	backendClient := backend.NewClient(cfg.Backend, log)
	mailer := service.NewEmailJSMailer(cfg.Email, log)

	// Initialize usecases
	directoryUsecase := usecase.NewDirectoryUsecase(backendClient, redisClient, log, cfg.Directory.CacheTTL)
	sessionUsecase := usecase.NewBookingSessionUsecase(log, directoryUsecase, backendClient, mailer, history, cfg.Session.ResetDelay, cfg.Session.TTL)
	historyUsecase := usecase.NewBookingHistoryUsecase(log, history)
	adminUsecase := usecase.NewAdminUsecase(log, backendClient, directoryUsecase)

	// Initialize handlers
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase)
	sessionHandler := handler.NewBookingSessionHandler(sessionUsecase, customValidator)
	historyHandler := handler.NewBookingHistoryHandler(historyUsecase)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)

	// Initialize middleware
	adminKeyMiddleware := middleware.NewAdminKeyMiddleware(cfg.Admin.APIKey)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(directoryHandler, sessionHandler, historyHandler, adminHandler, adminKeyMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Warm the directory so the first page load doesn't wait on the
	// backend round trip.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := directoryUsecase.Refresh(ctx); err != nil {
			logrus.Warnf("Initial directory refresh failed: %v", err)
		}
	}()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Gateway starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down gateway...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Gateway shutdown complete")
}

// Close closes all connections (history store, redis)
func (app *App) Close() {
	if app.History != nil {
		app.History.Close()
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
