package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/crediflow/crediflow-api/internal/config"
	"github.com/crediflow/crediflow-api/internal/database"
	"github.com/crediflow/crediflow-api/internal/handlers"
	"github.com/crediflow/crediflow-api/internal/jobs"
	"github.com/crediflow/crediflow-api/internal/middleware"
	"github.com/crediflow/crediflow-api/internal/repository"
	"github.com/crediflow/crediflow-api/internal/services"
	"github.com/crediflow/crediflow-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title CrediFlow API
// @version 1.0
// @description Loan regrading and provisioning API for microfinance portfolios
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize quote cache when Redis is configured
	var cache *repository.QuoteCache
	if cfg.RedisAddr != "" {
		cache = repository.NewQuoteCache(cfg.RedisAddr, 5*time.Minute)
		logger.Info("Regrading quote cache enabled", "addr", cfg.RedisAddr)
	}

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, cache, worker, cfg, nil)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Loan viewing (officer or admin)
			staff := protected.Group("")
			staff.Use(middleware.RequireRole("admin", "officer"))
			{
				staff.GET("/loans/:loan_id", h.Loan.Show)
				staff.GET("/loans/:loan_id/ledger", h.Loan.Ledger)
				staff.GET("/loans/:loan_id/regrading_quote", h.Regrading.Quote)

				staff.GET("/provisioning_rates", h.Provisioning.Index)
				staff.GET("/provisioning_rates/by_days_late/:days", h.Provisioning.ShowByDaysLate)
				staff.GET("/provisioning_rates/:number", h.Provisioning.Show)
			}

			// Applying a regrading is admin only
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/loans/:loan_id/regrade", h.Regrading.Regrade)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Log overdue exposure daily so the provisioning report has a trail
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		count, err := svcs.Loan.CountOverdueInstallments(ctx, time.Now())
		if err != nil {
			return err
		}
		logger.Info("[Job] Overdue exposure", "open_overdue_installments", count)
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
