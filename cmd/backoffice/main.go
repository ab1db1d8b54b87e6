package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/boozeclub/backoffice/internal/app"
	"github.com/boozeclub/backoffice/internal/auth"
	"github.com/boozeclub/backoffice/internal/bookings"
	"github.com/boozeclub/backoffice/internal/costing"
	"github.com/boozeclub/backoffice/internal/enquiries"
	"github.com/boozeclub/backoffice/internal/fx"
	"github.com/boozeclub/backoffice/internal/platform/cache"
	"github.com/boozeclub/backoffice/internal/platform/db"
	"github.com/boozeclub/backoffice/internal/quotes"
	"github.com/boozeclub/backoffice/internal/settings"
	"github.com/boozeclub/backoffice/internal/travel"
	"github.com/boozeclub/backoffice/jobs"
	"github.com/boozeclub/backoffice/report"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Error("apply schema", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	validate := validator.New()

	authRepo := auth.NewRepository(pool)
	if cfg.SeedUsername != "" && cfg.SeedPassword != "" {
		if err := auth.Seed(ctx, authRepo, cfg.SeedUsername, cfg.SeedDisplayName, cfg.SeedPassword); err != nil {
			logger.Error("seed operator", slog.Any("error", err))
			os.Exit(1)
		}
	}
	authService := auth.NewService(authRepo, []byte(cfg.AuthSecret), logger)
	authHandler := auth.NewHandler(logger, authService, validate, cfg.CookieSecure)

	settingsRepo := settings.NewRepository(pool)
	settingsHandler := settings.NewHandler(logger, settingsRepo)

	enquiriesRepo := enquiries.NewRepository(pool)
	enquiriesService := enquiries.NewService(enquiriesRepo)
	enquiriesHandler := enquiries.NewHandler(logger, enquiriesService, validate)

	quotesRepo := quotes.NewRepository(pool)
	costingRepo := costing.NewRepository(pool)
	costingService := costing.NewService(costingRepo, quotes.NewContextSource(quotesRepo), settingsRepo, logger)
	costingHandler := costing.NewHandler(logger, costingService)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	bookingsRepo := bookings.NewRepository(pool)
	bookingsService := bookings.NewService(bookingsRepo, jobs.NewNotifier(jobsClient, logger), logger)
	bookingsHandler := bookings.NewHandler(logger, bookingsService, validate)

	quotesService := quotes.NewService(quotesRepo, costingService, bookingsService, enquiriesService, settingsRepo, logger)
	quotesHandler := quotes.NewHandler(logger, quotesService, validate)

	fxService := fx.NewService(http.DefaultClient, redisClient, cfg.FXEndpoint, logger)
	fxHandler := fx.NewHandler(fxService)

	travelService := travel.NewService(http.DefaultClient, travel.Config{
		APIKey:           cfg.GoogleMapsAPIKey,
		DefaultOrigin:    cfg.TravelDefaultOrigin,
		DefaultFuelPrice: cfg.DefaultFuelPrice,
	})
	travelHandler := travel.NewHandler(logger, travelService)

	reportHandler := report.NewHandler(logger, quotesService, settingsRepo, fxService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      authHandler,
		EnquiriesHandler: enquiriesHandler,
		QuotesHandler:    quotesHandler,
		CostingHandler:   costingHandler,
		BookingsHandler:  bookingsHandler,
		SettingsHandler:  settingsHandler,
		FXHandler:        fxHandler,
		TravelHandler:    travelHandler,
		ReportHandler:    reportHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
