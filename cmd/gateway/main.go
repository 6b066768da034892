package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/application"
	"github.com/DanielPopoola/donation-gateway/internal/application/services"
	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/archive"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/notification"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/persistence"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/donation-gateway/internal/infrastructure/processor"
	"github.com/DanielPopoola/donation-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/donation-gateway/internal/worker"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting donation gateway",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	maxAmount := decimal.Zero
	if cfg.Donation.MaxAmount != "" {
		maxAmount, err = decimal.NewFromString(cfg.Donation.MaxAmount)
		if err != nil {
			logger.Error("invalid donation max amount", "value", cfg.Donation.MaxAmount, "error", err)
			os.Exit(1)
		}
	}

	donationRepo := postgres.NewDonationRepository(db.Pool)

	processorClient := processor.NewHTTPClient(cfg.Processor, cfg.Callback.URL, logger)
	tokenCache := processor.NewTokenCache(processorClient, application.Credentials{
		Username:   cfg.Processor.Username,
		Password:   cfg.Processor.Password,
		MerchantID: cfg.Processor.MerchantID,
	}, cfg.Token, logger)
	retryStatusClient := processor.NewRetryStatusClient(processorClient, cfg.Retry)

	var notifier application.Notifier = notification.NewLogNotifier(logger)
	if cfg.Notifier.Host != "" {
		notifier = notification.NewSMTPNotifier(cfg.Notifier, logger)
	}
	asyncNotifier := notification.NewAsync(notifier, cfg.Notifier.Timeout, logger)

	var callbackArchive application.CallbackArchive = archive.Nop{}
	if cfg.Archive.Bucket != "" {
		s3Archive, err := archive.NewFromConfig(ctx, cfg.Archive, logger)
		if err != nil {
			logger.Error("failed to configure callback archive", "error", err)
			os.Exit(1)
		}
		callbackArchive = s3Archive
	}

	initiateService := services.NewInitiateService(
		donationRepo,
		processorClient,
		tokenCache,
		services.NewTimestampReferences(),
		maxAmount,
		logger,
	)
	callbackService := services.NewCallbackService(donationRepo, asyncNotifier, callbackArchive, logger)
	verifyService := services.NewVerifyService(donationRepo, processorClient, asyncNotifier, logger)
	queryService := services.NewQueryService(donationRepo)

	// The sweep gets its own verifier so only it retries processor calls.
	reconcileVerifier := services.NewVerifyService(donationRepo, retryStatusClient, asyncNotifier, logger)

	h := handlers.NewHandlers(
		initiateService,
		callbackService,
		verifyService,
		queryService,
		db,
		handlers.Options{
			ResultURL:        cfg.Callback.ResultURL,
			MaxCallbackBytes: cfg.Callback.MaxBodyBytes,
		},
		logger,
	)

	router := handlers.NewRouter(h, handlers.RouterConfig{
		RequestTimeout:    cfg.Server.RequestTimeout,
		InitiateRequests:  cfg.RateLimit.InitiateRequests,
		StatusRequests:    cfg.RateLimit.StatusRequests,
		RateWindow:        cfg.RateLimit.Window,
		AdminKey:          cfg.Admin.APIKey,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reconciler := worker.NewReconciler(
		donationRepo,
		reconcileVerifier,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		cfg.Worker.StaleAfter,
		cfg.Worker.MaxAttempts,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go reconciler.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if err := asyncNotifier.Wait(shutdownCtx); err != nil {
		logger.Warn("pending notifications abandoned", "error", err)
	}

	logger.Info("server exited")
}
