package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aharonidan/bopdial/config"
	"github.com/aharonidan/bopdial/db"
	"github.com/aharonidan/bopdial/events"
	"github.com/aharonidan/bopdial/handlers"
	"github.com/aharonidan/bopdial/middleware"
	"github.com/aharonidan/bopdial/repositories"
	api "github.com/aharonidan/bopdial/routes"
	"github.com/aharonidan/bopdial/services"
	"github.com/aharonidan/bopdial/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	flagUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize flag uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("flag uploader initialized")

	// Repositories
	accountRepo := repositories.NewPostgresAccountRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	betRepo := repositories.NewPostgresBetRepository(dbConn)
	settingRepo := repositories.NewPostgresSettingRepository(dbConn)
	logger.Info("repositories initialized")

	// Services
	clock := services.NewRealClock()
	bus := events.NewBus()

	lockService := services.NewLockService(matchRepo, clock)
	bonusService := services.NewBonusService(settingRepo, teamRepo)
	scoringService := services.NewScoringService(repositories.NewSQLTxRunner(dbConn), userRepo, betRepo, bonusService, logger)
	leaderboardService := services.NewLeaderboardService(betRepo, matchRepo, userRepo, clock, cfg.Location)
	statsService := services.NewStatsService(betRepo, lockService, clock)

	authService := services.NewAuthService(userRepo, accountRepo)
	userService := services.NewUserService(userRepo, lockService)
	betService := services.NewBetService(betRepo, matchRepo, lockService, clock)
	matchService := services.NewMatchService(matchRepo, bus, logger)
	teamService := services.NewTeamService(teamRepo, flagUploader)
	settingService := services.NewSettingService(settingRepo, teamRepo)
	accountService := services.NewAccountService(accountRepo)
	logger.Info("services initialized")

	// Every recorded result triggers a full recompute of user totals.
	bus.SubscribeMatchResult(func(ctx context.Context, event events.MatchResultRecorded) {
		if err := scoringService.RecomputeAllTotals(ctx); err != nil {
			logger.Error("totals recompute failed",
				slog.Int("match_id", event.MatchID),
				slog.Any("error", err),
			)
		}
	})

	// Handlers
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	betHandler := handlers.NewBetHandler(betService)
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	accountHandler := handlers.NewAccountHandler(accountService, userService)
	settingHandler := handlers.NewSettingHandler(settingService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, userService)
	statsHandler := handlers.NewStatsHandler(statsService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		userHandler,
		betHandler,
		matchHandler,
		teamHandler,
		accountHandler,
		settingHandler,
		leaderboardHandler,
		statsHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
