package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common/security"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/platform/config"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/platform/database"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/platform/logging"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/platform/pubsub"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/realtime"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env)
	logger.Info().Str("env", cfg.Env).Msg("configuration loaded")

	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)

	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}
	logger.Info().Msg("database ready")

	rdb, err := pubsub.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	logger.Info().Msg("redis connected")

	userRepo := repository.NewPgUserRepository(db)
	bandRepo := repository.NewPgBandRepository(db)
	venueRepo := repository.NewPgVenueRepository(db)
	rehearsalRepo := repository.NewPgRehearsalRepository(db)
	availabilityRepo := repository.NewPgAvailabilityRepository(db)

	hub := realtime.NewHub(logger)
	bridge := realtime.NewBridge(rdb, hub, logger)
	publisher := realtime.NewRedisPublisher(rdb)

	realtimeCtx, realtimeCancel := context.WithCancel(context.Background())
	defer realtimeCancel()
	go hub.Run(realtimeCtx)
	go bridge.Run(realtimeCtx)
	logger.Info().Msg("realtime hub started")

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	bandService := service.NewBandService(bandRepo, userRepo)
	rehearsalService := service.NewRehearsalService(rehearsalRepo, venueRepo, publisher, logger)
	venueService := service.NewVenueService(venueRepo)
	availabilityService := service.NewAvailabilityService(availabilityRepo)

	router := api.NewRouter(api.Deps{
		Config:              cfg,
		Logger:              logger,
		Tokens:              tokens,
		UserRepo:            userRepo,
		BandRepo:            bandRepo,
		AuthService:         authService,
		UserService:         userService,
		BandService:         bandService,
		RehearsalService:    rehearsalService,
		VenueService:        venueService,
		AvailabilityService: availabilityService,
		Hub:                 hub,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-stop

	logger.Info().Msg("shutting down")
	realtimeCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped gracefully")
}
