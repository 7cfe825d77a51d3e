package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dating-backend/internal/config"
	"dating-backend/internal/handlers"
	"dating-backend/internal/metrics"
	"dating-backend/internal/models"
	"dating-backend/internal/repository"
	"dating-backend/internal/repository/memory"
	"dating-backend/internal/repository/mongo"
	"dating-backend/internal/repository/postgres"
	"dating-backend/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func Run() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	path := *configPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}

	// Load configuration
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level, cfg.Log.Format)
	if path == "" {
		log.Warn().Str("path", *configPath).Msg("Config file not found, using environment and defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server exited")
}

// serve wires the application and blocks until ctx is cancelled and every
// owned task has returned.
func serve(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()

	policy, err := models.ParseTransitionPolicy(cfg.Dates.TransitionPolicy)
	if err != nil {
		return err
	}

	m := metrics.New()
	hub := services.NewWSHub()

	var pusher services.Pusher
	if cfg.APNS.KeyFile != "" {
		apns, err := services.NewAPNSPusher(cfg.APNS)
		if err != nil {
			return err
		}
		pusher = apns
		log.Info().Bool("production", cfg.APNS.Production).Msg("APNs push enabled")
	}
	notifier := services.NewParticipantNotifier(hub, store, pusher)

	// Initialize services
	authService := services.NewAuthService(store, store, cfg.JWT.Secret, cfg.JWT.TTL)
	userService := services.NewUserService(store, store)
	dateService := services.NewDateService(store, policy)
	dateService.SetNotifier(notifier)
	dateService.SetMetrics(m)

	photoService, err := services.NewPhotoService(ctx, store, cfg.AWS)
	if err != nil {
		return err
	}
	if cfg.AWS.S3Bucket == "" {
		log.Warn().Msg("S3 bucket not configured, photo uploads disabled")
	}

	matcherOpts := services.MatcherOptions{
		Interval:          cfg.Matcher.Interval,
		PairsPerCycle:     cfg.Matcher.PairsPerCycle,
		SkipExistingPairs: cfg.Matcher.SkipExistingPairs,
		LockTTL:           cfg.Matcher.LockTTL,
		Notifier:          notifier,
		Metrics:           m,
	}
	if cfg.Redis.Addr != "" {
		rdb, err := services.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		matcherOpts.Lock = services.NewRedisCycleLock(rdb, "")
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Matcher cycle lock enabled")
	}
	matcher := services.NewMatcher(store, store, matcherOpts)

	router := handlers.NewRouter(handlers.Services{
		Auth:    authService,
		Users:   userService,
		Dates:   dateService,
		Photos:  photoService,
		Hub:     hub,
		Metrics: m,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).
			Str("transition_policy", string(policy)).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return matcher.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		hub.CloseAll()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		return nil
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.StorageConfig) (repository.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.New(connectCtx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		log.Info().Str("host", cfg.Postgres.Host).Msg("Database connection established")
		return store, nil
	case config.DriverMongo:
		store, err := mongo.New(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connection established")
		return store, nil
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// setupLogger configures zerolog logger
func setupLogger(level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
