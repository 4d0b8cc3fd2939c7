package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iteranya/restaurant-pos/internal/config"
	"github.com/iteranya/restaurant-pos/internal/database"
	"github.com/iteranya/restaurant-pos/internal/logging"
	"github.com/iteranya/restaurant-pos/internal/metrics"
	"github.com/iteranya/restaurant-pos/internal/web"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("could not load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	log := logging.ForPackage(logger, "main")

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString() + uuid.NewString()
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.NewDatabase(ctx, cfg.DatabaseConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize database")
	}
	defer db.Close()

	if err := database.Migrate(cfg.DatabaseConfig()); err != nil {
		log.Fatal().Err(err).Msg("could not migrate database")
	}
	log.Info().Msg("database connected and migrated")

	// 3. Application
	renderer, err := web.NewTemplateRenderer(logging.ForPackage(logger, "web"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not parse templates")
	}

	a := newApp(db, cfg, renderer, metrics.New(), logger)

	seeded, err := a.admins.EnsureSeeded(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not seed admin credential")
	}
	if seeded {
		log.Warn().Str("username", cfg.AdminUsername).Msg("seeded default admin credential, change the password")
	}

	// 4. Background jobs
	jobs := cron.New()
	if _, err := jobs.AddFunc(cfg.SessionPurgeSchedule, a.purgeSessions); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SessionPurgeSchedule).Msg("invalid session purge schedule")
	}
	jobs.Start()
	defer jobs.Stop()

	// 5. Start Server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      a.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
