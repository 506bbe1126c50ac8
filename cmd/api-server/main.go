package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightcare/clinic-scheduling/internal/api"
	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/config"
	"github.com/brightcare/clinic-scheduling/internal/db"
	"github.com/brightcare/clinic-scheduling/internal/document"
	"github.com/brightcare/clinic-scheduling/internal/logging"
	"github.com/brightcare/clinic-scheduling/internal/profile"
	redisclient "github.com/brightcare/clinic-scheduling/internal/redis"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("dev", "api-server")
		bootLog.Fatal().Err(err).Msg("config load error")
	}

	log := logging.New(cfg.Env, "api-server")
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	apptRepo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisLocker(rdb, cfg.LockTTL)

	appointments := appointment.NewService(apptRepo, apptRepo, locker, cfg, log)
	profiles := profile.NewService(profile.NewPgRepository(pgPool), log)
	documents := document.NewService(document.NewPgRepository(pgPool), log)

	// The facility closure calendar must cover the booking horizon before the
	// first request lands. The blocks worker keeps it extended after that.
	if days, err := appointments.EnsureStandardBlocks(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("standard block generation failed")
	} else if days > 0 {
		log.Info().Int("days", days).Msg("standard blocks extended at startup")
	}

	router := api.NewRouter(api.RouterConfig{
		Appointments: appointments,
		Profiles:     profiles,
		Documents:    documents,
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
		return
	}

	log.Info().Msg("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
