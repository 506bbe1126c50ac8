package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/config"
	"github.com/brightcare/clinic-scheduling/internal/db"
	"github.com/brightcare/clinic-scheduling/internal/logging"
	redisclient "github.com/brightcare/clinic-scheduling/internal/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("dev", "blocks-worker")
		bootLog.Fatal().Err(err).Msg("config load error")
	}

	log := logging.New(cfg.Env, "blocks-worker")
	log.Info().Str("env", cfg.Env).Dur("interval", cfg.WorkerInterval).Msg("blocks-worker starting up")

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

	repo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisLocker(rdb, cfg.LockTTL)
	svc := appointment.NewService(repo, repo, locker, cfg, log)

	// Run once at startup
	runOnce(rootCtx, svc, log)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping blocks worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, log)
		}
	}
}

// runOnce extends the rolling window of standard unavailable blocks and
// prunes the ones that have already passed.
func runOnce(ctx context.Context, svc *appointment.Service, log zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()

	days, err := svc.EnsureStandardBlocks(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("standard block run error")
		return
	}

	pruned, err := svc.PruneExpiredBlocks(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("block prune error")
		return
	}

	log.Info().
		Int("days_extended", days).
		Int64("blocks_pruned", pruned).
		Dur("took", time.Since(start)).
		Msg("blocks run complete")
}
