// Command backfill_route_names fills the normalised name and code columns on routes created
// before those columns existed. Safe to rerun; a Redis lock keeps two copies from racing
// when REDIS_URL is set.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"

	"github.com/SscSPs/psbook/internal/core/services"
	"github.com/SscSPs/psbook/internal/middleware"
	"github.com/SscSPs/psbook/internal/platform/config"
	"github.com/SscSPs/psbook/internal/repositories/database/pgsql"
	"github.com/SscSPs/psbook/pkg/database"
)

const (
	lockKey = "psbook:backfill-route-names"
	lockTTL = 5 * time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Backfill failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()

		lock, err := redislock.New(redisClient).Obtain(ctx, lockKey, lockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			logger.Warn("Another backfill is running, exiting")
			return nil
		}
		if err != nil {
			return err
		}
		defer func() {
			if rerr := lock.Release(context.Background()); rerr != nil && !errors.Is(rerr, redislock.ErrLockNotHeld) {
				logger.Error("Failed to release backfill lock", slog.String("error", rerr.Error()))
			}
		}()
	} else {
		logger.Warn("REDIS_URL not set, running without a lock")
	}

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.BusinessTimezone)
	routeService := services.NewRouteService(repos.Routes, repos.Shops)

	resp, err := routeService.BackfillNormalizedNames(ctx)
	if err != nil {
		return err
	}
	logger.Info("Backfill complete", slog.Int("scanned", resp.Scanned), slog.Int("updated", resp.Updated))
	return nil
}
