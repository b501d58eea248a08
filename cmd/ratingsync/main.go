package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/app"
	"stayhub/internal/shared"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	be, closeBackend, err := shared.OpenBackend(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Backend).Msg("backend init failed")
		return 1
	}
	defer closeBackend()

	syncer := app.NewRatingSyncService(be, app.NewReviewService(be))
	ids, err := syncer.HotelIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing hotels failed")
		return 1
	}
	workers := cfg.SyncWorkers
	if workers < 1 {
		workers = 1
	}
	log.Info().Int("hotels", len(ids)).Int("workers", workers).Msg("rating sync starting")

	res := syncAll(ctx, syncer, ids, workers)
	log.Info().
		Int64("updated", res.updated).
		Int64("unchanged", res.unchanged).
		Int64("skipped", res.skipped).
		Int64("failed", res.failed).
		Msg("rating sync completed")
	if res.failed > 0 {
		return 1
	}
	return 0
}

type syncResult struct {
	updated, unchanged, skipped, failed int64
}

func syncAll(ctx context.Context, syncer *app.RatingSyncService, ids []int64, workers int) syncResult {
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg                                  sync.WaitGroup
		updated, unchanged, skipped, failed atomic.Int64
	)
	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("sync interrupted")
			break
		}
		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			changed, err := syncer.SyncHotel(ctx, hotelID)
			switch {
			case app.IsMissing(err):
				skipped.Add(1)
				log.Info().Int64("hotel_id", hotelID).Msg("hotel deleted during sync, skipped")
				observability.ObserveSync("skipped")
			case err != nil:
				failed.Add(1)
				log.Warn().Int64("hotel_id", hotelID).Err(err).Msg("sync failed")
				observability.ObserveSync("failed")
			case changed:
				updated.Add(1)
				observability.ObserveSync("updated")
			default:
				unchanged.Add(1)
				observability.ObserveSync("unchanged")
			}
		}(id)
	}

	wg.Wait()
	return syncResult{
		updated:   updated.Load(),
		unchanged: unchanged.Load(),
		skipped:   skipped.Load(),
		failed:    failed.Load(),
	}
}
