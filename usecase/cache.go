package usecase

import (
	"context"
	"time"

	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
	domainCache "github.com/flowgrade/flowgrade/domains/cache"
	"github.com/sirupsen/logrus"
)

type cacheService struct {
	store         cfg.ResponseCacheStore
	sweepInterval time.Duration
}

func NewCacheService(store cfg.ResponseCacheStore, sweepInterval time.Duration) domainCache.ICacheUsecase {
	return &cacheService{store: store, sweepInterval: sweepInterval}
}

func (s *cacheService) Stats(ctx context.Context) (cfg.CacheStats, error) {
	return s.store.Stats(ctx)
}

func (s *cacheService) Sweep(ctx context.Context) (int64, error) {
	return s.store.Sweep(ctx)
}

// StartBackgroundSweep periodically removes expired entries until the
// context is cancelled. Expired rows are invisible to lookups either way;
// the sweep just reclaims storage.
func (s *cacheService) StartBackgroundSweep(ctx context.Context) {
	interval := s.sweepInterval
	if interval < 5*time.Minute {
		interval = 5 * time.Minute
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}

			logrus.Info("[CACHE] Running scheduled sweep...")
			removed, err := s.store.Sweep(ctx)
			if err != nil {
				logrus.WithError(err).Warn("[CACHE] Scheduled sweep failed")
				continue
			}
			if removed > 0 {
				logrus.WithField("removed", removed).Info("[CACHE] Scheduled sweep finished")
			}
		}
	}()
}
