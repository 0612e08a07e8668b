package cache

import (
	"context"

	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
)

type ICacheUsecase interface {
	Stats(ctx context.Context) (cfg.CacheStats, error)
	Sweep(ctx context.Context) (int64, error)
	StartBackgroundSweep(ctx context.Context)
}
