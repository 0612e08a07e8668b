package cmd

import (
	"context"
	"time"

	"github.com/flowgrade/flowgrade/analyzer/repository"
	"github.com/flowgrade/flowgrade/core/config"
	coreDB "github.com/flowgrade/flowgrade/core/database"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired cache entries and exit",
	Run:   runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, _ []string) {
	cfg := config.Global

	db, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	ctx := context.Background()
	cacheRepo := repository.NewCacheGormRepository(db, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err := cacheRepo.Init(ctx); err != nil {
		logrus.Fatalf("failed to init cache repository: %v", err)
	}

	removed, err := cacheRepo.Sweep(ctx)
	if err != nil {
		logrus.Fatalf("sweep failed: %v", err)
	}
	logrus.Infof("[CACHE] Removed %d expired entries", removed)
}
