package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/flowgrade/flowgrade/analyzer/providers"
	"github.com/flowgrade/flowgrade/analyzer/repository"
	"github.com/flowgrade/flowgrade/core/config"
	coreDB "github.com/flowgrade/flowgrade/core/database"
	"github.com/flowgrade/flowgrade/ui/rest"
	"github.com/flowgrade/flowgrade/ui/rest/middleware"
	"github.com/flowgrade/flowgrade/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the analysis API over HTTP",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	cfg := config.Global

	db, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheRepo := repository.NewCacheGormRepository(db, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err := cacheRepo.Init(ctx); err != nil {
		logrus.Fatalf("failed to init cache repository: %v", err)
	}

	provider := providers.NewGeminiProvider(cfg.AI)

	analysisUsecase := usecase.NewAnalysisService(cacheRepo, provider)
	cacheUsecase := usecase.NewCacheService(cacheRepo, time.Duration(cfg.Cache.SweepIntervalMins)*time.Minute)
	documentUsecase := usecase.NewDocumentService()
	healthUsecase := usecase.NewHealthService(db)

	if cfg.Cache.BackgroundSweep {
		cacheUsecase.StartBackgroundSweep(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Flowgrade Analyzer",
		Network:      "tcp",
		BodyLimit:    32 * 1024 * 1024, // uploaded documents and flowchart images
		ServerHeader: "Hidden",
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.App.CorsAllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Recovery())

	api := app.Group(cfg.App.BasePath + "/api")
	rest.InitRestAnalysis(api, analysisUsecase)
	rest.InitRestCache(api, cacheUsecase)
	rest.InitRestDocument(api, documentUsecase)
	rest.InitRestHealth(api, healthUsecase)

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			logrus.Fatalf("server stopped: %v", err)
		}
	}()
	logrus.Infof("[REST] Listening on port %s", cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("[REST] Shutting down...")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}
