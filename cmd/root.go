package cmd

import (
	"os"

	"github.com/flowgrade/flowgrade/core/config"
	"github.com/flowgrade/flowgrade/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flowgrade",
	Short: "AI-assisted algorithm solution analyzer",
	Long: `Flowgrade converts pseudocode and flowchart images into control flow
graphs and scores or compares them, caching every model response so that
equivalent inputs never pay for a second inference call.`,
}

func init() {
	// Load .env before anything reads the environment.
	utils.LoadConfig(".")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.OnInitialize(initApp)
}

func initApp() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(cfg.Paths.Storages, 0o755); err != nil {
		logrus.Errorln(err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalln(err)
	}
}
