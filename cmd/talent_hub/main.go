// Package main provides the talent_hub command: the candidate ingestion API server
// and local tools around the same pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/talent-hub/internal/config"
	"github.com/jonathan/talent-hub/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	verbose    bool

	// v collects defaults, the config file, environment and bound flags.
	v = config.NewViper()

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "talent_hub",
	Short: "Candidate ingestion and enrichment service",
	Long: "talent_hub stores candidates, runs the external skill extraction tool on their CVs, " +
		"generates recruiter summaries with Gemini and serves the merged dataset for dashboards.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a config file (JSON, YAML or TOML)")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("log-debug", false, "Enable debug logging")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print formatted results")

	mustBindFlag("log.json", flags.Lookup("log-json"))
	mustBindFlag("log.debug", flags.Lookup("log-debug"))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logger.New(loaded.Log.JSON, loaded.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	cfg, log = loaded, l
	return nil
}
