package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/PanelPredictor/internal/config"
)

var (
	cfg     *config.Config
	catalog config.Catalog
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Panel chart analysis and next-draw candidates",
	Long: `Analyze historical draw charts and report ranked candidate pairs,
jackpot triples, risk metrics and a walk-forward backtest.

Examples:
  analyzer datasets
  analyzer analyze --dataset KL --window 60
  analyzer analyze --file ./charts/custom.html --format json
  analyzer import --dataset KL`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}

		setupLogging(cfg.LogLevel)

		catalog, err = config.LoadCatalog(cfg.DatasetsFile)
		return err
	},
}

func main() {
	// Cancel in-flight fetches and queries on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
