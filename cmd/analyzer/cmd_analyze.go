package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/PanelPredictor/internal/database"
	"github.com/Alias1177/PanelPredictor/internal/model"
	"github.com/Alias1177/PanelPredictor/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze datasets and print their reports",
	Long: `Run the full analysis pipeline on one or more datasets. Without
--dataset or --file every catalog dataset is analyzed.

Examples:
  analyzer analyze --dataset KL --dataset TB
  analyzer analyze --file ./charts/custom.txt --window 45 --lookback 20
  analyzer analyze --dataset KL --from-db --save`,
	RunE: runAnalyze,
}

// Analyze command flags
var (
	analyzeDatasets []string
	analyzeFiles    []string
	analyzeWindow   int
	analyzeLookback int
	analyzeFormat   string
	analyzeFromDB   bool
	analyzeSave     bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceVar(&analyzeDatasets, "dataset", nil, "Catalog dataset id (repeatable)")
	analyzeCmd.Flags().StringSliceVar(&analyzeFiles, "file", nil, "Analyze a chart file outside the catalog (repeatable)")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "Analysis window size (default WINDOW_SIZE)")
	analyzeCmd.Flags().IntVar(&analyzeLookback, "lookback", 0, "Backtest lookback (default LOOKBACK_DAYS)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format (text|json)")
	analyzeCmd.Flags().BoolVar(&analyzeFromDB, "from-db", false, "Read records from the record store instead of the source")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store a snapshot of each report (implied by DB_ENABLED)")
}

// runAnalyze executes the pipeline for every selected dataset
func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if analyzeFormat != "text" && analyzeFormat != "json" {
		return fmt.Errorf("unsupported format %q", analyzeFormat)
	}
	window := analyzeWindow
	if window <= 0 {
		window = cfg.WindowSize
	}
	lookback := analyzeLookback
	if lookback <= 0 {
		lookback = cfg.LookbackDays
	}

	datasets, err := resolveDatasets(analyzeDatasets, analyzeFiles)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	loader := newLoader()

	// DB_ENABLED turns snapshot saving on by default
	save := analyzeSave || cfg.DBEnabled

	var store *database.DB
	if analyzeFromDB || save {
		if store, err = openStore(ctx); err != nil {
			return err
		}
		defer store.Close()
	}

	var reports []model.Report
	failed := 0
	for _, ds := range datasets {
		var records []model.DrawRecord
		if analyzeFromDB {
			records, err = store.LoadRecords(ctx, ds.ID)
		} else {
			records, err = fetchRecords(ctx, loader, ds)
		}
		if err != nil {
			log.Error().Err(err).Str("dataset", ds.ID).Msg("Failed to load records")
			failed++
			continue
		}

		r, err := engine.Report(ctx, report.Meta{DatasetID: ds.ID, DatasetName: ds.Name}, records, window, lookback)
		if err != nil {
			log.Error().Err(err).Str("dataset", ds.ID).Msg("Analysis failed")
			failed++
			continue
		}

		if save {
			if err := store.SaveSnapshot(ctx, r); err != nil {
				log.Error().Err(err).Str("dataset", ds.ID).Msg("Failed to save snapshot")
			}
		}
		reports = append(reports, r)
	}

	if err := writeReports(reports); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d datasets failed", failed, len(datasets))
	}
	return nil
}

func writeReports(reports []model.Report) error {
	if analyzeFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(report.FormatText(r))
	}
	return nil
}
