package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load datasets from their source into the record store",
	Long: `Parse datasets from their files or URLs and store the records.
By default the stored history is replaced; --append adds after it.

Examples:
  analyzer import --dataset KL
  analyzer import --file ./charts/latest.txt --append`,
	RunE: runImport,
}

var (
	importDatasets []string
	importFiles    []string
	importAppend   bool
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringSliceVar(&importDatasets, "dataset", nil, "Catalog dataset id (repeatable, default all)")
	importCmd.Flags().StringSliceVar(&importFiles, "file", nil, "Chart file outside the catalog (repeatable)")
	importCmd.Flags().BoolVar(&importAppend, "append", false, "Append to the stored history instead of replacing it")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	datasets, err := resolveDatasets(importDatasets, importFiles)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	loader := newLoader()
	for _, ds := range datasets {
		records, err := fetchRecords(ctx, loader, ds)
		if err != nil {
			return err
		}

		if importAppend {
			err = store.AppendRecords(ctx, ds.ID, records)
		} else {
			err = store.ReplaceRecords(ctx, ds.ID, records)
		}
		if err != nil {
			return fmt.Errorf("store %s: %w", ds.ID, err)
		}
		log.Info().Str("dataset", ds.ID).Int("records", len(records)).Bool("append", importAppend).Msg("Dataset imported")
	}
	return nil
}
