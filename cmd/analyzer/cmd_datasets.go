package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// datasetsCmd represents the datasets command
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List known datasets",
	RunE:  runDatasets,
}

var datasetsStored bool

func init() {
	rootCmd.AddCommand(datasetsCmd)

	datasetsCmd.Flags().BoolVar(&datasetsStored, "stored", false, "List dataset ids present in the record store instead")
}

func runDatasets(cmd *cobra.Command, args []string) error {
	if datasetsStored {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.Datasets(cmd.Context())
		if err != nil {
			return fmt.Errorf("list stored datasets: %w", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSOURCE")
	for _, ds := range catalog.Datasets {
		src := ds.File
		if ds.URL != "" {
			src = ds.URL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ds.ID, ds.Name, src)
	}
	return w.Flush()
}
