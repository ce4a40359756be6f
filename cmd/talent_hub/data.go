package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-hub/internal/aggregation"
	"github.com/jonathan/talent-hub/internal/observability"
	"github.com/jonathan/talent-hub/internal/store"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print every collection as one JSON dataset",
	Long:  "Reads the same merged dataset as GET /api/data. With --verbose only record counts are printed.",
	RunE:  runData,
}

func init() {
	rootCmd.AddCommand(dataCmd)
}

func runData(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	dataset, err := aggregation.NewAggregator(st, log).Fetch(ctx)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintDataset(dataset)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}
