package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/talent-hub/internal/observability"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate a recruiter summary for candidate data",
	Long:  "Reads candidate data from --in (or stdin) and prints the summary generated with the configured prompt.",
	RunE:  runSummarize,
}

var summarizeInputFile string

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInputFile, "in", "i", "", "Path to the candidate data file (default: stdin)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	if summarizeInputFile == "" || summarizeInputFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(summarizeInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read candidate data: %w", err)
	}

	candidateData := strings.TrimSpace(string(data))
	if candidateData == "" {
		return errors.New("no candidate data provided")
	}

	ctx := cmd.Context()
	generator, closeLLM, err := newSummaryGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLLM()

	if !generator.Available() {
		return fmt.Errorf("prompt config could not be loaded from %s", cfg.Prompt.Path)
	}

	text, err := generator.Generate(ctx, candidateData)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(text)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
