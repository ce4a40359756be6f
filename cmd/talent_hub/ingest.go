package main

import (
	"fmt"

	"github.com/jonathan/talent-hub/internal/cvtext"
	"github.com/jonathan/talent-hub/internal/ingestion"
	"github.com/jonathan/talent-hub/internal/observability"
	"github.com/jonathan/talent-hub/internal/store"
	"github.com/jonathan/talent-hub/internal/types"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store a candidate and run skill extraction locally",
	Long: "Runs the same pipeline as POST /api/candidates without the HTTP server. " +
		"The CV is given inline with --cv-text or as a .txt, .pdf or .docx file with --cv.",
	RunE: runIngest,
}

var (
	ingestID     int64
	ingestName   string
	ingestEmail  string
	ingestCVFile string
	ingestCVText string
)

func init() {
	ingestCmd.Flags().Int64Var(&ingestID, "id", 0, "Candidate ID (required)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "Candidate name (required)")
	ingestCmd.Flags().StringVar(&ingestEmail, "email", "", "Candidate email (required)")
	ingestCmd.Flags().StringVar(&ingestCVFile, "cv", "", "Path to the CV (.txt, .pdf or .docx)")
	ingestCmd.Flags().StringVar(&ingestCVText, "cv-text", "", "CV as plain text")

	for _, name := range []string{"id", "name", "email"} {
		if err := ingestCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	ingestCmd.MarkFlagsMutuallyExclusive("cv", "cv-text")
	ingestCmd.MarkFlagsOneRequired("cv", "cv-text")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cv := ingestCVText
	if ingestCVFile != "" {
		text, err := cvtext.FromFile(ingestCVFile)
		if err != nil {
			return err
		}
		cv = text
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	orchestrator := ingestion.NewOrchestrator(st, newExtractor(cfg, log), log)
	outcome, err := orchestrator.Ingest(ctx, &types.IngestRequest{
		ID:     types.CandidateID(ingestID),
		Name:   ingestName,
		Email:  ingestEmail,
		CVText: cv,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintIngestOutcome(outcome)
	}
	if !outcome.Succeeded() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: candidate %d saved, but skill extraction failed\n", outcome.CandidateID)
		if details := outcome.Details(); details != "" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", details)
		}
		return nil
	}

	_, _ = fmt.Fprintf(out, "Candidate %d added and processed successfully\n", outcome.CandidateID)
	return nil
}
