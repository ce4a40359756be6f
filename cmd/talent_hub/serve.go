package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/talent-hub/internal/aggregation"
	"github.com/jonathan/talent-hub/internal/ingestion"
	"github.com/jonathan/talent-hub/internal/server"
	"github.com/jonathan/talent-hub/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing candidate ingestion, summary generation and the aggregated dataset.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5000, "Port to listen on")
	mustBindFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := buildServer(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start(ctx)
}

// buildServer wires every component from cfg.
func buildServer(ctx context.Context) (*server.Server, func(), error) {
	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	log.Info("store opened", zap.String("backend", cfg.Store.Backend))

	generator, closeLLM, err := newSummaryGenerator(ctx, cfg, log)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	srv := server.New(server.Config{
		Addr:      cfg.Addr(),
		RateLimit: cfg.RateLimiter(),
		Logger:    log,
	}, server.Dependencies{
		Ingester:   ingestion.NewOrchestrator(st, newExtractor(cfg, log), log),
		Summarizer: generator,
		Aggregator: aggregation.NewAggregator(st, log),
		Candidates: st,
	})

	cleanup := func() {
		closeLLM()
		if err := st.Close(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}
	return srv, cleanup, nil
}
