package main

import (
	"context"
	"fmt"

	"github.com/jonathan/talent-hub/internal/config"
	"github.com/jonathan/talent-hub/internal/extraction"
	"github.com/jonathan/talent-hub/internal/llm"
	"github.com/jonathan/talent-hub/internal/prompts"
	"github.com/jonathan/talent-hub/internal/summary"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func mustBindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
	}
}

// newLLMClient returns nil when no API key is configured.
func newLLMClient(ctx context.Context, c *config.Config) (llm.Client, error) {
	if c.LLM.APIKey == "" {
		return nil, nil
	}

	llmConfig := llm.DefaultConfig()
	if c.LLM.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, c.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmConfig, c.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newSummaryGenerator loads the prompt config and connects the generator. The
// returned close func is never nil.
func newSummaryGenerator(ctx context.Context, c *config.Config, log *zap.Logger) (*summary.Generator, func(), error) {
	promptConfig := prompts.LoadOrNil(log, c.Prompt.Path)

	client, err := newLLMClient(ctx, c)
	if err != nil {
		return nil, func() {}, err
	}
	if client == nil {
		log.Warn("no Gemini API key configured, summaries will fail")
		return summary.NewGenerator(nil, promptConfig), func() {}, nil
	}

	generator := summary.NewGenerator(client, promptConfig, summary.WithTemperature(c.LLM.Temperature))
	return generator, func() { _ = client.Close() }, nil
}

func newExtractor(c *config.Config, log *zap.Logger) *extraction.ProcessExtractor {
	return extraction.NewProcessExtractor(log, extraction.ParseCommand(c.Extractor.Command), c.Extractor.APIKey, c.Extractor.Timeout)
}
