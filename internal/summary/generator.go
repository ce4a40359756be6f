// Package summary generates natural-language candidate summaries from the prompt
// configuration and aggregated candidate data.
package summary

import (
	"context"
	"errors"

	"github.com/jonathan/talent-hub/internal/llm"
	"github.com/jonathan/talent-hub/internal/prompts"
)

const (
	// DefaultTemperature is the sampling temperature used for summaries
	DefaultTemperature float32 = 0.7

	inlineErrorPrefix = "Error generating summary: "
)

// Generator turns candidate data into a summary using a fixed system instruction.
type Generator struct {
	client      llm.Client
	config      *prompts.Config
	temperature float32
	tier        llm.ModelTier
}

// Option configures a Generator
type Option func(*Generator)

// WithTemperature overrides DefaultTemperature
func WithTemperature(t float32) Option {
	return func(g *Generator) {
		g.temperature = t
	}
}

// WithTier overrides the model tier (standard by default)
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) {
		g.tier = tier
	}
}

// NewGenerator returns a Generator. config may be nil, in which case every call
// fails with ErrConfigUnavailable.
func NewGenerator(client llm.Client, config *prompts.Config, opts ...Option) *Generator {
	g := &Generator{
		client:      client,
		config:      config,
		temperature: DefaultTemperature,
		tier:        llm.TierStandard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Available reports whether a prompt configuration is loaded.
func (g *Generator) Available() bool {
	return g != nil && g.config != nil
}

// Generate sends candidateData as the only user content and returns the backend's
// text unchanged.
func (g *Generator) Generate(ctx context.Context, candidateData string) (string, error) {
	if !g.Available() {
		return "", ErrConfigUnavailable
	}
	if g.client == nil {
		return "", &GenerationError{Message: "no generative-text client configured"}
	}

	text, err := g.client.Generate(ctx, llm.Request{
		SystemInstruction: prompts.RenderSystemInstruction(g.config),
		Prompt:            candidateData,
		Tier:              g.tier,
		Temperature:       g.temperature,
	})
	if err != nil {
		return "", &GenerationError{Message: "failed to generate summary", Cause: err}
	}
	return text, nil
}

// InlineText folds a Generate result into a single string, the way the summary
// endpoint reports backend failures to its callers.
func InlineText(text string, err error) string {
	if err == nil {
		return text
	}
	detail := err.Error()
	var genErr *GenerationError
	if errors.As(err, &genErr) && genErr.Cause != nil {
		detail = genErr.Cause.Error()
	}
	return inlineErrorPrefix + detail
}
