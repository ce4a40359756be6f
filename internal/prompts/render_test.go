package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig(requirements ...string) *Config {
	return &Config{SystemInstruction: SystemInstruction{
		Role: "Expert Technical Recruiter",
		Task: "Summarize the candidate for a hiring manager",
		Tone: "Warm but factual",
		StyleGuide: StyleGuide{
			Example:      `Sam is a "full-stack" engineer.`,
			Requirements: requirements,
		},
	}}
}

func TestRenderSystemInstruction(t *testing.T) {
	got := RenderSystemInstruction(testConfig("Max 3 sentences", "Mention the strongest skill"))

	expected := "You are acting as an Expert Technical Recruiter.\n" +
		"Task: Summarize the candidate for a hiring manager\n" +
		"Tone: Warm but factual\n" +
		"\n" +
		"Style Guide:\n" +
		"- Follow this example structure: \"Sam is a \"full-stack\" engineer.\"\n" +
		"- Requirements:\n" +
		"  * Max 3 sentences\n" +
		"  * Mention the strongest skill\n" +
		"\n" +
		"Analyze the provided candidate data and generate a summary."
	assert.Equal(t, expected, got)
}

func TestRenderSystemInstruction_PreservesRequirementOrder(t *testing.T) {
	got := RenderSystemInstruction(testConfig("third", "first", "second"))

	third := strings.Index(got, "* third")
	first := strings.Index(got, "* first")
	second := strings.Index(got, "* second")
	assert.True(t, third < first && first < second, "requirements reordered: %s", got)
}

func TestRenderSystemInstruction_EmptyRequirements(t *testing.T) {
	got := RenderSystemInstruction(testConfig())

	assert.Contains(t, got, `Follow this example structure: "Sam is a "full-stack" engineer."`)
	assert.Contains(t, got, "- Requirements:\n\n\nAnalyze")
	assert.NotContains(t, got, "  * ")
}

func TestRenderSystemInstruction_Deterministic(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	first := RenderSystemInstruction(cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderSystemInstruction(cfg))
	}
}
