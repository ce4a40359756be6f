package prompts

import "strings"

// RenderSystemInstruction renders cfg into the system instruction sent with every summary
// request. Requirements keep their order; an empty list renders an empty block.
func RenderSystemInstruction(cfg *Config) string {
	si := cfg.SystemInstruction

	lines := make([]string, len(si.StyleGuide.Requirements))
	for i, req := range si.StyleGuide.Requirements {
		lines[i] = "  * " + req
	}

	template := MustGet("summary.json", "system-instruction")
	return Format(template, map[string]string{
		"Role":         si.Role,
		"Task":         si.Task,
		"Tone":         si.Tone,
		"Example":      si.StyleGuide.Example,
		"Requirements": strings.Join(lines, "\n"),
	})
}
