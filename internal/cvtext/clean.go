package cvtext

import (
	"regexp"
	"strings"
)

var (
	blankRunPattern = regexp.MustCompile(`\n\n\n+`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
	bulletGlyphs    = []string{"• ", "· ", "▪ ", "◦ "}
)

// Clean normalizes extracted CV text while keeping its line structure: CRLF and CR
// become LF, runs of spaces collapse, bullet glyphs become "- ", and no more than
// one blank line separates paragraphs.
func Clean(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRunPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, glyph))
			break
		}
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	trimmed = spaceRunPattern.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}
