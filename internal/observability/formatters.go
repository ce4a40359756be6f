// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/talent-hub/internal/ingestion"
	"github.com/jonathan/talent-hub/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to width runes.
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// PrintIngestOutcome outputs the state of an ingested candidate and, when
// extraction failed, the tool's diagnostics.
func (p *Printer) PrintIngestOutcome(outcome *ingestion.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %d\n", outcome.CandidateID))
	sb.WriteString(fmt.Sprintf("State:     %s\n", outcome.State))

	if r := outcome.Extraction; r != nil {
		sb.WriteString(fmt.Sprintf("Exit code: %d\n", r.ExitCode))
		sb.WriteString(fmt.Sprintf("Duration:  %s\n", r.Duration.Round(time.Millisecond)))
	}

	if details := outcome.Details(); details != "" {
		sb.WriteString("\nDiagnostics:\n")
		lines := strings.Split(details, "\n")
		count := min(len(lines), maxItemsToShow)
		for _, line := range lines[:count] {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
		if len(lines) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(lines)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE INGESTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs a generated summary wrapped to the box width.
func (p *Printer) PrintSummary(summary string) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return
	}
	p.printBox("CANDIDATE SUMMARY", strings.Join(wrap(summary, boxWidth-4), "\n"))
}

// PrintDataset outputs record counts per collection and the first candidates.
func (p *Printer) PrintDataset(dataset *types.Dataset) {
	if dataset == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:           %d\n", len(dataset.Skills)))
	sb.WriteString(fmt.Sprintf("Candidates:       %d\n", len(dataset.Candidates)))
	sb.WriteString(fmt.Sprintf("Candidate skills: %d\n", len(dataset.CandidateSkills)))
	sb.WriteString(fmt.Sprintf("Ads:              %d\n", len(dataset.Ads)))
	sb.WriteString(fmt.Sprintf("Ad skills:        %d\n", len(dataset.AdSkills)))

	if len(dataset.Candidates) > 0 {
		sb.WriteString("\nCandidates:\n")
		count := min(len(dataset.Candidates), maxItemsToShow)
		for _, c := range dataset.Candidates[:count] {
			sb.WriteString(fmt.Sprintf("  • %v  %v\n", c["ID"], c["Name"]))
		}
		if len(dataset.Candidates) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(dataset.Candidates)-maxItemsToShow))
		}
	}

	p.printBox("DATASET", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
