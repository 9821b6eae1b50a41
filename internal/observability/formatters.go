// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/stylist-expert/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 6
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	content = strings.TrimRight(content, "\n")
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintUserInput outputs the attributes that will be matched against the rules.
func (p *Printer) PrintUserInput(input types.UserInput) {
	facts := input.Facts()

	var sb strings.Builder
	for _, attr := range types.Attributes {
		value, ok := facts[attr]
		if !ok {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf("%-17s %s\n", attr+":", value))
	}

	p.printBox("USER PROFILE", sb.String())
}

// PrintRecommendations outputs one box per recommendation, best first.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	for i, rec := range recs {
		var sb strings.Builder

		sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", rec.Confidence))
		sb.WriteString(fmt.Sprintf("Rules:      %s\n", strings.Join(rec.MatchedRules, ", ")))
		sb.WriteString("\n")

		if len(rec.Items) > 0 {
			sb.WriteString("Items:\n")
			writeList(&sb, rec.Items)
			sb.WriteString("\n")
		}

		if rec.Explanation != "" {
			for _, line := range wrap(rec.Explanation, boxWidth-4) {
				sb.WriteString(line + "\n")
			}
		}

		if len(rec.Images) > 0 {
			sb.WriteString(fmt.Sprintf("\nImages: %d\n", len(rec.Images)))
		}

		title := fmt.Sprintf("#%d %s", i+1, strings.ToUpper(rec.Title))
		if rec.IsFallback() {
			title += " (FALLBACK)"
		}
		p.printBox(title, sb.String())
	}
}

// PrintRules outputs a compact listing of the knowledge base.
func (p *Printer) PrintRules(dump types.RulesDump) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total rules: %d\n\n", len(dump.Rules)))
	for _, rule := range dump.Rules {
		sb.WriteString(fmt.Sprintf("%-4s %.2f  %s\n", rule.ID, rule.Confidence, rule.Recommendation.Title))
		sb.WriteString(fmt.Sprintf("       if %s\n", formatConditions(rule.Conditions)))
	}

	p.printBox("KNOWLEDGE BASE", sb.String())
}

// formatConditions renders conditions in vocabulary order, then any others sorted.
func formatConditions(conditions map[string]string) string {
	parts := make([]string, 0, len(conditions))
	seen := make(map[string]bool, len(conditions))
	for _, attr := range types.Attributes {
		if value, ok := conditions[attr]; ok {
			parts = append(parts, attr+"="+value)
			seen[attr] = true
		}
	}

	var rest []string
	for attr := range conditions {
		if !seen[attr] {
			rest = append(rest, attr)
		}
	}
	sort.Strings(rest)
	for _, attr := range rest {
		parts = append(parts, attr+"="+conditions[attr])
	}

	return strings.Join(parts, " & ")
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
