package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/emoji"
	"github.com/yildizm/LogDelta/internal/scorer"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter renders the run report for terminal display using
// go-termfmt trees and lipgloss-styled diff lines.
type terminalFormatter struct {
	opts     Options
	termOpts *termfmt.TerminalOptions

	addedStyle   lipgloss.Style
	deletedStyle lipgloss.Style
	editedStyle  lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(opts Options) Formatter {
	termOpts := termfmt.DefaultOptions()
	termOpts.Color = opts.Color
	termOpts.Emoji = !emoji.IsEmojiDisabled()

	f := &terminalFormatter{opts: opts, termOpts: termOpts}
	if opts.Color {
		f.addedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		f.deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		f.editedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
		f.dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	} else {
		f.addedStyle = lipgloss.NewStyle()
		f.deletedStyle = lipgloss.NewStyle()
		f.editedStyle = lipgloss.NewStyle()
		f.dimStyle = lipgloss.NewStyle()
	}
	return f
}

func (f *terminalFormatter) Format(report *analyzer.RunReport) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	if report.Comparison != nil {
		f.writeComparisonSummary(&b, report.Comparison)
		f.writeDiffs(&b, report.Comparison)
	}
	f.writeErrors(&b, "Blue", report.Blue)
	f.writeErrors(&b, "Green", report.Green)
	f.writeDivergences(&b, report.Divergences)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	b.WriteString(" LogDelta Blue/Green Comparison\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
}

func (f *terminalFormatter) writeComparisonSummary(b *strings.Builder, report *compare.Report) {
	symbol := termfmt.GetEmoji("statistics", f.termOpts)
	b.WriteString(symbol + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Blue entries", Value: formatNumber(report.BlueTotal)},
		{Label: "Green entries", Value: formatNumber(report.GreenTotal)},
		{Label: "Matched", Value: formatNumber(report.MatchedCount)},
		{Label: "Mismatched", Value: formatNumber(report.MismatchedCount)},
		{Label: "Blue only", Value: formatNumber(report.BlueOnlyCount)},
		{Label: "Green only", Value: formatNumber(report.GreenOnlyCount), Last: true},
	}
	tree := termfmt.TreeViewWithOptions(items, f.termOpts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) writeDiffs(b *strings.Builder, report *compare.Report) {
	if len(report.Pairs) == 0 {
		return
	}
	symbol := termfmt.GetEmoji("insights", f.termOpts)
	b.WriteString(symbol + " Structural Differences\n")

	written := 0
	for _, pair := range report.Pairs {
		fmt.Fprintf(b, "  entry #%d (%s)\n", pair.Index, describeEntry(pair.BlueRec))
		for _, entry := range pair.Entries {
			if f.opts.MaxDiffLines > 0 && written >= f.opts.MaxDiffLines {
				b.WriteString(f.dimStyle.Render(fmt.Sprintf("  ... diff output truncated at %d lines", f.opts.MaxDiffLines)) + "\n")
				b.WriteString("\n")
				return
			}
			b.WriteString("    " + f.renderDiffEntry(entry) + "\n")
			written++
		}
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) renderDiffEntry(entry compare.DiffEntry) string {
	switch entry.Kind {
	case compare.DiffAdded:
		return f.addedStyle.Render(fmt.Sprintf("+ %s = %s", entry.Path, common.FormatValue(entry.GreenValue)))
	case compare.DiffDeleted:
		return f.deletedStyle.Render(fmt.Sprintf("- %s = %s", entry.Path, common.FormatValue(entry.BlueValue)))
	case compare.DiffEdited:
		return f.editedStyle.Render(fmt.Sprintf("~ %s: %s -> %s", entry.Path,
			common.FormatValue(entry.BlueValue), common.FormatValue(entry.GreenValue)))
	case compare.DiffArrayChanged:
		return f.editedStyle.Render(fmt.Sprintf("~ %s[%d]: %s", entry.Path, entry.ArrayIndex,
			common.FormatValue(entry.Item)))
	default:
		return fmt.Sprintf("? %s", entry.Path)
	}
}

func (f *terminalFormatter) writeErrors(b *strings.Builder, label string, analysis *analyzer.SetAnalysis) {
	if analysis == nil {
		return
	}
	symbol := termfmt.GetEmoji("error_pattern", f.termOpts)
	fmt.Fprintf(b, "%s %s Errors (%d total, %d high confidence)\n",
		symbol, label, analysis.TotalErrors, analysis.HighConfidenceErrors)

	if analysis.TotalErrors == 0 {
		b.WriteString(f.dimStyle.Render("  none") + "\n\n")
		return
	}

	limit := len(analysis.Errors)
	if f.opts.MaxErrors > 0 && limit > f.opts.MaxErrors {
		limit = f.opts.MaxErrors
	}
	for _, entry := range analysis.Errors[:limit] {
		category := "-"
		if len(entry.Analysis.Categories) > 0 {
			category = entry.Analysis.Categories[0]
		}
		line := fmt.Sprintf("  [%3d %s] %s %s",
			entry.Analysis.Score,
			entry.Analysis.Confidence,
			category,
			truncate(entry.Record.Message(), 80))
		if entry.Analysis.Confidence == scorer.ConfidenceHigh {
			line = f.deletedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if limit < len(analysis.Errors) {
		b.WriteString(f.dimStyle.Render(fmt.Sprintf("  ... %d more", len(analysis.Errors)-limit)) + "\n")
	}

	f.writeCategoryHistogram(b, analysis.CategoryCounts)
	b.WriteString("\n")
}

func (f *terminalFormatter) writeCategoryHistogram(b *strings.Builder, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	items := make([]termfmt.TreeItem, len(categories))
	for i, c := range categories {
		items[i] = termfmt.TreeItem{Label: c, Value: formatNumber(counts[c]), Last: i == len(categories)-1}
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.termOpts) + "\n")
}

func (f *terminalFormatter) writeDivergences(b *strings.Builder, divergences []analyzer.DivergenceEntry) {
	symbol := termfmt.GetEmoji("recommendations", f.termOpts)
	fmt.Fprintf(b, "%s Value Divergences (%d)\n", symbol, len(divergences))

	if len(divergences) == 0 {
		b.WriteString(f.dimStyle.Render("  none") + "\n")
		return
	}
	for _, d := range divergences {
		line := fmt.Sprintf("  %s: blue=%s green=%s", d.Key, d.BlueValue, d.GreenValue)
		if d.Direction == analyzer.DirectionRegressed {
			b.WriteString(f.deletedStyle.Render(line+"  (regressed)") + "\n")
		} else {
			b.WriteString(f.addedStyle.Render(line+"  (improved)") + "\n")
		}
	}
}

// describeEntry renders a short identity for a record in diff headers.
func describeEntry(rec common.LogRecord) string {
	if msg := rec.Message(); msg != "" {
		return truncate(msg, 60)
	}
	if rec.LineNumber > 0 {
		return fmt.Sprintf("line %d", rec.LineNumber)
	}
	return fmt.Sprintf("index %d", rec.Index)
}
