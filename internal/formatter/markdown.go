package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
)

// markdownFormatter formats the run report as Markdown
type markdownFormatter struct {
	opts Options
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(opts Options) Formatter {
	return &markdownFormatter{opts: opts}
}

func (f *markdownFormatter) Format(report *analyzer.RunReport) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Blue/Green Log Comparison Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	if report.Comparison != nil {
		f.writeSummaryTable(&b, report.Comparison)
		f.writeDiffSections(&b, report.Comparison)
	}
	f.writeErrorSection(&b, "Blue", report.Blue)
	f.writeErrorSection(&b, "Green", report.Green)
	f.writeDivergenceSection(&b, report.Divergences)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *compare.Report) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Blue entries | %d |\n", report.BlueTotal)
	fmt.Fprintf(b, "| Green entries | %d |\n", report.GreenTotal)
	fmt.Fprintf(b, "| Matched | %d |\n", report.MatchedCount)
	fmt.Fprintf(b, "| Mismatched | %d |\n", report.MismatchedCount)
	fmt.Fprintf(b, "| Blue only | %d |\n", report.BlueOnlyCount)
	fmt.Fprintf(b, "| Green only | %d |\n\n", report.GreenOnlyCount)
}

func (f *markdownFormatter) writeDiffSections(b *strings.Builder, report *compare.Report) {
	if len(report.Pairs) == 0 {
		return
	}
	b.WriteString("## Structural Differences\n\n")

	written := 0
	for _, pair := range report.Pairs {
		fmt.Fprintf(b, "### Entry %d\n\n", pair.Index)
		b.WriteString("| Kind | Path | Blue | Green |\n")
		b.WriteString("|------|------|------|-------|\n")
		for _, entry := range pair.Entries {
			if f.opts.MaxDiffLines > 0 && written >= f.opts.MaxDiffLines {
				fmt.Fprintf(b, "\n_Diff output truncated at %d entries._\n\n", f.opts.MaxDiffLines)
				return
			}
			path := entry.Path
			if entry.Kind == compare.DiffArrayChanged {
				path = fmt.Sprintf("%s[%d]", entry.Path, entry.ArrayIndex)
			}
			fmt.Fprintf(b, "| %s | `%s` | %s | %s |\n",
				entry.Kind, path,
				escapeCell(common.FormatValue(entry.BlueValue)),
				escapeCell(common.FormatValue(entry.GreenValue)))
			written++
		}
		b.WriteString("\n")
	}
}

func (f *markdownFormatter) writeErrorSection(b *strings.Builder, label string, analysis *analyzer.SetAnalysis) {
	if analysis == nil {
		return
	}
	fmt.Fprintf(b, "## %s Errors\n\n", label)
	fmt.Fprintf(b, "%d errors (%d high confidence) out of %d entries.\n\n",
		analysis.TotalErrors, analysis.HighConfidenceErrors, analysis.TotalEntries)

	if analysis.TotalErrors == 0 {
		return
	}

	b.WriteString("| Score | Confidence | Category | Message |\n")
	b.WriteString("|-------|------------|----------|----------|\n")
	limit := len(analysis.Errors)
	if f.opts.MaxErrors > 0 && limit > f.opts.MaxErrors {
		limit = f.opts.MaxErrors
	}
	for _, entry := range analysis.Errors[:limit] {
		category := "-"
		if len(entry.Analysis.Categories) > 0 {
			category = entry.Analysis.Categories[0]
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s |\n",
			entry.Analysis.Score, entry.Analysis.Confidence, category,
			escapeCell(truncate(entry.Record.Message(), 100)))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeDivergenceSection(b *strings.Builder, divergences []analyzer.DivergenceEntry) {
	b.WriteString("## Value Divergences\n\n")
	if len(divergences) == 0 {
		b.WriteString("None detected.\n")
		return
	}
	b.WriteString("| Key | Blue | Green | Direction |\n")
	b.WriteString("|-----|------|-------|----------|\n")
	for _, d := range divergences {
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n",
			d.Key, escapeCell(d.BlueValue), escapeCell(d.GreenValue), d.Direction)
	}
}

// escapeCell makes a value safe inside a markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
