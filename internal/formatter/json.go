package formatter

import (
	"encoding/json"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/compare"
)

// jsonFormatter formats the run report as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *analyzer.RunReport) ([]byte, error) {
	output := &jsonOutput{
		Summary:     createSummary(report),
		Pairs:       createPairOutputs(report.Comparison),
		Blue:        createColorOutput(report.Blue),
		Green:       createColorOutput(report.Green),
		Divergences: report.Divergences,
	}
	return json.MarshalIndent(output, "", "  ")
}

// jsonOutput is the stable machine-readable report schema.
type jsonOutput struct {
	Summary     *summaryOutput             `json:"summary"`
	Pairs       []*pairOutput              `json:"pairs"`
	Blue        *colorOutput               `json:"blue"`
	Green       *colorOutput               `json:"green"`
	Divergences []analyzer.DivergenceEntry `json:"divergences"`
}

type summaryOutput struct {
	BlueTotal       int `json:"blue_total"`
	GreenTotal      int `json:"green_total"`
	MatchedCount    int `json:"matched_count"`
	MismatchedCount int `json:"mismatched_count"`
	BlueOnlyCount   int `json:"blue_only_count"`
	GreenOnlyCount  int `json:"green_only_count"`
}

type pairOutput struct {
	Index   int                 `json:"index"`
	Entries []compare.DiffEntry `json:"entries"`
	Blue    any                 `json:"blue"`
	Green   any                 `json:"green"`
}

type colorOutput struct {
	TotalEntries         int            `json:"total_entries"`
	TotalErrors          int            `json:"total_errors"`
	HighConfidenceErrors int            `json:"high_confidence_errors"`
	CategoryCounts       map[string]int `json:"category_counts"`
	Errors               []errorOutput  `json:"errors"`
}

type errorOutput struct {
	Index      int      `json:"index"`
	Line       int      `json:"line,omitempty"`
	Message    string   `json:"message"`
	Score      int      `json:"score"`
	Confidence string   `json:"confidence"`
	Categories []string `json:"categories,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
}

func createSummary(report *analyzer.RunReport) *summaryOutput {
	if report.Comparison == nil {
		return nil
	}
	return &summaryOutput{
		BlueTotal:       report.Comparison.BlueTotal,
		GreenTotal:      report.Comparison.GreenTotal,
		MatchedCount:    report.Comparison.MatchedCount,
		MismatchedCount: report.Comparison.MismatchedCount,
		BlueOnlyCount:   report.Comparison.BlueOnlyCount,
		GreenOnlyCount:  report.Comparison.GreenOnlyCount,
	}
}

func createPairOutputs(report *compare.Report) []*pairOutput {
	if report == nil {
		return nil
	}
	outputs := make([]*pairOutput, 0, len(report.Pairs))
	for _, pair := range report.Pairs {
		outputs = append(outputs, &pairOutput{
			Index:   pair.Index,
			Entries: pair.Entries,
			Blue:    pair.Blue,
			Green:   pair.Green,
		})
	}
	return outputs
}

func createColorOutput(analysis *analyzer.SetAnalysis) *colorOutput {
	if analysis == nil {
		return nil
	}
	out := &colorOutput{
		TotalEntries:         analysis.TotalEntries,
		TotalErrors:          analysis.TotalErrors,
		HighConfidenceErrors: analysis.HighConfidenceErrors,
		CategoryCounts:       analysis.CategoryCounts,
		Errors:               make([]errorOutput, 0, len(analysis.Errors)),
	}
	for _, entry := range analysis.Errors {
		out.Errors = append(out.Errors, errorOutput{
			Index:      entry.Record.Index,
			Line:       entry.Record.LineNumber,
			Message:    entry.Record.Message(),
			Score:      entry.Analysis.Score,
			Confidence: string(entry.Analysis.Confidence),
			Categories: entry.Analysis.Categories,
			Reasons:    entry.Analysis.Reasons,
		})
	}
	return out
}
