package analyzer

import (
	"sort"

	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/scorer"
)

// Analyze scores every record in a sequence and summarizes the result.
// Scoring is per-record and side-effect free, so Analyze may run
// concurrently for both colors of a comparison.
func Analyze(seq common.LogSequence) *SetAnalysis {
	analysis := &SetAnalysis{
		TotalEntries:   len(seq),
		Errors:         []EntryAnalysis{},
		NonErrors:      []EntryAnalysis{},
		CategoryCounts: map[string]int{},
	}

	for _, rec := range seq {
		entry := EntryAnalysis{Record: rec, Analysis: scorer.Score(rec)}
		if !entry.Analysis.IsError {
			analysis.NonErrors = append(analysis.NonErrors, entry)
			continue
		}
		analysis.Errors = append(analysis.Errors, entry)
		analysis.TotalErrors++
		if entry.Analysis.Confidence == scorer.ConfidenceHigh {
			analysis.HighConfidenceErrors++
		}
		for _, category := range entry.Analysis.Categories {
			analysis.CategoryCounts[category]++
		}
	}

	// Stable: equal scores keep their original relative order.
	sort.SliceStable(analysis.Errors, func(i, j int) bool {
		return analysis.Errors[i].Analysis.Score > analysis.Errors[j].Analysis.Score
	})

	return analysis
}

// CompareRuns builds the composite report for a blue/green pair:
// structural comparison, per-color error analysis, and key/value
// divergences extracted from the message text of each side.
func CompareRuns(blue, green common.LogSequence, cfg compare.ExclusionConfig) *RunReport {
	report := &RunReport{
		Comparison: compare.Compare(blue, green, cfg),
		Blue:       Analyze(blue),
		Green:      Analyze(green),
	}
	report.Divergences = CompareValues(
		ExtractKeyValuePairs(blue),
		ExtractKeyValuePairs(green),
	)
	return report
}
