package analyzer

import (
	"testing"

	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/scorer"
)

func seq(records ...common.Record) common.LogSequence {
	out := make(common.LogSequence, len(records))
	for i, r := range records {
		out[i] = common.LogRecord{Index: i, Fields: r}
	}
	return out
}

func TestAnalyzePartition(t *testing.T) {
	analysis := Analyze(seq(
		common.Record{"message": "service started", "level": "info"},
		common.Record{"message": "connection refused by upstream", "level": "error"},
		common.Record{"message": "request complete", "level": "info"},
	))

	if analysis.TotalEntries != 3 {
		t.Errorf("expected 3 entries, got %d", analysis.TotalEntries)
	}
	if analysis.TotalErrors != 1 {
		t.Errorf("expected 1 error, got %d", analysis.TotalErrors)
	}
	if len(analysis.NonErrors) != 2 {
		t.Errorf("expected 2 non-errors, got %d", len(analysis.NonErrors))
	}
}

func TestAnalyzeSortStableDescending(t *testing.T) {
	analysis := Analyze(seq(
		common.Record{"message": "operation failed unexpectedly"},                // medium score
		common.Record{"message": "fatal error: out of memory", "level": "fatal"}, // highest
		common.Record{"message": "operation failed unexpectedly"},                // same as first
	))

	if analysis.TotalErrors != 3 {
		t.Fatalf("expected 3 errors, got %d", analysis.TotalErrors)
	}
	errs := analysis.Errors
	if errs[0].Record.Index != 1 {
		t.Errorf("expected highest score first, got index %d", errs[0].Record.Index)
	}
	// Stable sort: the two equal-score entries keep original order.
	if errs[1].Record.Index != 0 || errs[2].Record.Index != 2 {
		t.Errorf("tie order not preserved: %d, %d", errs[1].Record.Index, errs[2].Record.Index)
	}
}

func TestAnalyzeCategoryHistogram(t *testing.T) {
	analysis := Analyze(seq(
		common.Record{"message": "connection refused", "level": "error"},
		common.Record{"message": "connection refused", "level": "error"},
	))

	if analysis.CategoryCounts["CONNECTION"] != 2 {
		t.Errorf("expected CONNECTION count 2, got %d", analysis.CategoryCounts["CONNECTION"])
	}
	if analysis.CategoryCounts["ERROR_LEVEL"] != 2 {
		t.Errorf("expected ERROR_LEVEL count 2, got %d", analysis.CategoryCounts["ERROR_LEVEL"])
	}
	if analysis.HighConfidenceErrors != 2 {
		t.Errorf("expected 2 high-confidence errors, got %d", analysis.HighConfidenceErrors)
	}
}

func TestAnalyzeEmptySequence(t *testing.T) {
	analysis := Analyze(nil)

	if analysis.TotalEntries != 0 || analysis.TotalErrors != 0 {
		t.Errorf("expected empty analysis, got %+v", analysis)
	}
}

func TestExtractKeyValuePairs(t *testing.T) {
	kv := ExtractKeyValuePairs(seq(
		common.Record{"message": "session: abc123 user = alice"},
		common.Record{"message": "result -> success handler => process"},
	))

	cases := map[string]string{
		"session": "abc123",
		"user":    "alice",
		"result":  "success",
		"handler": "process",
	}
	for key, want := range cases {
		if kv[key] != want {
			t.Errorf("key %q: expected %q, got %q", key, want, kv[key])
		}
	}
}

func TestExtractKeyValueRetention(t *testing.T) {
	// First valid value wins; invalid is replaced by a later valid one,
	// but a stored valid value is never replaced by an invalid one.
	kv := ExtractKeyValuePairs(seq(
		common.Record{"message": "token: null"},
		common.Record{"message": "token: abc123"},
		common.Record{"message": "token: undefined"},
		common.Record{"message": "session: live1"},
		common.Record{"message": "session: live2"},
	))

	if kv["token"] != "abc123" {
		t.Errorf("expected invalid token value replaced by valid, got %q", kv["token"])
	}
	if kv["session"] != "live1" {
		t.Errorf("expected first valid value retained, got %q", kv["session"])
	}
}

func TestExtractKeyValueFilters(t *testing.T) {
	kv := ExtractKeyValuePairs(seq(
		common.Record{"message": "ok: yes the: thing ab: cd"},
	))

	if _, ok := kv["the"]; ok {
		t.Error("stopword key not filtered")
	}
	if _, ok := kv["ab"]; ok {
		t.Error("short key not filtered")
	}
	if _, ok := kv["ok"]; ok {
		t.Error("two-letter key not filtered")
	}
}

func TestCompareValuesDivergence(t *testing.T) {
	blue := map[string]string{
		"session": "abc123",
		"token":   "null",
		"status":  "active",
		"region":  "us-east",
	}
	green := map[string]string{
		"session": "undefined",
		"token":   "xyz789",
		"status":  "active",
		"zone":    "b",
	}

	divergences := CompareValues(blue, green)

	if len(divergences) != 2 {
		t.Fatalf("expected 2 divergences, got %d: %+v", len(divergences), divergences)
	}
	// Sorted by key: session before token.
	if divergences[0].Key != "session" || divergences[0].Direction != DirectionRegressed {
		t.Errorf("expected session regressed, got %+v", divergences[0])
	}
	if divergences[1].Key != "token" || divergences[1].Direction != DirectionImproved {
		t.Errorf("expected token improved, got %+v", divergences[1])
	}
}

func TestCompareValuesPrefixInvalid(t *testing.T) {
	// "error:..." counts as invalid via prefix match.
	divergences := CompareValues(
		map[string]string{"result": "ok"},
		map[string]string{"result": "error:timeout"},
	)

	if len(divergences) != 1 || divergences[0].Direction != DirectionRegressed {
		t.Fatalf("expected one regressed divergence, got %+v", divergences)
	}
}

func TestCompareRunsComposite(t *testing.T) {
	blue := seq(
		common.Record{"message": "session: abc123", "level": "info", "v": 1.0},
	)
	green := seq(
		common.Record{"message": "session: null", "level": "error", "v": 2.0},
	)

	report := CompareRuns(blue, green, compare.ExclusionConfig{})

	if report.Comparison.MismatchedCount != 1 {
		t.Errorf("expected 1 mismatched pair, got %d", report.Comparison.MismatchedCount)
	}
	if report.Green.TotalErrors != 1 {
		t.Errorf("expected 1 green error, got %d", report.Green.TotalErrors)
	}
	if report.Blue.TotalErrors != 0 {
		t.Errorf("expected 0 blue errors, got %d", report.Blue.TotalErrors)
	}
	if len(report.Divergences) != 1 || report.Divergences[0].Direction != DirectionRegressed {
		t.Fatalf("expected session regression, got %+v", report.Divergences)
	}
	if report.Green.Errors[0].Analysis.Confidence != scorer.ConfidenceHigh {
		t.Errorf("expected HIGH confidence green error")
	}
}
