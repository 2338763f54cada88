package scorer

import (
	"reflect"
	"testing"

	"github.com/yildizm/LogDelta/internal/common"
)

func record(fields common.Record) common.LogRecord {
	return common.LogRecord{Fields: fields}
}

func TestScoreNilRecord(t *testing.T) {
	analysis := Score(common.LogRecord{})

	if analysis.Score != 0 || analysis.IsError {
		t.Errorf("nil record must yield zero analysis, got %+v", analysis)
	}
	if analysis.Confidence != ConfidenceLow {
		t.Errorf("expected LOW confidence, got %s", analysis.Confidence)
	}
}

func TestScoreCleanRecord(t *testing.T) {
	analysis := Score(record(common.Record{"message": "ok", "level": "info"}))

	if analysis.Score != 0 {
		t.Errorf("expected score 0, got %d", analysis.Score)
	}
	if analysis.IsError {
		t.Error("clean record classified as error")
	}
}

func TestScoreFatalLevelHighConfidence(t *testing.T) {
	analysis := Score(record(common.Record{"message": "system crashed", "level": "fatal"}))

	if analysis.Score < 100 {
		t.Errorf("fatal level must contribute at least 100, got %d", analysis.Score)
	}
	if analysis.Confidence != ConfidenceHigh {
		t.Errorf("expected HIGH confidence, got %s", analysis.Confidence)
	}
	if len(analysis.Categories) == 0 || analysis.Categories[0] != "FATAL_LEVEL" {
		t.Errorf("expected FATAL_LEVEL primary category, got %v", analysis.Categories)
	}
}

func TestScoreErrorLevelWithKeyword(t *testing.T) {
	analysis := Score(record(common.Record{
		"message": "get session variable not found",
		"level":   "error",
	}))

	if analysis.Score < 95 {
		t.Errorf("expected score >= 95 (level 80 + keyword 15), got %d", analysis.Score)
	}
	if !analysis.IsError {
		t.Error("expected error classification")
	}
	if analysis.Confidence != ConfidenceHigh {
		t.Errorf("expected HIGH confidence, got %s", analysis.Confidence)
	}
	if analysis.Categories[0] != "ERROR_LEVEL" {
		t.Errorf("expected ERROR_LEVEL primary category, got %v", analysis.Categories)
	}
}

func TestScoreDampenerSuppressesFalsePositive(t *testing.T) {
	analysis := Score(record(common.Record{
		"message": "deployment completed successfully, error-free run",
	}))

	if analysis.IsError {
		t.Errorf("dampened message classified as error with score %d", analysis.Score)
	}
}

func TestScoreKeywordOnlyFallbackCategory(t *testing.T) {
	analysis := Score(record(common.Record{
		"message": "operation failed unexpectedly",
	}))

	if !analysis.IsError {
		t.Fatalf("expected error classification, got score %d", analysis.Score)
	}
	if !reflect.DeepEqual(analysis.Categories, []string{CategoryGeneralError}) {
		t.Errorf("expected GENERAL_ERROR fallback, got %v", analysis.Categories)
	}
}

func TestScoreStructuralCategoryDeduplicated(t *testing.T) {
	analysis := Score(record(common.Record{
		"message": "lookup returned null and the handle is null",
	}))

	seen := 0
	for _, c := range analysis.Categories {
		if c == "NULL_VALUE" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("NULL_VALUE must appear once in categories, saw %d in %v", seen, analysis.Categories)
	}
	// Both matches still add their scores.
	if analysis.Score < 40 {
		t.Errorf("expected both pattern scores accumulated, got %d", analysis.Score)
	}
}

func TestScoreAdditiveKeywords(t *testing.T) {
	single := Score(record(common.Record{"message": "request timeout"}))
	double := Score(record(common.Record{"message": "request timeout after connection refused"}))

	if double.Score <= single.Score {
		t.Errorf("multiple signals must accumulate: %d <= %d", double.Score, single.Score)
	}
}

func TestScoreAmplifier(t *testing.T) {
	plain := Score(record(common.Record{"message": "database error on write"}))
	amplified := Score(record(common.Record{"message": "critical database error on write"}))

	if amplified.Score <= plain.Score {
		t.Errorf("amplifier must raise score: %d <= %d", amplified.Score, plain.Score)
	}
}

func TestScoreStructuralPatterns(t *testing.T) {
	cases := []struct {
		message  string
		category string
	}{
		{"dial tcp: connection refused", "CONNECTION"},
		{"context deadline exceeded", "TIMEOUT"},
		{"runtime: out of memory", "MEMORY"},
		{"authentication failure for user admin", "AUTH"},
		{"upstream returned status 503", "HTTP_SERVER_ERROR"},
		{"failed to unmarshal payload", "PARSE"},
		{"deadlock detected on table orders", "CONCURRENCY"},
		{"panic: runtime error", "RUNTIME"},
	}

	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			analysis := Score(record(common.Record{"message": tc.message}))
			found := false
			for _, c := range analysis.Categories {
				if c == tc.category {
					found = true
				}
			}
			if !found {
				t.Errorf("message %q: expected category %s, got %v", tc.message, tc.category, analysis.Categories)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	rec := record(common.Record{
		"message": "critical failure: connection refused, retrying",
		"level":   "error",
	})

	first := Score(rec)
	second := Score(rec)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("scoring is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestScoreLevelCaseInsensitive(t *testing.T) {
	lower := Score(record(common.Record{"level": "error", "message": "x"}))
	upper := Score(record(common.Record{"level": " ERROR ", "message": "x"}))

	if lower.Score != upper.Score {
		t.Errorf("level match must be case-insensitive and trimmed: %d != %d", lower.Score, upper.Score)
	}
}

func TestScoreReasonsNameEverySignal(t *testing.T) {
	analysis := Score(record(common.Record{
		"message": "connection refused",
		"level":   "error",
	}))

	// level + keyword "refused" + structural connection-refused at minimum
	if len(analysis.Reasons) < 3 {
		t.Errorf("expected every signal named in reasons, got %v", analysis.Reasons)
	}
}
