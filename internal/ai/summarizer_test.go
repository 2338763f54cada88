package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/scorer"
)

type fakeProvider struct {
	lastReq *CompletionRequest
	content string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &CompletionResponse{Content: f.content, FinishReason: "stop"}, nil
}

func (f *fakeProvider) CountTokens(text string) (int, error) { return EstimateTokens(text), nil }
func (f *fakeProvider) MaxTokens() int                       { return 4096 }
func (f *fakeProvider) ValidateConfig() error                { return nil }
func (f *fakeProvider) Close() error                         { return nil }

func testRunReport() *analyzer.RunReport {
	return &analyzer.RunReport{
		Comparison: &compare.Report{
			BlueTotal:       10,
			GreenTotal:      10,
			MatchedCount:    8,
			MismatchedCount: 2,
		},
		Blue: &analyzer.SetAnalysis{
			TotalEntries: 10,
		},
		Green: &analyzer.SetAnalysis{
			TotalEntries: 10,
			TotalErrors:  1,
			CategoryCounts: map[string]int{
				"CONNECTION": 1,
			},
			Errors: []analyzer.EntryAnalysis{
				{
					Record: common.LogRecord{
						Fields: common.Record{"message": "connection refused by upstream", "level": "error"},
					},
					Analysis: scorer.ErrorAnalysis{
						Score:      100,
						IsError:    true,
						Confidence: scorer.ConfidenceHigh,
						Categories: []string{"CONNECTION"},
					},
				},
			},
		},
		Divergences: []analyzer.DivergenceEntry{
			{Key: "session", BlueValue: "abc123", GreenValue: "null", Direction: analyzer.DirectionRegressed},
		},
	}
}

func TestSummarizeBuildsPromptFromReport(t *testing.T) {
	provider := &fakeProvider{content: " green regressed \n"}
	s := NewSummarizer(provider)

	got, err := s.Summarize(context.Background(), testRunReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "green regressed" {
		t.Errorf("expected trimmed content, got %q", got)
	}

	if provider.lastReq == nil {
		t.Fatal("provider never called")
	}

	if provider.lastReq.SystemPrompt == "" {
		t.Error("expected a system prompt")
	}

	prompt := provider.lastReq.Prompt
	for _, want := range []string{
		"10 blue entries vs 10 green entries",
		"connection refused by upstream",
		"CONNECTION=1",
		"session",
		"regressed",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestSummarizeSamplesErrors(t *testing.T) {
	report := testRunReport()
	for i := 0; i < 10; i++ {
		report.Green.Errors = append(report.Green.Errors, analyzer.EntryAnalysis{
			Record: common.LogRecord{
				Fields: common.Record{"message": "filler failure", "level": "error"},
			},
			Analysis: scorer.ErrorAnalysis{Score: 30, IsError: true, Confidence: scorer.ConfidenceMedium},
		})
	}

	provider := &fakeProvider{content: "ok"}
	if _, err := NewSummarizer(provider).Summarize(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(provider.lastReq.Prompt, "more errors") {
		t.Error("expected error sampling note in prompt")
	}
}

func TestSummarizeWithContext(t *testing.T) {
	provider := &fakeProvider{content: "ok"}
	s := NewSummarizer(provider)

	_, err := s.SummarizeWithContext(context.Background(), testRunReport(), "## Runbook\nroll back on CONNECTION errors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(provider.lastReq.Prompt, "Runbook") {
		t.Error("expected documentation context in prompt")
	}
}

func TestSummarizeNilProvider(t *testing.T) {
	s := NewSummarizer(nil)
	if _, err := s.Summarize(context.Background(), testRunReport()); err == nil {
		t.Fatal("expected error for nil provider")
	}
}

func TestSummarizeNilReport(t *testing.T) {
	s := NewSummarizer(&fakeProvider{})
	if _, err := s.Summarize(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 40), 10},
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
