package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/go-promptfmt"
)

const (
	summarySystemPrompt = "You are a release verification assistant. You compare structured " +
		"logs from a blue (baseline) deployment and a green (candidate) deployment and explain " +
		"whether the candidate looks safe to promote. Be concrete, cite the entries you reason " +
		"from, and call out regressions explicitly."

	// maxSampledErrors bounds how many scored entries per color go into
	// the prompt so long runs stay inside the provider's context window.
	maxSampledErrors = 5

	summaryMaxTokens = 600
)

// Summarizer turns a comparison report into an LLM-written verdict.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer backed by the given provider.
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Summarize asks the provider for a prose assessment of the run report.
func (s *Summarizer) Summarize(ctx context.Context, report *analyzer.RunReport) (string, error) {
	return s.SummarizeWithContext(ctx, report, "")
}

// SummarizeWithContext is Summarize with an extra documentation block
// attached to the prompt, typically built from a repository scan.
func (s *Summarizer) SummarizeWithContext(ctx context.Context, report *analyzer.RunReport, docContext string) (string, error) {
	if s.provider == nil {
		return "", NewConfigurationError("summarizer", "provider", "no provider configured")
	}
	if report == nil {
		return "", NewRequestError(s.provider.Name(), "nil report", nil)
	}

	prompt := buildSummaryPrompt(report, docContext)

	req := &CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    summaryMaxTokens,
		Temperature:  0.3,
	}

	resp, err := s.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Content), nil
}

func buildSummaryPrompt(report *analyzer.RunReport, docContext string) *promptfmt.Prompt {
	var sb strings.Builder

	if report.Comparison != nil {
		c := report.Comparison
		fmt.Fprintf(&sb, "Structural comparison: %d blue entries vs %d green entries, %d matched, %d mismatched, %d blue-only, %d green-only.\n",
			c.BlueTotal, c.GreenTotal, c.MatchedCount, c.MismatchedCount, c.BlueOnlyCount, c.GreenOnlyCount)
	}

	writeColorSection(&sb, common.ColorBlue, report.Blue)
	writeColorSection(&sb, common.ColorGreen, report.Green)

	if len(report.Divergences) > 0 {
		sb.WriteString("\nDiverging key/value pairs (blue -> green):\n")
		for _, d := range report.Divergences {
			fmt.Fprintf(&sb, "- %s: %q -> %q (%s)\n", d.Key, d.BlueValue, d.GreenValue, d.Direction)
		}
	}

	pb := promptfmt.New().
		System(summarySystemPrompt).
		User("Assess this blue/green log comparison and state whether the green deployment regressed:\n\n%s", sb.String())

	if docContext != "" {
		pb = pb.AddContext("documentation", docContext)
	}

	return pb.Build()
}

func writeColorSection(sb *strings.Builder, color common.Color, set *analyzer.SetAnalysis) {
	if set == nil {
		return
	}

	fmt.Fprintf(sb, "\n%s deployment: %d entries, %d errors (%d high confidence).\n",
		color, set.TotalEntries, set.TotalErrors, set.HighConfidenceErrors)

	if len(set.CategoryCounts) > 0 {
		categories := make([]string, 0, len(set.CategoryCounts))
		for cat := range set.CategoryCounts {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		parts := make([]string, 0, len(categories))
		for _, cat := range categories {
			parts = append(parts, fmt.Sprintf("%s=%d", cat, set.CategoryCounts[cat]))
		}
		fmt.Fprintf(sb, "Error categories: %s\n", strings.Join(parts, ", "))
	}

	for i, entry := range set.Errors {
		if i >= maxSampledErrors {
			fmt.Fprintf(sb, "... and %d more errors\n", len(set.Errors)-maxSampledErrors)
			break
		}
		msg := entry.Record.Message()
		if msg == "" {
			msg = common.FormatValue(entry.Record.Fields)
		}
		fmt.Fprintf(sb, "- [score %d, %s] %s\n", entry.Analysis.Score, entry.Analysis.Confidence, msg)
	}
}
