package scorer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/yildizm/LogDelta/internal/common"
)

// Scorer scores log records against the compiled pattern catalog.
// Scoring is a pure function per record; a Scorer is safe for
// concurrent use since the compiled catalog is never mutated.
type Scorer struct {
	structural []*compiledStructural
	amplifiers []*compiledModifier
	dampeners  []*compiledModifier
}

type compiledStructural struct {
	structuralPattern
	regex *regexp.Regexp
}

type compiledModifier struct {
	contextModifier
	regex *regexp.Regexp
}

// mustCompileInsensitive compiles a catalog pattern with the
// case-insensitive flag.
func mustCompileInsensitive(pattern string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + pattern)
}

var (
	defaultScorer *Scorer
	defaultOnce   sync.Once
)

// Default returns the process-wide scorer built from the static catalog.
func Default() *Scorer {
	defaultOnce.Do(func() {
		defaultScorer = New()
	})
	return defaultScorer
}

// New compiles the static catalog into a Scorer. Catalog patterns are
// maintainer-controlled; a pattern that fails to compile is a
// programming error and panics at startup rather than being skipped.
func New() *Scorer {
	s := &Scorer{}
	for _, sp := range structuralTable {
		s.structural = append(s.structural, &compiledStructural{
			structuralPattern: sp,
			regex:             mustCompileInsensitive(sp.pattern),
		})
	}
	for _, am := range amplifierTable {
		s.amplifiers = append(s.amplifiers, &compiledModifier{
			contextModifier: am,
			regex:           mustCompileInsensitive(am.pattern),
		})
	}
	for _, dm := range dampenerTable {
		s.dampeners = append(s.dampeners, &compiledModifier{
			contextModifier: dm,
			regex:           mustCompileInsensitive(dm.pattern),
		})
	}
	return s
}

// Score analyzes one record and returns its error analysis.
// A nil or message-less record yields the zero-value analysis.
//
// The pipeline is additive then multiplicative: level severity plus all
// keyword hits plus all structural hits, then every matching context
// modifier scales the running total. The final score is rounded to the
// nearest integer.
func (s *Scorer) Score(rec common.LogRecord) ErrorAnalysis {
	analysis := ErrorAnalysis{Confidence: ConfidenceLow}
	if rec.Fields == nil {
		return analysis
	}

	message := rec.Message()
	total := 0.0

	// Layer 1: level severity.
	if level := strings.ToLower(strings.TrimSpace(rec.Level())); level != "" {
		if entry, ok := severityTable[level]; ok && entry.score > 0 {
			total += float64(entry.score)
			analysis.Categories = appendCategory(analysis.Categories, entry.category)
			analysis.Reasons = append(analysis.Reasons,
				fmt.Sprintf("level %q severity %d", level, entry.score))
		}
	}

	if message != "" {
		lower := strings.ToLower(message)

		// Layer 2: keyword hits. Substring search, no word boundary;
		// each distinct keyword counts once. Keywords contribute score
		// but no category.
		for _, kw := range keywordTable {
			if strings.Contains(lower, kw.keyword) {
				total += float64(kw.weight)
				analysis.Reasons = append(analysis.Reasons,
					fmt.Sprintf("keyword %q +%d", kw.keyword, kw.weight))
			}
		}

		// Layer 3: structural patterns on the raw message.
		for _, sp := range s.structural {
			if sp.regex.MatchString(message) {
				total += float64(sp.score)
				analysis.Categories = appendCategory(analysis.Categories, sp.category)
				analysis.Reasons = append(analysis.Reasons,
					fmt.Sprintf("pattern %s (%s) +%d", sp.name, sp.category, sp.score))
			}
		}

		// Layer 4: context modifiers, cumulative and order-independent.
		for _, am := range s.amplifiers {
			if am.regex.MatchString(message) {
				total *= am.multiplier
				analysis.Reasons = append(analysis.Reasons,
					fmt.Sprintf("amplifier %s x%.2f", am.name, am.multiplier))
			}
		}
		for _, dm := range s.dampeners {
			if dm.regex.MatchString(message) {
				total *= dm.multiplier
				analysis.Reasons = append(analysis.Reasons,
					fmt.Sprintf("dampener %s x%.2f", dm.name, dm.multiplier))
			}
		}
	}

	analysis.Score = int(math.Round(total))
	analysis.IsError = analysis.Score >= ErrorScoreThreshold
	switch {
	case analysis.Score >= HighConfidenceThreshold:
		analysis.Confidence = ConfidenceHigh
	case analysis.IsError:
		analysis.Confidence = ConfidenceMedium
	default:
		analysis.Confidence = ConfidenceLow
	}

	// Keyword-only hits carry no category; errors still need one.
	if analysis.IsError && len(analysis.Categories) == 0 {
		analysis.Categories = []string{CategoryGeneralError}
	}

	return analysis
}

// Score analyzes one record with the default scorer.
func Score(rec common.LogRecord) ErrorAnalysis {
	return Default().Score(rec)
}

// appendCategory appends a category unless it is already present.
func appendCategory(categories []string, category string) []string {
	for _, c := range categories {
		if c == category {
			return categories
		}
	}
	return append(categories, category)
}
