package compare

import (
	"regexp"
	"strings"

	"github.com/yildizm/LogDelta/internal/common"
)

// ExclusionConfig lists fields to suppress from structural comparison.
// Fields are exact names or dot-paths; Patterns are regular expressions.
// Rule order is irrelevant; the filter is a pure set-membership check.
type ExclusionConfig struct {
	Fields   []string `yaml:"fields" json:"fields"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// exclusionMatcher is the compiled form of an ExclusionConfig.
type exclusionMatcher struct {
	names   map[string]bool
	regexes []*regexp.Regexp
}

// compileExclusions builds a matcher from a config. Invalid regex
// patterns are skipped: one bad user-supplied pattern must not abort a
// comparison.
func compileExclusions(cfg ExclusionConfig) *exclusionMatcher {
	m := &exclusionMatcher{names: make(map[string]bool, len(cfg.Fields))}
	for _, f := range cfg.Fields {
		f = strings.TrimSpace(f)
		if f != "" {
			m.names[f] = true
		}
	}
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		m.regexes = append(m.regexes, re)
	}
	return m
}

// excludes reports whether a field at the given full path and final
// segment is suppressed. Exact rules match the full dot-path or any
// single segment; regex rules are tested against both independently.
func (m *exclusionMatcher) excludes(fullPath, segment string) bool {
	if m.names[fullPath] || m.names[segment] {
		return true
	}
	for _, re := range m.regexes {
		if re.MatchString(fullPath) || re.MatchString(segment) {
			return true
		}
	}
	return false
}

// filterRecord returns a copy of rec with every excluded field pruned,
// recursively. The input is never mutated.
func (m *exclusionMatcher) filterRecord(rec common.Record, prefix string) common.Record {
	if rec == nil {
		return nil
	}
	out := make(common.Record, len(rec))
	for key, val := range rec {
		path := common.JoinPath(prefix, key)
		if m.excludes(path, key) {
			continue
		}
		out[key] = m.filterValue(val, path)
	}
	return out
}

// filterValue filters one value in place within the record tree.
// Mappings recurse, sequences filter element-wise with bracketed index
// paths, and scalars (including nil) pass through unchanged.
func (m *exclusionMatcher) filterValue(val any, path string) any {
	switch v := val.(type) {
	case common.Record:
		return m.filterRecord(v, path)
	case []any:
		out := make([]any, 0, len(v))
		for i, item := range v {
			elemPath := common.IndexPath(path, i)
			if m.excludes(elemPath, elemPath) {
				continue
			}
			out = append(out, m.filterValue(item, elemPath))
		}
		return out
	default:
		return v
	}
}

// Filter applies the exclusion config to a single record, returning a
// pruned copy. Exposed for callers that need the filtered view without
// a full comparison.
func Filter(rec common.Record, cfg ExclusionConfig) common.Record {
	return compileExclusions(cfg).filterRecord(rec, "")
}
