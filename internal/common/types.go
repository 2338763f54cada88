package common

import (
	"fmt"
	"strings"
)

// Record is a nested log record: string keys mapping to scalars, nil,
// []any sequences, or further map[string]any levels. Records are treated
// as immutable once ingested; transformations copy.
type Record = map[string]any

// LogRecord pairs a parsed record with its position in the source
// sequence. LineNumber and SourceFile are reporting metadata only and
// never participate in comparison or scoring.
type LogRecord struct {
	Index      int    `json:"index"`
	LineNumber int    `json:"line_number,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
	Fields     Record `json:"fields"`
}

// LogSequence is an ordered run of log records. Order determines
// positional pairing against the opposite-color sequence and nothing
// else; it is not assumed to be causal or temporal.
type LogSequence []LogRecord

// Color identifies which side of a comparison a sequence belongs to.
type Color string

const (
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
)

// Message returns the record's message field as a string, or "" when
// absent or non-string. Checks the usual field names in order.
func (r LogRecord) Message() string {
	for _, key := range []string{"message", "msg", "text", "log"} {
		if v, ok := r.Fields[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// Level returns the record's level field as a trimmed string, or "".
func (r LogRecord) Level() string {
	for _, key := range []string{"level", "severity", "lvl"} {
		if v, ok := r.Fields[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// FormatValue renders a record value for report output.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// JoinPath appends a segment to a dot-delimited field path.
func JoinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// IndexPath appends a bracketed array index to a field path.
func IndexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
