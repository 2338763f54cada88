package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
)

func testReport() *analyzer.RunReport {
	blue := common.LogSequence{
		{Index: 0, LineNumber: 2, Fields: common.Record{"message": "session: abc123 ready", "level": "info", "v": 1.0}},
	}
	green := common.LogSequence{
		{Index: 0, LineNumber: 2, Fields: common.Record{"message": "session: null failure", "level": "error", "v": 2.0}},
	}
	return analyzer.CompareRuns(blue, green, compare.ExclusionConfig{})
}

func TestTerminalFormatter(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = false
	f := NewTerminal(opts)

	out, err := f.Format(testReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{"Summary", "Mismatched", "Green Errors", "Value Divergences", "regressed"} {
		if !strings.Contains(text, want) {
			t.Errorf("terminal output missing %q:\n%s", want, text)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(testReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	summary, ok := parsed["summary"].(map[string]any)
	if !ok {
		t.Fatal("missing summary section")
	}
	if summary["mismatched_count"] != 1.0 {
		t.Errorf("expected mismatched_count 1, got %v", summary["mismatched_count"])
	}
	if _, ok := parsed["divergences"]; !ok {
		t.Error("missing divergences section")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdown(DefaultOptions())

	out, err := f.Format(testReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "# Blue/Green Log Comparison Report") {
		t.Error("missing report title")
	}
	if !strings.Contains(text, "| Mismatched | 1 |") {
		t.Errorf("missing summary row:\n%s", text)
	}
	if !strings.Contains(text, "## Value Divergences") {
		t.Error("missing divergence section")
	}
}

func TestCSVFormatter(t *testing.T) {
	f := NewCSV()

	out, err := f.Format(testReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")

	if len(lines) < 2 {
		t.Fatalf("expected header plus rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Entry Index,Kind,Path") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestNewFormatterUnknown(t *testing.T) {
	if _, err := New("xml", DefaultOptions()); err == nil {
		t.Error("expected error for unknown format")
	}
	for _, format := range []string{"terminal", "json", "markdown", "csv", ""} {
		if _, err := New(format, DefaultOptions()); err != nil {
			t.Errorf("format %q: unexpected error %v", format, err)
		}
	}
}
