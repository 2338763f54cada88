package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/LogDelta/internal/compare"
)

func TestReadRawCarriesParserFields(t *testing.T) {
	input := `{"level":"info","message":"deploy started","version":"1.2.3","region":"us-east-1"}`

	seq, err := readRaw(strings.NewReader(input), "green.log", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw failed: %v", err)
	}
	if len(seq) != 1 {
		t.Fatalf("expected 1 record, got %d", len(seq))
	}

	fields := seq[0].Fields
	if fields["message"] != "deploy started" {
		t.Errorf("unexpected message: %v", fields["message"])
	}
	if fields["level"] != "INFO" {
		t.Errorf("unexpected level: %v", fields["level"])
	}
	if fields["version"] != "1.2.3" {
		t.Errorf("expected version field to survive parsing, got %v", fields["version"])
	}
	if fields["region"] != "us-east-1" {
		t.Errorf("expected region field to survive parsing, got %v", fields["region"])
	}
}

func TestReadRawExtraFieldDifferenceIsDetected(t *testing.T) {
	blue, err := readRaw(strings.NewReader(`{"message":"ready","version":"1.0.0"}`), "blue.log", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw blue failed: %v", err)
	}
	green, err := readRaw(strings.NewReader(`{"message":"ready","version":"2.0.0"}`), "green.log", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw green failed: %v", err)
	}

	report := compare.Compare(blue, green, compare.ExclusionConfig{})
	if report.MismatchedCount != 1 {
		t.Fatalf("expected version difference to mismatch, got %d mismatched", report.MismatchedCount)
	}
}

func TestReadRawTimestampOnlyWhenPresent(t *testing.T) {
	input := strings.Join([]string{
		`{"timestamp":"2024-01-01T00:00:00Z","message":"with ts"}`,
		`{"message":"without ts"}`,
	}, "\n")

	seq, err := readRaw(strings.NewReader(input), "", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw failed: %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("expected 2 records, got %d", len(seq))
	}

	if got := seq[0].Fields["timestamp"]; got != "2024-01-01T00:00:00.000Z" {
		t.Errorf("expected parsed timestamp to be kept, got %v", got)
	}
	if _, ok := seq[1].Fields["timestamp"]; ok {
		t.Errorf("record without a source timestamp must not gain one: %v", seq[1].Fields)
	}
}

func TestReadRawIdenticalInputsMatchWithoutTimestampExclusion(t *testing.T) {
	input := `{"message":"steady state","code":200}`

	blue, err := readRaw(strings.NewReader(input), "blue.log", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw blue failed: %v", err)
	}
	green, err := readRaw(strings.NewReader(input), "green.log", FormatJSON, 0)
	if err != nil {
		t.Fatalf("readRaw green failed: %v", err)
	}

	report := compare.Compare(blue, green, compare.ExclusionConfig{})
	if report.MismatchedCount != 0 {
		t.Fatalf("identical inputs must match with no exclusions, got %d mismatched", report.MismatchedCount)
	}
}

func TestReadFileMaxLines(t *testing.T) {
	lines := []string{
		`{"message":"one"}`,
		`{"message":"two"}`,
		`{"message":"three"}`,
		`{"message":"four"}`,
	}
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	seq, err := ReadFile(path, FormatJSON, 2)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("expected cap of 2 records, got %d", len(seq))
	}

	seq, err = ReadFile(path, FormatJSON, 0)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(seq) != len(lines) {
		t.Fatalf("expected unlimited read of %d records, got %d", len(lines), len(seq))
	}
}
