package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/go-logparser"
)

// Format selects how raw log input is parsed.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"
)

// ReadFile loads a log file into a sequence. CSV files take the
// flattened-path route; everything else goes through go-logparser with
// auto-detection unless a format is forced. A positive maxLines caps
// how many records are read; zero or negative means unlimited.
func ReadFile(path string, format Format, maxLines int) (common.LogSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatCSV || (format == FormatAuto && strings.EqualFold(filepath.Ext(path), ".csv")) {
		return ReadCSV(f, path, maxLines)
	}
	return readRaw(f, path, format, maxLines)
}

// readRaw parses newline-delimited raw log lines via go-logparser and
// converts each entry into a record, preserving line numbers for
// reporting. Parser-extracted fields are carried over; the canonical
// message/level/timestamp keys win on collision.
func readRaw(r io.Reader, sourceFile string, format Format, maxLines int) (common.LogSequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var p logparser.Parser
	switch format {
	case FormatAuto, "":
		p = logparser.New()
	case FormatJSON:
		p = logparser.NewWithFormat(logparser.FormatJSON)
	case FormatLogfmt:
		p = logparser.NewWithFormat(logparser.FormatLogfmt)
	case FormatText:
		p = logparser.NewWithFormat(logparser.FormatText)
	default:
		return nil, fmt.Errorf("unknown format %q (available: auto, csv, json, logfmt, text)", format)
	}

	// The parser substitutes time.Now() when a line carries no
	// timestamp. Entries stamped at or after this instant were
	// fabricated during parsing, not read from the input.
	start := time.Now()
	entries, err := p.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse logs: %w", err)
	}

	if maxLines > 0 && len(entries) > maxLines {
		entries = entries[:maxLines]
	}

	seq := make(common.LogSequence, 0, len(entries))
	for i, entry := range entries {
		fields := make(common.Record, len(entry.Fields)+3)
		for k, v := range entry.Fields {
			fields[k] = v
		}
		fields["message"] = entry.Message
		if entry.Level != "" {
			fields["level"] = entry.Level
		}
		if !entry.Timestamp.IsZero() && entry.Timestamp.Before(start) {
			fields["timestamp"] = entry.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")
		}
		seq = append(seq, common.LogRecord{
			Index:      i,
			LineNumber: i + 1,
			SourceFile: sourceFile,
			Fields:     fields,
		})
	}

	return seq, nil
}
