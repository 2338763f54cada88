package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yildizm/LogDelta/internal/common"
)

// ReadCSV parses flattened CSV log exports into a log sequence.
// The header row carries dot-delimited field paths with bracketed array
// indices (e.g. "log.level", "tags[0]"); each data row is unflattened
// back into a nested record. Empty cells mean the field is absent, which
// is distinct from an explicit "null" cell. A positive maxLines caps
// how many data rows are read.
func ReadCSV(r io.Reader, sourceFile string, maxLines int) (common.LogSequence, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return common.LogSequence{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var seq common.LogSequence
	line := 1
	for {
		if maxLines > 0 && len(seq) >= maxLines {
			break
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		fields := make(common.Record)
		for i, cell := range row {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			setPath(fields, header[i], inferValue(cell))
		}

		seq = append(seq, common.LogRecord{
			Index:      len(seq),
			LineNumber: line,
			SourceFile: sourceFile,
			Fields:     fields,
		})
	}

	return seq, nil
}

// inferValue converts a CSV cell into a typed record value: null
// tokens, booleans, numbers, else the string as-is. Numbers become
// float64 to match the JSON ingestion path.
func inferValue(cell string) any {
	switch strings.ToLower(cell) {
	case "null", "nil":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return n
	}
	return cell
}

// setPath writes a value into a nested record at a dot-delimited path
// with optional bracketed array indices per segment.
func setPath(rec common.Record, path string, value any) {
	segments := strings.Split(path, ".")
	current := rec
	for i, segment := range segments {
		name, indices := splitIndices(segment)
		if name == "" {
			return
		}
		last := i == len(segments)-1

		if len(indices) == 0 {
			if last {
				current[name] = value
				return
			}
			next, ok := current[name].(common.Record)
			if !ok {
				next = make(common.Record)
				current[name] = next
			}
			current = next
			continue
		}

		// Walk bracketed indices, growing arrays as needed.
		arr, _ := current[name].([]any)
		arr, leaf := descendIndices(arr, indices, last, value)
		current[name] = arr
		if last {
			return
		}
		current = leaf
	}
}

// descendIndices resolves a chain of array indices like [2][0],
// growing each level with nils to fit. When terminal is true the value
// is stored at the innermost index; otherwise a record is ensured there
// and returned for further descent.
func descendIndices(arr []any, indices []int, terminal bool, value any) ([]any, common.Record) {
	if len(indices) == 0 {
		return arr, nil
	}
	idx := indices[0]
	for len(arr) <= idx {
		arr = append(arr, nil)
	}

	if len(indices) > 1 {
		inner, _ := arr[idx].([]any)
		inner, leaf := descendIndices(inner, indices[1:], terminal, value)
		arr[idx] = inner
		return arr, leaf
	}

	if terminal {
		arr[idx] = value
		return arr, nil
	}
	rec, ok := arr[idx].(common.Record)
	if !ok {
		rec = make(common.Record)
		arr[idx] = rec
	}
	return arr, rec
}

// splitIndices splits "tags[0][1]" into "tags" and [0, 1]. Malformed
// bracket syntax leaves the segment as a plain name.
func splitIndices(segment string) (string, []int) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		return segment, nil
	}
	name := segment[:open]
	var indices []int
	rest := segment[open:]
	for strings.HasPrefix(rest, "[") {
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return segment, nil
		}
		idx, err := strconv.Atoi(rest[1:close])
		if err != nil || idx < 0 {
			return segment, nil
		}
		indices = append(indices, idx)
		rest = rest[close+1:]
	}
	if rest != "" {
		return segment, nil
	}
	return name, indices
}
