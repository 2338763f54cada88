package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
)

// csvFormatter exports diff entries as CSV rows for spreadsheet triage
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *analyzer.RunReport) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Entry Index", "Kind", "Path", "Blue Value", "Green Value"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if report.Comparison != nil {
		for _, pair := range report.Comparison.Pairs {
			for _, entry := range pair.Entries {
				path := entry.Path
				if entry.Kind == compare.DiffArrayChanged {
					path = fmt.Sprintf("%s[%d]", entry.Path, entry.ArrayIndex)
				}
				row := []string{
					strconv.Itoa(pair.Index),
					string(entry.Kind),
					path,
					common.FormatValue(entry.BlueValue),
					common.FormatValue(entry.GreenValue),
				}
				if err := writer.Write(row); err != nil {
					return nil, fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return b.Bytes(), nil
}
