package formatter

import (
	"fmt"

	"github.com/yildizm/LogDelta/internal/analyzer"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *analyzer.RunReport) ([]byte, error)
}

// Options controls rendering limits and styling shared by formatters.
type Options struct {
	Color        bool
	MaxDiffLines int
	MaxErrors    int
}

// DefaultOptions returns rendering defaults matching the config package.
func DefaultOptions() Options {
	return Options{
		Color:        true,
		MaxDiffLines: 50,
		MaxErrors:    20,
	}
}

// New creates a formatter for the named format.
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "terminal", "text", "":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(opts), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (available: terminal, json, markdown, csv)", format)
	}
}
