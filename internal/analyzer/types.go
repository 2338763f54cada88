package analyzer

import (
	"github.com/yildizm/LogDelta/internal/common"
	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/scorer"
)

// EntryAnalysis annotates one record with its scoring result.
type EntryAnalysis struct {
	Record   common.LogRecord     `json:"record"`
	Analysis scorer.ErrorAnalysis `json:"analysis"`
}

// SetAnalysis is the error summary for one log sequence.
// Errors is sorted by score descending; ties keep original relative
// order.
type SetAnalysis struct {
	TotalEntries         int             `json:"total_entries"`
	Errors               []EntryAnalysis `json:"errors"`
	NonErrors            []EntryAnalysis `json:"non_errors"`
	CategoryCounts       map[string]int  `json:"category_counts"`
	TotalErrors          int             `json:"total_errors"`
	HighConfidenceErrors int             `json:"high_confidence_errors"`
}

// Direction classifies a key/value divergence between the two colors.
type Direction string

const (
	// DirectionRegressed: valid in blue, invalid in green.
	DirectionRegressed Direction = "regressed"
	// DirectionImproved: invalid in blue, valid in green.
	DirectionImproved Direction = "improved"
)

// DivergenceEntry flags a key observed in both colors' messages whose
// retained value is valid on one side and invalid on the other.
type DivergenceEntry struct {
	Key        string    `json:"key"`
	BlueValue  string    `json:"blue_value"`
	GreenValue string    `json:"green_value"`
	Direction  Direction `json:"direction"`
}

// RunReport is the composite output consumed by the presentation layer:
// the structural comparison plus per-color error analyses and the
// key/value divergences between them.
type RunReport struct {
	Comparison  *compare.Report   `json:"comparison,omitempty"`
	Blue        *SetAnalysis      `json:"blue"`
	Green       *SetAnalysis      `json:"green"`
	Divergences []DivergenceEntry `json:"divergences"`
}
