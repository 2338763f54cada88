package compare

import (
	"github.com/yildizm/LogDelta/internal/common"
)

// DiffKind tags the variant of a DiffEntry.
type DiffKind string

const (
	// DiffAdded marks a path present in green but absent in blue.
	DiffAdded DiffKind = "added"
	// DiffDeleted marks a path present in blue but absent in green.
	DiffDeleted DiffKind = "deleted"
	// DiffEdited marks a scalar value change at an identical path.
	DiffEdited DiffKind = "edited"
	// DiffArrayChanged marks an array element change, carrying the index
	// and the changed item.
	DiffArrayChanged DiffKind = "array_changed"
)

// DiffEntry is one structural difference between a filtered blue/green
// record pair.
type DiffEntry struct {
	Kind       DiffKind `json:"kind"`
	Path       string   `json:"path"`
	BlueValue  any      `json:"blue_value,omitempty"`
	GreenValue any      `json:"green_value,omitempty"`
	ArrayIndex int      `json:"array_index,omitempty"`
	Item       any      `json:"item,omitempty"`
}

// PairDiff holds the differences for one mismatched index pair, along
// with the filtered (post-exclusion) records that were compared.
type PairDiff struct {
	Index    int              `json:"index"`
	Entries  []DiffEntry      `json:"entries"`
	Blue     common.Record    `json:"blue"`
	Green    common.Record    `json:"green"`
	BlueRec  common.LogRecord `json:"-"`
	GreenRec common.LogRecord `json:"-"`
}

// Report aggregates a full blue/green structural comparison.
// Only mismatched pairs appear in Pairs; matched pairs contribute to
// MatchedCount alone.
type Report struct {
	Pairs      []PairDiff         `json:"pairs"`
	BlueOnly   []common.LogRecord `json:"blue_only"`
	GreenOnly  []common.LogRecord `json:"green_only"`
	BlueTotal  int                `json:"blue_total"`
	GreenTotal int                `json:"green_total"`

	MatchedCount    int `json:"matched_count"`
	MismatchedCount int `json:"mismatched_count"`
	BlueOnlyCount   int `json:"blue_only_count"`
	GreenOnlyCount  int `json:"green_only_count"`
}
