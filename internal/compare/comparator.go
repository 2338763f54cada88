package compare

import (
	"sort"

	"github.com/yildizm/LogDelta/internal/common"
)

// Compare pairs two log sequences strictly by positional index and
// deep-compares each pair after exclusion filtering.
//
// Pairing is positional by design: the comparator assumes both
// sequences were ordered consistently (e.g. by timestamp) before being
// fed in. An insertion or deletion within one sequence therefore
// cascades into mismatched and one-sided entries from that index
// onward. This is a known limitation of the pairing model, not a bug;
// no content-based re-alignment is attempted.
func Compare(blue, green common.LogSequence, cfg ExclusionConfig) *Report {
	matcher := compileExclusions(cfg)

	report := &Report{
		Pairs:      []PairDiff{},
		BlueOnly:   []common.LogRecord{},
		GreenOnly:  []common.LogRecord{},
		BlueTotal:  len(blue),
		GreenTotal: len(green),
	}

	maxLen := len(blue)
	if len(green) > maxLen {
		maxLen = len(green)
	}

	for i := 0; i < maxLen; i++ {
		switch {
		case i >= len(green):
			report.BlueOnly = append(report.BlueOnly, blue[i])
			report.BlueOnlyCount++
		case i >= len(blue):
			report.GreenOnly = append(report.GreenOnly, green[i])
			report.GreenOnlyCount++
		default:
			fb := matcher.filterRecord(blue[i].Fields, "")
			fg := matcher.filterRecord(green[i].Fields, "")

			var entries []DiffEntry
			diffRecord(fb, fg, "", &entries)
			if len(entries) == 0 {
				report.MatchedCount++
				continue
			}
			sort.SliceStable(entries, func(a, b int) bool {
				return entries[a].Path < entries[b].Path
			})
			report.MismatchedCount++
			report.Pairs = append(report.Pairs, PairDiff{
				Index:    i,
				Entries:  entries,
				Blue:     fb,
				Green:    fg,
				BlueRec:  blue[i],
				GreenRec: green[i],
			})
		}
	}

	return report
}

// diffRecord walks the union of keys of two filtered mappings and
// appends one DiffEntry per structural difference. Absence is distinct
// from an explicit null value.
func diffRecord(blue, green common.Record, prefix string, entries *[]DiffEntry) {
	for key, bv := range blue {
		path := common.JoinPath(prefix, key)
		gv, ok := green[key]
		if !ok {
			*entries = append(*entries, DiffEntry{Kind: DiffDeleted, Path: path, BlueValue: bv})
			continue
		}
		diffValue(bv, gv, path, entries)
	}
	for key, gv := range green {
		if _, ok := blue[key]; !ok {
			path := common.JoinPath(prefix, key)
			*entries = append(*entries, DiffEntry{Kind: DiffAdded, Path: path, GreenValue: gv})
		}
	}
}

// diffValue compares two values at the same path.
func diffValue(bv, gv any, path string, entries *[]DiffEntry) {
	bm, bIsMap := bv.(common.Record)
	gm, gIsMap := gv.(common.Record)
	if bIsMap && gIsMap {
		diffRecord(bm, gm, path, entries)
		return
	}

	ba, bIsArr := bv.([]any)
	ga, gIsArr := gv.([]any)
	if bIsArr && gIsArr {
		diffArray(ba, ga, path, entries)
		return
	}

	if !deepEqual(bv, gv) {
		*entries = append(*entries, DiffEntry{Kind: DiffEdited, Path: path, BlueValue: bv, GreenValue: gv})
	}
}

// diffArray compares two sequences element-wise by index. Element pairs
// that are both mappings recurse with a bracketed path; all other
// differences surface as ArrayChanged entries carrying the index and the
// changed item.
func diffArray(blue, green []any, path string, entries *[]DiffEntry) {
	maxLen := len(blue)
	if len(green) > maxLen {
		maxLen = len(green)
	}
	for i := 0; i < maxLen; i++ {
		switch {
		case i >= len(green):
			*entries = append(*entries, DiffEntry{
				Kind: DiffArrayChanged, Path: path, ArrayIndex: i,
				Item: blue[i], BlueValue: blue[i],
			})
		case i >= len(blue):
			*entries = append(*entries, DiffEntry{
				Kind: DiffArrayChanged, Path: path, ArrayIndex: i,
				Item: green[i], GreenValue: green[i],
			})
		default:
			bm, bIsMap := blue[i].(common.Record)
			gm, gIsMap := green[i].(common.Record)
			if bIsMap && gIsMap {
				diffRecord(bm, gm, common.IndexPath(path, i), entries)
				continue
			}
			if !deepEqual(blue[i], green[i]) {
				*entries = append(*entries, DiffEntry{
					Kind: DiffArrayChanged, Path: path, ArrayIndex: i,
					Item: green[i], BlueValue: blue[i], GreenValue: green[i],
				})
			}
		}
	}
}

// deepEqual compares two record values structurally. Mapping equality is
// independent of key insertion order; nil is only equal to nil.
func deepEqual(a, b any) bool {
	am, aIsMap := a.(common.Record)
	bm, bIsMap := b.(common.Record)
	if aIsMap || bIsMap {
		if !aIsMap || !bIsMap || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !deepEqual(av, bv) {
				return false
			}
		}
		return true
	}

	aa, aIsArr := a.([]any)
	ba, bIsArr := b.([]any)
	if aIsArr || bIsArr {
		if !aIsArr || !bIsArr || len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !deepEqual(aa[i], ba[i]) {
				return false
			}
		}
		return true
	}

	return a == b
}
