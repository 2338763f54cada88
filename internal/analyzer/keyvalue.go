package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yildizm/LogDelta/internal/common"
)

// Key/value pairs are mined from free-text messages with four shapes:
// "key: value", "key = value", "key -> value", "key => value".
// The arrow and fat-arrow shapes come first so the plain "=" shape
// cannot claim their left half.
var kvPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*=>\s*(\S+)`),
	regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*->\s*(\S+)`),
	regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*:\s*([^\s:]\S*)`),
	regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*=\s*([^>\s]\S*)`),
}

// minKeyLength filters out short incidental tokens like "id" or "at".
const minKeyLength = 3

var kvStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "this": true,
	"that": true, "from": true, "http": true, "https": true, "not": true,
	"are": true, "was": true, "has": true, "have": true, "will": true,
	"got": true, "get": true, "set": true, "new": true, "all": true,
}

// invalidValueTokens are the null/failure indicators. A value is
// invalid when it equals one of these or starts with one, compared
// case-insensitively.
var invalidValueTokens = []string{
	"null", "nil", "undefined", "none", "nan", "error", "failed",
	"failure", "missing", "empty", "unavailable", "n/a",
}

// ExtractKeyValuePairs scans every message in a sequence and returns
// the retained value per lower-cased key. The first valid value seen
// for a key wins; a stored invalid value is overwritten only by a later
// valid one, never the other way around.
func ExtractKeyValuePairs(seq common.LogSequence) map[string]string {
	values := make(map[string]string)
	for _, rec := range seq {
		message := rec.Message()
		if message == "" {
			continue
		}
		for _, re := range kvPatterns {
			for _, match := range re.FindAllStringSubmatch(message, -1) {
				key := strings.ToLower(match[1])
				if len(key) < minKeyLength || kvStopwords[key] {
					continue
				}
				value := strings.TrimRight(match[2], ".,;")
				if value == "" {
					continue
				}
				stored, seen := values[key]
				switch {
				case !seen:
					values[key] = value
				case isInvalidValue(stored) && !isInvalidValue(value):
					values[key] = value
				}
			}
		}
	}
	return values
}

// CompareValues cross-references the two colors' extracted key maps and
// flags every key present in both where exactly one side's value is
// invalid. Blue valid to green invalid is a regression; the mirror is
// an improvement.
func CompareValues(blue, green map[string]string) []DivergenceEntry {
	var divergences []DivergenceEntry
	for key, blueValue := range blue {
		greenValue, ok := green[key]
		if !ok {
			continue
		}
		blueInvalid := isInvalidValue(blueValue)
		greenInvalid := isInvalidValue(greenValue)
		if blueInvalid == greenInvalid {
			continue
		}
		direction := DirectionRegressed
		if blueInvalid {
			direction = DirectionImproved
		}
		divergences = append(divergences, DivergenceEntry{
			Key:        key,
			BlueValue:  blueValue,
			GreenValue: greenValue,
			Direction:  direction,
		})
	}
	sort.Slice(divergences, func(i, j int) bool {
		return divergences[i].Key < divergences[j].Key
	})
	return divergences
}

// isInvalidValue reports whether a token indicates a null or failed
// value: exact or prefix match against the fixed token list.
func isInvalidValue(value string) bool {
	lower := strings.ToLower(value)
	for _, token := range invalidValueTokens {
		if lower == token || strings.HasPrefix(lower, token) {
			return true
		}
	}
	return false
}
