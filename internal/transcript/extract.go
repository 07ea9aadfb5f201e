package transcript

import (
	"regexp"
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// Spice levels the order pipeline accepts, after normalization.
const (
	SpiceVeryMild   = "very mild"
	SpiceMild       = "mild"
	SpiceSpicy      = "spicy"
	SpiceExtraSpicy = "extra spicy"
)

// spiceLevelRe matches spoken spice phrases, longest alternatives first so
// "very hot" is not consumed as a bare "hot".
var spiceLevelRe = regexp.MustCompile(`\b(very mild|extra spicy|very hot|mild|medium|spicy|hot)\b`)

// hotSourSuffixRe recognizes the tail of "hot & sour" / "hot and sour",
// which must never be read as a spice level.
var hotSourSuffixRe = regexp.MustCompile(`^\s*(?:&|and)\s+sour\b`)

// spiceNormalization folds spoken synonyms onto the four accepted levels.
var spiceNormalization = map[string]string{
	"medium":   SpiceMild,
	"hot":      SpiceSpicy,
	"very hot": SpiceExtraSpicy,
}

// ExtractQuantity reads a leading quantity off a segment and returns it with
// the remaining text. Number words cover one through ten; bare integers are
// taken literally. Missing quantity defaults to 1.
func ExtractQuantity(segment string) (int, string) {
	trimmed := strings.TrimSpace(segment)
	first, rest, found := strings.Cut(trimmed, " ")
	if !found {
		first, rest = trimmed, ""
	}

	word := strings.ToLower(first)
	if n, ok := numberWords[word]; ok {
		return n, strings.TrimSpace(rest)
	}
	if n, err := strconv.Atoi(word); err == nil && n > 0 {
		return n, strings.TrimSpace(rest)
	}
	return 1, trimmed
}

// ExtractSpiceLevel finds the first spice phrase in a segment and returns the
// normalized level, or "" when the segment names none. A "hot" that opens
// "hot & sour" is skipped.
func ExtractSpiceLevel(segment string) string {
	lower := strings.ToLower(segment)
	for _, loc := range spiceLevelRe.FindAllStringIndex(lower, -1) {
		match := lower[loc[0]:loc[1]]
		if match == "hot" && hotSourSuffixRe.MatchString(lower[loc[1]:]) {
			continue
		}
		if normalized, ok := spiceNormalization[match]; ok {
			return normalized
		}
		return match
	}
	return ""
}
