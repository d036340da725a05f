package vex

import "github.com/hbollon/go-edlib"

// maxSuggestionDistance is the maximum Damerau-Levenshtein distance at
// which a candidate is considered a plausible typo rather than unrelated.
const maxSuggestionDistance = 2

// Suggest returns the option nearest to input by Damerau-Levenshtein
// distance, provided that distance is at most maxSuggestionDistance.
// Returns ("", false) if no option is close enough, e.g. to build "did you
// mean %q?" hints for unknown event names and query predicate operators.
func Suggest(input string, options []string) (string, bool) {
	best := ""
	bestDistance := -1
	for _, option := range options {
		distance := edlib.DamerauLevenshteinDistance(input, option)
		if bestDistance == -1 || distance < bestDistance {
			best = option
			bestDistance = distance
		}
	}
	if bestDistance < 0 || bestDistance > maxSuggestionDistance {
		return "", false
	}
	return best, true
}
