package runtime

import "regexp"

// These mirror the validation rules of the root package's Id type (id.go)
// closely enough to reject a bad id immediately, without this package
// importing the root package (which imports this one). The root package
// re-derives the full structured reason by re-running its own ParseLintId
// on RawId when translating an *InvalidIdError.
const (
	minIDLen = 3
	maxIDLen = 25
)

var validIDChars = regexp.MustCompile(`^[a-z0-9:-]*$`)

var uglySubstrings = []string{"::", "--", ":-", "-:"}

// validId reports whether raw would pass the root package's NewId checks:
// length 3-25, [a-z0-9:-] only, no illegal start/end character, no ugly
// punctuation runs.
func validId(raw string) bool {
	if len(raw) < minIDLen || len(raw) > maxIDLen {
		return false
	}
	if !validIDChars.MatchString(raw) {
		return false
	}

	runes := []rune(raw)
	first := runes[0]
	if (first >= '0' && first <= '9') || first == ':' || first == '-' {
		return false
	}
	last := runes[len(runes)-1]
	if last == ':' || last == '-' {
		return false
	}

	for _, ugly := range uglySubstrings {
		if containsSubstring(raw, ugly) {
			return false
		}
	}
	return true
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
