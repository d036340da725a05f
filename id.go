package vex

import (
	"fmt"
	"hash/fnv"
	"regexp"
)

const (
	minIDLen = 3
	maxIDLen = 25
)

var validIDChars = regexp.MustCompile(`^[a-z0-9:-]*$`)

var uglySubstrings = []string{"::", "--", ":-", "-:"}

// Id is a validated lint or group identifier: a non-empty lowercase string
// of [a-z0-9:-], 3-25 bytes, not starting with a digit/:/-, not ending
// with :/-, with no runs of --, ::, :-, -:. Its hash is precomputed so it
// can be used as a cheap map key.
type Id struct {
	name string
	hash uint64
}

// String returns the raw identifier text.
func (id Id) String() string { return id.name }

// Hash returns the precomputed 64-bit hash of the identifier.
func (id Id) Hash() uint64 { return id.hash }

// Compare returns a negative, zero, or positive number depending on
// whether id sorts before, equal to, or after other, by raw bytes.
func (id Id) Compare(other Id) int {
	switch {
	case id.name < other.name:
		return -1
	case id.name > other.name:
		return 1
	default:
		return 0
	}
}

// LintId is a validated lint identifier, nominally distinct from GroupId
// even though both share Id's representation.
type LintId struct{ id Id }

func (l LintId) String() string       { return l.id.name }
func (l LintId) Hash() uint64         { return l.id.hash }
func (l LintId) Compare(o LintId) int { return l.id.Compare(o.id) }

// GroupId is a validated group identifier, nominally distinct from LintId.
type GroupId struct{ id Id }

func (g GroupId) String() string       { return g.id.name }
func (g GroupId) Hash() uint64         { return g.id.hash }
func (g GroupId) Compare(o GroupId) int { return g.id.Compare(o.id) }

// InvalidIdReason is the structured sub-reason an Id failed validation.
type InvalidIdReason interface {
	isInvalidIdReason()
	Error() string
}

// TooShort reports an identifier shorter than the minimum length.
type TooShort struct {
	Len, Min int
}

func (TooShort) isInvalidIdReason() {}
func (r TooShort) Error() string {
	return fmt.Sprintf("too short: %d bytes, minimum is %d", r.Len, r.Min)
}

// TooLong reports an identifier longer than the maximum length.
type TooLong struct {
	Len, Max int
}

func (TooLong) isInvalidIdReason() {}
func (r TooLong) Error() string {
	return fmt.Sprintf("too long: %d bytes, maximum is %d", r.Len, r.Max)
}

// IllegalChar reports a character outside [a-z0-9:-].
type IllegalChar struct{}

func (IllegalChar) isInvalidIdReason() {}
func (IllegalChar) Error() string      { return "contains an illegal character" }

// IllegalStartChar reports an identifier starting with a digit, ':', or '-'.
type IllegalStartChar struct{ Char rune }

func (IllegalStartChar) isInvalidIdReason() {}
func (r IllegalStartChar) Error() string {
	return fmt.Sprintf("illegal start character %q", r.Char)
}

// IllegalEndChar reports an identifier ending with ':' or '-'.
type IllegalEndChar struct{ Char rune }

func (IllegalEndChar) isInvalidIdReason() {}
func (r IllegalEndChar) Error() string {
	return fmt.Sprintf("illegal end character %q", r.Char)
}

// UglySubstring reports a disallowed run of punctuation (--, ::, :-, -:).
type UglySubstring struct {
	Found string
	Index int
}

func (UglySubstring) isInvalidIdReason() {}
func (r UglySubstring) Error() string {
	return fmt.Sprintf("contains ugly substring %q at byte %d", r.Found, r.Index)
}

// InvalidIdError wraps an invalid identifier and why it was rejected. The
// offending raw input is preserved.
type InvalidIdError struct {
	RawId  string
	Reason InvalidIdReason
}

func (e *InvalidIdError) Error() string {
	return fmt.Sprintf("invalid id %q: %s", e.RawId, e.Reason.Error())
}

// NewId validates raw and returns the constructed Id, or an *InvalidIdError
// describing why it was rejected. Id values can only be constructed through
// this factory (or ParseLintId/ParseGroupId, which delegate to it).
func NewId(raw string) (Id, error) {
	if len(raw) < minIDLen {
		return Id{}, &InvalidIdError{raw, TooShort{len(raw), minIDLen}}
	}
	if len(raw) > maxIDLen {
		return Id{}, &InvalidIdError{raw, TooLong{len(raw), maxIDLen}}
	}
	if !validIDChars.MatchString(raw) {
		return Id{}, &InvalidIdError{raw, IllegalChar{}}
	}

	runes := []rune(raw)
	first := runes[0]
	if (first >= '0' && first <= '9') || first == ':' || first == '-' {
		return Id{}, &InvalidIdError{raw, IllegalStartChar{first}}
	}
	last := runes[len(runes)-1]
	if last == ':' || last == '-' {
		return Id{}, &InvalidIdError{raw, IllegalEndChar{last}}
	}

	for _, ugly := range uglySubstrings {
		if idx := indexOf(raw, ugly); idx >= 0 {
			return Id{}, &InvalidIdError{raw, UglySubstring{ugly, idx}}
		}
	}

	return Id{name: raw, hash: hashID(raw)}, nil
}

// ParseLintId validates raw as a LintId.
func ParseLintId(raw string) (LintId, error) {
	id, err := NewId(raw)
	if err != nil {
		return LintId{}, err
	}
	return LintId{id}, nil
}

// ParseGroupId validates raw as a GroupId.
func ParseGroupId(raw string) (GroupId, error) {
	id, err := NewId(raw)
	if err != nil {
		return GroupId{}, err
	}
	return GroupId{id}, nil
}

func hashID(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
