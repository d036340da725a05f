package vex

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vexlint/vex/internal/langs"
)

// RawFilePattern is a user-supplied glob string, not yet validated or
// compiled.
type RawFilePattern string

// NewRawFilePattern wraps raw as a RawFilePattern.
func NewRawFilePattern(raw string) RawFilePattern { return RawFilePattern(raw) }

// Compile prepends "**/" to patterns without a leading "/" (so a bare
// "foo.go" matches at any depth) and appends "*" to patterns ending in "/"
// (so a directory pattern matches everything under it), then compiles the
// result as a doublestar glob. Matching is always performed against
// slash-separated pretty paths.
func (r RawFilePattern) Compile() (FilePattern, error) {
	raw := string(r)
	var b strings.Builder
	b.Grow(len("**/") + len(raw) + len("*"))
	if !strings.HasPrefix(raw, "/") {
		b.WriteString("**/")
	}
	b.WriteString(raw)
	if strings.HasSuffix(raw, "/") {
		b.WriteString("*")
	}
	compiled := strings.TrimPrefix(b.String(), "/")
	if _, err := doublestar.Match(compiled, ""); err != nil {
		return FilePattern{}, &PatternError{Pattern: raw, Cause: err}
	}
	return FilePattern{raw: raw, glob: compiled}, nil
}

// PatternError reports that a raw glob string failed to compile.
type PatternError struct {
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("cannot compile %q: %v", e.Pattern, e.Cause)
}

func (e *PatternError) Unwrap() error { return e.Cause }

// FilePattern is a compiled glob, ready to match against pretty paths.
type FilePattern struct {
	raw  string
	glob string
}

// Matches reports whether path (a slash-separated pretty path) matches the
// compiled pattern.
func (p FilePattern) Matches(path PrettyPath) bool {
	ok, _ := doublestar.Match(p.glob, strings.TrimPrefix(path.String(), "/"))
	return ok
}

func (p FilePattern) String() string { return p.raw }

// association is one (pattern-list, language) rule. inBase distinguishes
// the fixed built-in rules from user-added ones for tie-break purposes:
// user rules always win over base rules, and ambiguity is only raised
// between two rules from the same tier.
type association struct {
	patterns []FilePattern
	inBase   bool
	language langs.Language
}

// Associations is an ordered list of file-pattern-to-language rules. Rules
// added later take priority; built-in (base) rules are seeded first so any
// user-added rule can override them.
type Associations struct {
	rules []association
}

// BaseAssociations returns the fixed set of default associations: *.go,
// *.ts, *.tsx, *.js, *.jsx, *.py, *.rs, *.c, *.h, *.cpp, *.cc, *.cxx, *.hpp,
// *.java, *.php, *.rb mapped onto their respective languages.
func BaseAssociations() Associations {
	base := []struct {
		pattern  string
		language string
	}{
		{"*.go", langs.Go},
		{"*.ts", langs.TypeScript},
		{"*.tsx", langs.TypeScript},
		{"*.js", langs.JavaScript},
		{"*.jsx", langs.JavaScript},
		{"*.py", langs.Python},
		{"*.rs", langs.Rust},
		{"*.c", langs.C},
		{"*.h", langs.C},
		{"*.cpp", langs.Cpp},
		{"*.cc", langs.Cpp},
		{"*.cxx", langs.Cpp},
		{"*.hpp", langs.Cpp},
		{"*.java", langs.Java},
		{"*.php", langs.PHP},
		{"*.rb", langs.Ruby},
	}
	var a Associations
	for _, b := range base {
		pattern, err := NewRawFilePattern(b.pattern).Compile()
		if err != nil {
			// Base patterns are compile-time constants; a compile failure
			// here would be a programming error, not user input.
			panic(err)
		}
		a.rules = append(a.rules, association{
			patterns: []FilePattern{pattern},
			inBase:   true,
			language: langs.Of(b.language),
		})
	}
	return a
}

// Insert adds a user rule mapping patterns to language. User rules are
// always checked before base rules and always win in case of conflict.
func (a *Associations) Insert(patterns []FilePattern, language langs.Language) {
	a.rules = append(a.rules, association{patterns: patterns, inBase: false, language: language})
}

// AmbiguousLanguageError reports that path matched two same-tier rules
// naming different languages.
type AmbiguousLanguageError struct {
	Path           PrettyPath
	Language       langs.Language
	OtherLanguage  langs.Language
}

func (e *AmbiguousLanguageError) Error() string {
	return fmt.Sprintf("%s: ambiguous language: matches both %q and %q", e.Path, e.Language, e.OtherLanguage)
}

// GetLanguage scans rules newest-first and returns the first match. If a
// second, same-tier rule also matches with a different language, it fails
// with AmbiguousLanguageError. A user-tier rule always wins silently over a
// base-tier rule, regardless of scan order. Returns (Language{}, nil) if no
// rule matches.
func (a Associations) GetLanguage(path PrettyPath) (langs.Language, error) {
	var (
		found    bool
		language langs.Language
		inBase   bool
	)
	for i := len(a.rules) - 1; i >= 0; i-- {
		rule := a.rules[i]
		if !anyMatches(rule.patterns, path) {
			continue
		}
		if !found {
			found = true
			language = rule.language
			inBase = rule.inBase
			continue
		}
		if rule.language != language && rule.inBase == inBase {
			return langs.Language{}, &AmbiguousLanguageError{
				Path:          path,
				Language:      language,
				OtherLanguage: rule.language,
			}
		}
	}
	if !found {
		return langs.Language{}, nil
	}
	return language, nil
}

func anyMatches(patterns []FilePattern, path PrettyPath) bool {
	for _, p := range patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}
