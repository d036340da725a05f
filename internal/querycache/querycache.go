// Package querycache compiles and memoizes tree-sitter queries keyed by
// language and query text, validating predicate operators against the
// known set before handing a query back to a caller.
package querycache

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// KnownOperators is the fixed set of predicate operators a query's
// predicates may use.
var KnownOperators = []string{
	"eq", "match", "any-eq", "any-match", "any-of",
	"not-eq", "not-match", "not-any-of",
}

func isKnownOperator(op string) bool {
	for _, known := range KnownOperators {
		if known == op {
			return true
		}
	}
	return false
}

// EmptyQueryError reports that a query's text has no non-comment,
// non-whitespace content, or compiled to zero patterns.
type EmptyQueryError struct{}

func (*EmptyQueryError) Error() string { return "query is empty" }

// UnknownOperatorError reports a predicate operator outside KnownOperators.
type UnknownOperatorError struct {
	Operator   string
	Suggestion string
	HasSuggestion bool
}

func (e *UnknownOperatorError) Error() string {
	if e.HasSuggestion {
		return fmt.Sprintf("unknown predicate operator %q, did you mean %q?", e.Operator, e.Suggestion)
	}
	return fmt.Sprintf("unknown predicate operator %q", e.Operator)
}

// Suggester returns the nearest match to input among options, or
// ("", false) if none is close enough. Satisfied by the root package's
// Suggest function; accepted as a parameter here to avoid an import cycle
// (the root package imports this one).
type Suggester func(input string, options []string) (string, bool)

// hasContent reports whether query has any character outside whitespace
// and line comments (";" to end of line).
func hasContent(query string) bool {
	scanningComment := false
	for _, c := range query {
		switch c {
		case ';':
			scanningComment = true
		case '\n':
			scanningComment = false
		case ' ', '\t':
			// no-op: whitespace never counts as content
		default:
			if !scanningComment {
				return true
			}
		}
	}
	return false
}

// Compile validates and compiles query text against lang, rejecting empty
// queries and queries in which any pattern uses an unknown predicate
// operator. suggest is used to build a "did you mean" hint.
func Compile(lang *sitter.Language, text string, suggest Suggester) (*sitter.Query, error) {
	if text == "" || !hasContent(text) {
		return nil, &EmptyQueryError{}
	}

	q, err := sitter.NewQuery([]byte(text), lang)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	if q.PatternCount() == 0 {
		q.Close()
		return nil, &EmptyQueryError{}
	}

	for i := uint32(0); i < uint32(q.PatternCount()); i++ {
		for _, predicate := range q.PredicatesForPattern(i) {
			if len(predicate) == 0 {
				continue
			}
			first := predicate[0]
			if first.Type != sitter.QueryPredicateStepTypeString {
				continue
			}
			operator := q.StringValueForId(first.ValueId)
			name := strings.TrimSuffix(strings.TrimSuffix(operator, "?"), "!")
			if isKnownOperator(name) {
				continue
			}
			q.Close()
			suggestion, ok := "", false
			if suggest != nil {
				suggestion, ok = suggest(name, KnownOperators)
			}
			return nil, &UnknownOperatorError{Operator: operator, Suggestion: suggestion, HasSuggestion: ok}
		}
	}

	return q, nil
}

type cacheKey struct {
	language string
	hash     uint32
}

// Cache memoizes compiled queries by (language name, 32-bit-truncated hash
// of query text). Safe for concurrent use; its lock is never held across a
// caller's use of the returned query.
type Cache struct {
	mu    sync.RWMutex
	byKey map[cacheKey]*sitter.Query
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{byKey: make(map[cacheKey]*sitter.Query)}
}

func hashText(text string) uint32 {
	return uint32(xxhash.Sum64String(text))
}

// GetOrCompile returns the cached query for (langName, text) if present,
// else compiles, caches, and returns it.
func (c *Cache) GetOrCompile(lang *sitter.Language, langName, text string, suggest Suggester) (*sitter.Query, error) {
	key := cacheKey{language: langName, hash: hashText(text)}

	c.mu.RLock()
	q, ok := c.byKey[key]
	c.mu.RUnlock()
	if ok {
		return q, nil
	}

	compiled, err := Compile(lang, text, suggest)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byKey[key]; ok {
		compiled.Close()
		return existing, nil
	}
	c.byKey[key] = compiled
	return compiled, nil
}
