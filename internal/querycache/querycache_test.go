package querycache

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasContent(t *testing.T) {
	assert.False(t, hasContent(""))
	assert.False(t, hasContent("   \n\t"))
	assert.False(t, hasContent("; this query contains nothing!"))
	assert.True(t, hasContent("(source_file)"))
}

func TestCompile_empty(t *testing.T) {
	_, err := Compile(golang.GetLanguage(), "", nil)
	require.Error(t, err)
	var empty *EmptyQueryError
	require.ErrorAs(t, err, &empty)
}

func TestCompile_commentOnly(t *testing.T) {
	_, err := Compile(golang.GetLanguage(), "; this query contains nothing!", nil)
	require.Error(t, err)
	var empty *EmptyQueryError
	require.ErrorAs(t, err, &empty)
}

func TestCompile_valid(t *testing.T) {
	q, err := Compile(golang.GetLanguage(), "(source_file)", nil)
	require.NoError(t, err)
	require.NotNil(t, q)
	defer q.Close()
}

func TestCompile_syntaxError(t *testing.T) {
	_, err := Compile(golang.GetLanguage(), "(binary_expression", nil)
	require.Error(t, err)
}

func TestCompile_unknownOperator(t *testing.T) {
	noopSuggest := func(input string, options []string) (string, bool) { return "eq", true }
	_, err := Compile(golang.GetLanguage(), `((identifier) @id (#eqq? @id "x"))`, noopSuggest)
	require.Error(t, err)
	var unknown *UnknownOperatorError
	require.ErrorAs(t, err, &unknown)
	assert.True(t, unknown.HasSuggestion)
	assert.Equal(t, "eq", unknown.Suggestion)
}

func TestCache_returnsSamePointerForSameText(t *testing.T) {
	c := New()
	q1, err := c.GetOrCompile(golang.GetLanguage(), "go", "(source_file)", nil)
	require.NoError(t, err)
	q2, err := c.GetOrCompile(golang.GetLanguage(), "go", "(source_file)", nil)
	require.NoError(t, err)
	assert.Same(t, q1, q2)
}

func TestCache_distinctTextsDistinctQueries(t *testing.T) {
	c := New()
	q1, err := c.GetOrCompile(golang.GetLanguage(), "go", "(source_file)", nil)
	require.NoError(t, err)
	q2, err := c.GetOrCompile(golang.GetLanguage(), "go", "(package_clause)", nil)
	require.NoError(t, err)
	assert.NotSame(t, q1, q2)
}

var _ *sitter.Language = golang.GetLanguage()
