package vex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlint/vex/internal/langs"
)

func compile(t *testing.T, raw string) FilePattern {
	t.Helper()
	p, err := NewRawFilePattern(raw).Compile()
	require.NoError(t, err, raw)
	return p
}

func TestFilePattern_matchesAnyDepth(t *testing.T) {
	p := compile(t, "foo.rs")
	assert.True(t, p.Matches(NewPrettyPath("foo.rs")))
	assert.True(t, p.Matches(NewPrettyPath("bar/foo.rs")))
	assert.True(t, p.Matches(NewPrettyPath("baz/bar/foo.rs")))
	assert.False(t, p.Matches(NewPrettyPath("foo.go")))
}

func TestFilePattern_trailingSlashMeansDirectory(t *testing.T) {
	p := compile(t, "bar/")
	assert.True(t, p.Matches(NewPrettyPath("bar/foo.rs")))
	assert.True(t, p.Matches(NewPrettyPath("baz/bar/foo.rs")))
	assert.False(t, p.Matches(NewPrettyPath("bar.rs")))
}

func TestFilePattern_malformedGlob(t *testing.T) {
	_, err := NewRawFilePattern("[").Compile()
	require.Error(t, err)
	var patErr *PatternError
	require.ErrorAs(t, err, &patErr)
	assert.Equal(t, "[", patErr.Pattern)
}

func TestAssociations_base(t *testing.T) {
	a := BaseAssociations()

	lang, err := a.GetLanguage(NewPrettyPath("foo/bar.go"))
	require.NoError(t, err)
	assert.Equal(t, langs.Go, lang.Name())

	lang, err = a.GetLanguage(NewPrettyPath("foo/bar.py"))
	require.NoError(t, err)
	assert.Equal(t, langs.Python, lang.Name())

	lang, err = a.GetLanguage(NewPrettyPath("foo/bar.star"))
	require.NoError(t, err)
	assert.Equal(t, "", lang.Name())
}

func TestAssociations_userOverridesBase(t *testing.T) {
	a := BaseAssociations()
	p := compile(t, "*.c")
	a.Insert([]FilePattern{p}, langs.Of(langs.Python))

	lang, err := a.GetLanguage(NewPrettyPath("actually_python.c"))
	require.NoError(t, err)
	assert.Equal(t, langs.Python, lang.Name())
}

func TestAssociations_ambiguousSameTier(t *testing.T) {
	a := BaseAssociations()
	p := compile(t, "*.weird")
	a.Insert([]FilePattern{p}, langs.Of(langs.Rust))
	a.Insert([]FilePattern{p}, langs.Of(langs.Go))

	_, err := a.GetLanguage(NewPrettyPath("foo.weird"))
	require.Error(t, err)
	var ambiguous *AmbiguousLanguageError
	require.ErrorAs(t, err, &ambiguous)
}

func TestAssociations_nonambiguousOverlap(t *testing.T) {
	a := BaseAssociations()
	a.Insert([]FilePattern{compile(t, "*.rust-file")}, langs.Of(langs.Rust))
	a.Insert([]FilePattern{compile(t, "rust-files/*")}, langs.Of(langs.Rust))

	lang, err := a.GetLanguage(NewPrettyPath("rust-files/some.rust-file"))
	require.NoError(t, err)
	assert.Equal(t, langs.Rust, lang.Name())
}
