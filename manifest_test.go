package vex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlint/vex/internal/langs"
)

func TestParseManifest_defaults(t *testing.T) {
	m, err := ParseManifest([]byte(DefaultManifestContent))
	require.NoError(t, err)
	assert.Equal(t, "vexes", m.QueriesDir)
	assert.Empty(t, m.Allow)
	require.Len(t, m.Ignore, 4)
	assert.True(t, m.Ignore[0].Matches(NewPrettyPath("vex.toml")))
}

func TestParseManifest_customAssociation(t *testing.T) {
	data := []byte(`
queries_dir = "lints"
[associations]
"*.star" = "python"
`)
	m, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, "lints", m.QueriesDir)

	lang, err := m.Associations.GetLanguage(NewPrettyPath("foo.star"))
	require.NoError(t, err)
	assert.Equal(t, langs.Python, lang.Name())
}

func TestParseManifest_unknownLanguage(t *testing.T) {
	data := []byte(`
[associations]
"*.cbl" = "cobol"
`)
	_, err := ParseManifest(data)
	require.Error(t, err)
	var unknown *UnknownLanguageError
	require.ErrorAs(t, err, &unknown)
}

func TestParseManifest_rejectsUnknownField(t *testing.T) {
	_, err := ParseManifest([]byte(`made_up_field = true`))
	require.Error(t, err)
}

func TestInit_thenAcquire(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755))

	root, m, err := Acquire(filepath.Join(dir, "sub", "deeper"))
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.Equal(t, "vexes", m.QueriesDir)
}

func TestInit_alreadyInited(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	err := Init(dir)
	require.Error(t, err)
	var already *AlreadyInitedError
	require.ErrorAs(t, err, &already)
}

func TestAcquire_notFound(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Acquire(dir)
	require.Error(t, err)
	var notFound *ManifestNotFoundError
	require.ErrorAs(t, err, &notFound)
}
