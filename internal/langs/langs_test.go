package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForExtension_builtin(t *testing.T) {
	tests := map[string]string{
		"main.go":       Go,
		"app.tsx":       TypeScript,
		"app.ts":        TypeScript,
		"index.js":      JavaScript,
		"script.py":     Python,
		"lib.rs":        Rust,
		"thing.c":       C,
		"thing.hpp":     Cpp,
		"App.java":      Java,
		"index.php":     PHP,
		"script.rb":     Ruby,
	}
	for path, want := range tests {
		lang, ok := ForExtension(path)
		require.True(t, ok, path)
		assert.Equal(t, want, lang.Name(), path)
	}
}

func TestForExtension_unknown(t *testing.T) {
	_, ok := ForExtension("notes.txt")
	assert.False(t, ok)
}

func TestGrammar_builtin(t *testing.T) {
	g, ok := Grammar(Of(Go))
	require.True(t, ok)
	assert.NotNil(t, g)
}

func TestGrammar_unknown(t *testing.T) {
	_, ok := Grammar(Of("cobol"))
	assert.False(t, ok)
}

func TestRegister_external(t *testing.T) {
	g, _ := Grammar(Of(Go))
	err := Register("starlark", ".star", g)
	require.NoError(t, err)

	lang, ok := Lookup("starlark")
	require.True(t, ok)
	assert.False(t, lang.IsBuiltin())

	found, ok := ForExtension("build.star")
	require.True(t, ok)
	assert.Equal(t, "starlark", found.Name())
}

func TestRegister_rejectsBuiltinName(t *testing.T) {
	g, _ := Grammar(Of(Go))
	err := Register(Go, ".go2", g)
	assert.Error(t, err)
}

func TestIsBuiltin(t *testing.T) {
	assert.True(t, Of(Go).IsBuiltin())
	assert.True(t, Of(Rust).IsBuiltin())
}
