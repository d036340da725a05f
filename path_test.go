package vex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyPath_Compare(t *testing.T) {
	a := NewPrettyPath("a.go")
	b := NewPrettyPath("b.go")
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))
}

func TestPrettyPath_Dir(t *testing.T) {
	p := NewPrettyPath("foo/bar/baz.go")
	assert.Equal(t, "foo/bar", p.Dir().String())
}

func TestNewSourcePath(t *testing.T) {
	sp, err := NewSourcePath("/repo/vexes/lint.star", "/repo/vexes")
	require.NoError(t, err)
	assert.Equal(t, "lint.star", sp.PrettyPath.String())
	assert.Equal(t, "/repo/vexes/lint.star", sp.AbsPath)
}
