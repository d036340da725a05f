package vex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecoverable(t *testing.T) {
	recoverable := []error{
		&IOError{Path: NewPrettyPath("a.go"), Action: IORead, Cause: errors.New("boom")},
		&NoExtensionError{Path: NewPrettyPath("Makefile")},
		&UnknownExtensionError{Extension: ".xyz"},
		&UnparseableError{Path: NewPrettyPath("a.go"), Language: "go"},
	}
	for _, err := range recoverable {
		assert.True(t, IsRecoverable(err), err.Error())
	}

	fatal := []error{
		&NoInitError{Path: NewPrettyPath("vexes/a.star")},
		&ImportCycleError{Cycle: []PrettyPath{NewPrettyPath("a.star"), NewPrettyPath("b.star")}},
		&ManifestNotFoundError{},
	}
	for _, err := range fatal {
		assert.False(t, IsRecoverable(err), err.Error())
	}
}

func TestPresent_includesFixHint(t *testing.T) {
	out := Present(&ManifestNotFoundError{}, true)
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "Fix:")
	assert.Contains(t, out, "vex init")
}

func TestImportCycleError_format(t *testing.T) {
	err := &ImportCycleError{Cycle: []PrettyPath{NewPrettyPath("a.star"), NewPrettyPath("b.star"), NewPrettyPath("a.star")}}
	assert.Equal(t, "import cycle detected: a.star -> b.star -> a.star", err.Error())
}

func TestUnknownOperatorError_suggestion(t *testing.T) {
	err := &UnknownOperatorError{Operator: "eqq", Suggestion: "eq"}
	assert.Contains(t, err.Error(), "did you mean \"eq\"")
}
