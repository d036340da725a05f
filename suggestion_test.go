package vex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_closeMatch(t *testing.T) {
	suggestion, ok := Suggest("eqq", []string{"eq", "match", "any-eq"})
	assert.True(t, ok)
	assert.Equal(t, "eq", suggestion)
}

func TestSuggest_noneCloseEnough(t *testing.T) {
	_, ok := Suggest("completely-unrelated-operator", []string{"eq", "match"})
	assert.False(t, ok)
}

func TestSuggest_emptyOptions(t *testing.T) {
	_, ok := Suggest("eq", nil)
	assert.False(t, ok)
}
