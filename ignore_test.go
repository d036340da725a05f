package vex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMarkers_isIgnored(t *testing.T) {
	id, err := ParseLintId("foo-bar")
	require.NoError(t, err)
	filter := SpecificLintIdFilter([]LintId{id})

	b := NewIgnoreMarkersBuilder()
	b.Add(3, 10, filter)
	b.Add(4, 9, filter)
	b.Add(4, 10, filter)
	b.Add(11, 13, filter)
	markers := b.Build()

	tests := []struct {
		index    int
		expected bool
	}{
		{1, false}, {2, false}, {3, true}, {4, true}, {5, true}, {6, true},
		{7, true}, {8, true}, {9, true}, {10, false}, {11, true}, {12, true}, {13, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, markers.IsIgnored(tt.index, id), "index %d", tt.index)
	}
}

func TestIgnoreMarkers_empty(t *testing.T) {
	markers := NewIgnoreMarkersBuilder().Build()
	id, _ := ParseLintId("whatever")
	assert.False(t, markers.IsIgnored(5, id))
}

func TestIgnoreMarkers_filterMustCoverId(t *testing.T) {
	covered, _ := ParseLintId("covered-lint")
	other, _ := ParseLintId("other-lint")

	b := NewIgnoreMarkersBuilder()
	b.Add(0, 10, SpecificLintIdFilter([]LintId{covered}))
	markers := b.Build()

	assert.True(t, markers.IsIgnored(5, covered))
	assert.False(t, markers.IsIgnored(5, other))
}

func TestParseLintIdFilter_star(t *testing.T) {
	filter, err := ParseLintIdFilter("*")
	require.NoError(t, err)
	id, _ := ParseLintId("anything")
	assert.True(t, filter.covers(id))
}

func TestParseLintIdFilter_explicitList(t *testing.T) {
	filter, err := ParseLintIdFilter("id-one, id-two")
	require.NoError(t, err)
	one, _ := ParseLintId("id-one")
	three, _ := ParseLintId("id-three")
	assert.True(t, filter.covers(one))
	assert.False(t, filter.covers(three))
}

func TestParseLintIdFilter_redundant(t *testing.T) {
	_, err := ParseLintIdFilter("*, id-one")
	require.Error(t, err)
	var redundant *RedundantIgnoreError
	require.ErrorAs(t, err, &redundant)
}

func TestLintIdFilter_emptyNeverCovers(t *testing.T) {
	filter := SpecificLintIdFilter(nil)
	assert.True(t, filter.IsEmpty())
	id, _ := ParseLintId("anything")
	assert.False(t, filter.covers(id))
}
