package vex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarningFilter_fromExcluded(t *testing.T) {
	inactive, err := ParseLintId("inactive-lint")
	require.NoError(t, err)
	active, err := ParseLintId("active-lint")
	require.NoError(t, err)

	filter := NewWarningFilter(
		FromExcluded([]LintId{inactive}),
		AllExclusionSet[GroupId](),
	)
	assert.True(t, filter.IsActive(active))
	assert.False(t, filter.IsActive(inactive))
}

func TestWarningFilter_all(t *testing.T) {
	filter := AllWarnings()
	id, err := ParseLintId("some-id")
	require.NoError(t, err)
	assert.True(t, filter.IsActive(id))
}

func TestWarningFilter_groupExclusionAlsoDeactivatesLint(t *testing.T) {
	lint, _ := ParseLintId("my-lint")
	group, _ := ParseGroupId("my-group")

	filter := NewWarningFilter(
		AllExclusionSet[LintId](),
		FromExcluded([]GroupId{group}),
	)
	assert.False(t, filter.IsActiveWithGroup(lint, group))
}
