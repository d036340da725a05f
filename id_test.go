package vex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewId_valid(t *testing.T) {
	for _, raw := range []string{"hello", "hello1234", "hello:world:1234", "hello:world-1234"} {
		id, err := NewId(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, id.String())
	}
}

func TestNewId_invalid(t *testing.T) {
	tests := []struct {
		raw    string
		reason InvalidIdReason
	}{
		{"", TooShort{0, minIDLen}},
		{"i-am-very-very-very-very-long", TooLong{29, maxIDLen}},
		{"asdf_fdas", IllegalChar{}},
		{"asdf/fdas", IllegalChar{}},
		{"hello world", IllegalChar{}},
		{"-hello", IllegalStartChar{'-'}},
		{":hello", IllegalStartChar{':'}},
		{"5hello", IllegalStartChar{'5'}},
		{"hello-", IllegalEndChar{'-'}},
		{"hello:", IllegalEndChar{':'}},
		{"hello--world", UglySubstring{"--", 5}},
		{"hello:-world", UglySubstring{":-", 5}},
		{"hello-:world", UglySubstring{"-:", 5}},
		{"hello::world", UglySubstring{"::", 5}},
	}
	for _, tt := range tests {
		_, err := NewId(tt.raw)
		require.Error(t, err, tt.raw)
		var invalid *InvalidIdError
		require.True(t, errors.As(err, &invalid), tt.raw)
		assert.Equal(t, tt.raw, invalid.RawId)
		assert.Equal(t, tt.reason, invalid.Reason, tt.raw)
	}
}

func TestId_Compare(t *testing.T) {
	a, _ := NewId("abc")
	b, _ := NewId("abd")
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))
}

func TestId_HashStable(t *testing.T) {
	a, _ := NewId("stable-id")
	b, _ := NewId("stable-id")
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestParseLintId_GroupId_distinctTypes(t *testing.T) {
	lint, err := ParseLintId("my-lint")
	require.NoError(t, err)
	group, err := ParseGroupId("my-lint")
	require.NoError(t, err)
	assert.Equal(t, "my-lint", lint.String())
	assert.Equal(t, "my-lint", group.String())
}
