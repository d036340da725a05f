package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlint/vex/internal/store"
)

func TestPreinitAndInit_registersObservers(t *testing.T) {
	scriptlets := []store.Scriptlet{
		{Path: "main.risor", Source: `
func init() {
	vex.observe("open_file", func(event) {
		vex.warn("no-todo", "found a todo")
	})
}
`},
	}

	rt := New(nil)
	registry, err := rt.PreinitAndInit(context.Background(), scriptlets)
	require.NoError(t, err)
	assert.True(t, registry.HasAny(OpenFile))
	assert.False(t, registry.HasAny(Match))
}

func TestPreinitAndInit_toplevelWithoutInitRejected(t *testing.T) {
	scriptlets := []store.Scriptlet{
		{Path: "main.risor", Source: `x := 1`},
	}

	rt := New(nil)
	_, err := rt.PreinitAndInit(context.Background(), scriptlets)
	require.Error(t, err)
	var noInit *NoInitError
	assert.ErrorAs(t, err, &noInit)
}

func TestPreinitAndInit_libraryWithoutInitAllowed(t *testing.T) {
	scriptlets := []store.Scriptlet{
		{Path: "lib.risor", Source: `func helper() { return 1 }`},
		{
			Path:  "main.risor",
			Loads: []string{"lib.risor"},
			Source: `
func init() {
	vex.observe("open_project", func(event) {})
}
`,
		},
	}

	rt := New(nil)
	registry, err := rt.PreinitAndInit(context.Background(), scriptlets)
	require.NoError(t, err)
	assert.True(t, registry.HasAny(OpenProject))
}

func TestPreinitAndInit_initWithoutCallbacksRejected(t *testing.T) {
	scriptlets := []store.Scriptlet{
		{Path: "main.risor", Source: `
func init() {
	x := 1
}
`},
	}

	rt := New(nil)
	_, err := rt.PreinitAndInit(context.Background(), scriptlets)
	require.Error(t, err)
	var noCallbacks *NoCallbacksError
	assert.ErrorAs(t, err, &noCallbacks)
}
