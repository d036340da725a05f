package runtime

import (
	"sync"
	"testing"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlint/vex/internal/langs"
	"github.com/vexlint/vex/internal/querycache"
)

func TestVexObject_Search_emptyQueryRejected(t *testing.T) {
	v := NewVexObject(VexingAction(OpenFile), "main.risor", &IntentQueue{}, querycache.New(), nil)

	err := v.Search("go", "", nil)
	require.Error(t, err)
	var emptyErr *EmptyQueryError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "main.risor", emptyErr.Path)
}

func TestVexObject_Search_unknownLanguage(t *testing.T) {
	v := NewVexObject(VexingAction(OpenFile), "main.risor", &IntentQueue{}, querycache.New(), nil)

	err := v.Search("not-a-real-language", "(source_file)", nil)
	require.Error(t, err)
	var unknown *UnknownLanguageError
	require.ErrorAs(t, err, &unknown)
}

func TestVexObject_Warn_invalidIdRejected(t *testing.T) {
	v := NewVexObject(VexingAction(OpenFile), "main.risor", &IntentQueue{}, nil, nil)

	err := v.Warn("x", "bad id", nil)
	require.Error(t, err)
	var invalid *InvalidIdError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "x", invalid.RawId)
}

func TestVexObject_Warn_validIdQueued(t *testing.T) {
	queue := &IntentQueue{}
	v := NewVexObject(VexingAction(OpenFile), "main.risor", queue, nil, nil)

	require.NoError(t, v.Warn("no-todo", "found a todo", nil))
	intents := queue.Drain()
	require.Len(t, intents, 1)
	warn, ok := intents[0].(WarnIntent)
	require.True(t, ok)
	assert.Equal(t, "no-todo", warn.Data.Id)
}

// TestVexObject_WithRetarget_serializesConcurrentDispatch simulates the
// scan driver's real concurrency pattern: many goroutines retargeting and
// invoking against the same long-lived VexObject (as every file's
// dispatch into one scriptlet's observer does). Each callback reads back
// its own freshly-set action name before returning; if WithRetarget didn't
// hold the lock across the whole call, a concurrent retarget from another
// goroutine could be observed mid-callback.
func TestVexObject_WithRetarget_serializesConcurrentDispatch(t *testing.T) {
	v := NewVexObject(InitingAction(), "main.risor", &IntentQueue{}, nil, nil)

	const workers = 50
	var wg sync.WaitGroup
	mismatches := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			action := VexingAction(OpenFile)
			queue := &IntentQueue{}
			err := v.WithRetarget(action, queue, func() error {
				if v.action != action {
					mismatches <- "action changed mid-callback"
				}
				if v.queue != queue {
					mismatches <- "queue changed mid-callback"
				}
				return nil
			})
			if err != nil {
				mismatches <- err.Error()
			}
		}(i)
	}
	wg.Wait()
	close(mismatches)

	for m := range mismatches {
		t.Errorf("unexpected: %s", m)
	}
}

func TestGrammarLookup_sanity(t *testing.T) {
	// Sanity check that the language this file's other tests assume
	// resolves, so a langs registration regression fails loudly here
	// instead of as a confusing EmptyQueryError/UnknownLanguageError mix-up.
	lang, ok := langs.Lookup("go")
	require.True(t, ok)
	grammar, ok := langs.Grammar(lang)
	require.True(t, ok)
	assert.Equal(t, golang.GetLanguage(), grammar)
}
