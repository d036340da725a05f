package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"

	"github.com/vexlint/vex/internal/querycache"
	"github.com/vexlint/vex/internal/store"
)

// Runtime preinits and inits a store's scriptlets, producing the
// ObserverRegistry the scan driver dispatches lifecycle events through.
type Runtime struct {
	queries *querycache.Cache
	suggest querycache.Suggester
}

// New returns a Runtime backed by a fresh query cache. suggest is used to
// build "did you mean" hints on unknown predicate operators; nil disables
// the hint.
func New(suggest querycache.Suggester) *Runtime {
	return &Runtime{queries: querycache.New(), suggest: suggest}
}

// Queries exposes the runtime's query cache, so the scan driver can reuse
// it for queries declared outside a scriptlet callback.
func (r *Runtime) Queries() *querycache.Cache { return r.queries }

// loadEdgeTargets returns the set of pretty paths named by some
// scriptlet's Loads: a scriptlet loaded by another is a library and may
// omit init; everything else is a toplevel scriptlet and must declare one.
func loadEdgeTargets(scriptlets []store.Scriptlet) map[string]bool {
	targets := make(map[string]bool)
	for _, s := range scriptlets {
		for _, load := range s.Loads {
			targets[load] = true
		}
	}
	return targets
}

// hasInit reports whether source declares a top-level init function, by a
// textual scan for a zero-argument `func init()` (or `fn init()`,
// `init := func()`, `init = func()`) declaration rather than a full parse,
// mirroring the textual scan internal/store uses to extract load() targets.
func hasInit(source string) bool {
	for _, decl := range []string{"func init()", "fn init()", "init := func()", "init = func()"} {
		if strings.Contains(source, decl) {
			return true
		}
	}
	return false
}

// PreinitAndInit evaluates every scriptlet's top-level code, then its init
// function (if declared), registering every vex.observe() call made during
// init into the returned registry. scriptlets must already be in
// load-before-loader order, as produced by a store's Preinit.
func (r *Runtime) PreinitAndInit(ctx context.Context, scriptlets []store.Scriptlet) (*ObserverRegistry, error) {
	libraries := loadEdgeTargets(scriptlets)
	registry := NewObserverRegistry()

	for _, s := range scriptlets {
		toplevel := !libraries[s.Path]

		if err := r.evalModule(ctx, s); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}

		if !hasInit(s.Source) {
			if toplevel {
				return nil, fmt.Errorf("%s: %w", s.Path, &NoInitError{Path: s.Path})
			}
			continue
		}

		queue := &IntentQueue{}
		if err := r.evalInit(ctx, s, queue); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}

		registered := 0
		for _, intent := range queue.Drain() {
			if obs, ok := intent.(ObserveIntent); ok {
				registry.Register(obs)
				registered++
			}
		}
		if registered == 0 {
			return nil, fmt.Errorf("%s: %w", s.Path, &NoCallbacksError{Path: s.Path})
		}
	}

	return registry, nil
}

// evalModule evaluates s's top level (the preiniting stage): the bound vex
// global rejects every call, since preiniting may only declare functions
// and constants.
func (r *Runtime) evalModule(ctx context.Context, s store.Scriptlet) error {
	_, err := risor.Eval(ctx, s.Source,
		risor.WithGlobal("vex", noopVexObject(PreinitingAction())),
		risor.WithGlobal("log", scriptLogProxy(s.Path)),
	)
	return err
}

// evalInit re-evaluates s's full source followed by a synthesized call to
// its init function: init is invoked by re-running the module with a
// trailing call appended. The callables init passes to vex.observe (and
// that observers later pass to vex.search) are kept as live risor function
// values and called directly at dispatch time. Re-running the top level is
// safe because every stage's top-level code is side-effect-free outside
// vex.observe() registrations, which queue is scoped to capture.
func (r *Runtime) evalInit(ctx context.Context, s store.Scriptlet, queue *IntentQueue) error {
	vexObj, err := newProxyVexObject(InitingAction(), s.Path, queue, r.queries, r.suggest)
	if err != nil {
		return err
	}

	source := s.Source + "\ninit()\n"
	_, err = risor.Eval(ctx, source,
		risor.WithGlobal("vex", vexObj),
		risor.WithGlobal("log", scriptLogProxy(s.Path)),
	)
	return err
}

// scriptLogProxy proxies a logObject prefixed with path into risor, falling
// back to an inline error object on the (never expected) proxy failure
// rather than aborting the eval.
func scriptLogProxy(path string) object.Object {
	proxy, err := object.NewProxy(&logObject{prefix: path})
	if err != nil {
		return object.Errorf("log: %v", err)
	}
	return proxy
}

func newProxyVexObject(action Action, path string, queue *IntentQueue, queries *querycache.Cache, suggest querycache.Suggester) (object.Object, error) {
	v := NewVexObject(action, path, queue, queries, suggest)
	return object.NewProxy(v)
}

// noopVexObject binds a vex global during stages that must not observe,
// search, warn, or scan, so an errant call still fails with a clear
// ActionUnavailableError rather than a nil-global panic.
func noopVexObject(action Action) object.Object {
	v := NewVexObject(action, "", &IntentQueue{}, nil, nil)
	proxy, err := object.NewProxy(v)
	if err != nil {
		return object.Errorf("vex: %v", err)
	}
	return proxy
}
