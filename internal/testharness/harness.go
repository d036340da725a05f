// Package testharness runs a vexing store's scriptlets against content
// they submit themselves during pre_test_run, so scriptlet authors can
// assert on the warnings their own callbacks produce.
package testharness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vexlint/vex/internal/runtime"
	"github.com/vexlint/vex/internal/scan"
)

// DuplicateFileError reports that a test run submitted the same scan-file
// name more than once.
type DuplicateFileError struct {
	Name string
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("test file %q declared more than once", e.Name)
}

// PathOperatorError reports a scan-file name containing path operators
// (".", "..", or a rooted path), which would let a test escape the scratch
// directory.
type PathOperatorError struct{ Name string }

func (e *PathOperatorError) Error() string {
	return fmt.Sprintf("cannot use path operators in test file name: got %q", e.Name)
}

// ScanFunc runs a full scan over a scratch directory populated from a test
// run's submitted files, returning every warning produced. The root
// package supplies this, since it alone knows how to resolve languages and
// build a Driver.
type ScanFunc func(ctx context.Context, root string, candidates []scan.Candidate) ([]scan.Warning, error)

// Harness runs pre_test_run/post_test_run cycles against an inited
// registry.
type Harness struct {
	Registry *runtime.ObserverRegistry
	Scan     ScanFunc
	// Language resolves a scratch file's name to the language it should be
	// parsed as, failing if the name has no default association.
	Language func(name string) (string, bool)
}

// Run fires pre_test_run named name, materializes every submitted
// ScanFileIntent into a fresh scratch directory, scans it, and fires
// post_test_run with the nested warnings view. Any vex.warn() calls made
// from a post_test_run observer are returned as the test's verdict — a
// scriptlet author's assertions surface this way, since post_test_run is
// the only vantage point that has seen the scan's own warnings.
func (h *Harness) Run(ctx context.Context, name string) ([]runtime.WarnData, error) {
	preQueue := &runtime.IntentQueue{}
	evt := runtime.PreTestRunEvent{Name: name}
	if err := h.Registry.Dispatch(runtime.PreTestRun, evt, runtime.VexingAction(runtime.PreTestRun), preQueue); err != nil {
		return nil, fmt.Errorf("pre_test_run: %w", err)
	}

	type scanFile struct {
		name, language, content string
	}
	var files []scanFile
	seen := make(map[string]int)
	for _, intent := range preQueue.Drain() {
		sf, ok := intent.(runtime.ScanFileIntent)
		if !ok {
			continue
		}
		seen[sf.Name]++
		files = append(files, scanFile{name: sf.Name, language: sf.Language, content: sf.Content})
	}
	for name, count := range seen {
		if count > 1 {
			return nil, &DuplicateFileError{Name: name}
		}
	}

	scratchDir, err := os.MkdirTemp("", "vex-test-*")
	if err != nil {
		return nil, fmt.Errorf("pre_test_run: create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	candidates := make([]scan.Candidate, 0, len(files))
	for _, f := range files {
		if hasPathOperator(f.name) {
			return nil, &PathOperatorError{Name: f.name}
		}
		if h.Language != nil {
			if assoc, ok := h.Language(f.name); ok && assoc != f.language {
				return nil, fmt.Errorf("pre_test_run: file %s declared as %s but default association is %s", f.name, f.language, assoc)
			}
		}

		absPath := filepath.Join(scratchDir, filepath.FromSlash(f.name))
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("pre_test_run: %w", err)
		}
		if err := os.WriteFile(absPath, []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("pre_test_run: %w", err)
		}
		candidates = append(candidates, scan.Candidate{AbsPath: absPath, PrettyPath: f.name, Language: f.language})
	}

	warnings, err := h.Scan(ctx, scratchDir, candidates)
	if err != nil {
		return nil, fmt.Errorf("test scan: %w", err)
	}

	nested := make(map[string]map[string][]runtime.WarnData)
	for _, w := range warnings {
		if nested[w.Path] == nil {
			nested[w.Path] = make(map[string][]runtime.WarnData)
		}
		nested[w.Path][w.Data.Id] = append(nested[w.Path][w.Data.Id], w.Data)
	}

	postQueue := &runtime.IntentQueue{}
	postEvt := runtime.PostTestRunEvent{Name: name, Warnings: nested}
	if err := h.Registry.Dispatch(runtime.PostTestRun, postEvt, runtime.VexingAction(runtime.PostTestRun), postQueue); err != nil {
		return nil, fmt.Errorf("post_test_run: %w", err)
	}

	var verdict []runtime.WarnData
	for _, intent := range postQueue.Drain() {
		if w, ok := intent.(runtime.WarnIntent); ok {
			verdict = append(verdict, w.Data)
		}
	}
	return verdict, nil
}

func hasPathOperator(name string) bool {
	if filepath.IsAbs(name) {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == "." || part == ".." || part == "" {
			return true
		}
	}
	return false
}
