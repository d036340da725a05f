package vex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vexlint/vex/internal/ignoremarkers"
	"github.com/vexlint/vex/internal/langs"
	"github.com/vexlint/vex/internal/runtime"
	"github.com/vexlint/vex/internal/scan"
	"github.com/vexlint/vex/internal/store"
	"github.com/vexlint/vex/internal/testharness"
)

// Engine orchestrates a project: scriptlet discovery and lifecycle, file
// enumeration, scanning, and test-running.
type Engine struct {
	root     string
	manifest *Manifest
	runtime  *runtime.Runtime
	registry *runtime.ObserverRegistry
	logger   *slog.Logger

	concurrency int
	ceiling     int
	filter      WarningFilter
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithConcurrency sets the per-file worker pool size. The default is 1.
func WithConcurrency(n int) Option {
	return func(e *Engine) { e.concurrency = n }
}

// WithCeiling sets the maximum number of warnings a scan will return,
// truncating the rest once exceeded. 0 (the default) means unlimited.
func WithCeiling(n int) Option {
	return func(e *Engine) { e.ceiling = n }
}

// WithWarningFilter restricts which lint and group ids may emit warnings.
// The default is AllWarnings().
func WithWarningFilter(filter WarningFilter) Option {
	return func(e *Engine) { e.filter = filter }
}

// WithLogger sets the sink for discovery and enumeration notices (skipped
// symlinks, skipped files with no language association). The default
// discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New walks up from dir looking for a manifest, then discovers, preinits,
// and inits the scriptlets under its configured vexes directory.
func New(dir string, opts ...Option) (*Engine, error) {
	root, manifest, err := Acquire(dir)
	if err != nil {
		return nil, err
	}

	e := &Engine{root: root, manifest: manifest, concurrency: 1, filter: AllWarnings(), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}

	vexesDir := manifest.VexesDir(root)
	preStore, err := store.Discover(vexesDir, e.storeLogger())
	if err != nil {
		return nil, translateStoreError(err)
	}
	scriptlets, err := preStore.Preinit()
	if err != nil {
		return nil, translateStoreError(err)
	}

	rt := runtime.New(Suggest)
	registry, err := rt.PreinitAndInit(context.Background(), scriptlets)
	if err != nil {
		return nil, translateRuntimeError(err)
	}

	e.runtime = rt
	e.registry = registry
	return e, nil
}

// ScanResult is a completed scan's output: its filtered, sorted
// irritations and how much material was inspected to produce them.
type ScanResult struct {
	Irritations     []Irritation
	NumFilesScanned int
	NumBytesScanned int
}

// Scan enumerates the project's files honoring the manifest's ignore/allow
// patterns and associations, runs the full scan pipeline, and returns the
// filtered, sorted irritations.
func (e *Engine) Scan(ctx context.Context) (*ScanResult, error) {
	candidates, err := e.enumerate()
	if err != nil {
		return nil, err
	}

	driver := &scan.Driver{
		Registry:    e.registry,
		Grammar:     e.grammarForLangName,
		Concurrency: e.concurrency,
		Ceiling:     e.ceiling,
	}
	result, err := driver.Scan(ctx, candidates, e.parseIdFilter)
	if err != nil {
		return nil, translateRuntimeError(err)
	}

	return &ScanResult{
		Irritations:     e.toIrritations(result.Warnings),
		NumFilesScanned: result.NumFilesScanned,
		NumBytesScanned: result.NumBytesScanned,
	}, nil
}

// TestVerdict is one named test run's outcome: every vex.warn() call made
// from that scriptlet's post_test_run observer, which is how a scriptlet
// author reports an assertion failure back to the harness.
type TestVerdict struct {
	Name    string
	Reports []Irritation
}

// Passed reports whether the test run recorded no assertion failures.
func (v TestVerdict) Passed() bool { return len(v.Reports) == 0 }

// Test runs name's pre_test_run/post_test_run cycle: scriptlets submit
// in-memory source via vex.scan during pre_test_run, the harness scans a
// scratch directory built from that content, and post_test_run observes
// the nested warnings view and may itself call vex.warn to report a
// failed assertion.
func (e *Engine) Test(ctx context.Context, name string) (*TestVerdict, error) {
	harness := &testharness.Harness{
		Registry: e.registry,
		Language: func(fileName string) (string, bool) {
			language, err := BaseAssociations().GetLanguage(NewPrettyPath(fileName))
			if err != nil || language.Name() == "" {
				return "", false
			}
			return language.Name(), true
		},
		Scan: func(ctx context.Context, root string, candidates []scan.Candidate) ([]scan.Warning, error) {
			driver := &scan.Driver{
				Registry:    e.registry,
				Grammar:     e.grammarForLangName,
				Concurrency: 1,
			}
			result, err := driver.Scan(ctx, candidates, e.parseIdFilter)
			if err != nil {
				return nil, err
			}
			return result.Warnings, nil
		},
	}
	reports, err := harness.Run(ctx, name)
	if err != nil {
		return nil, translateRuntimeError(err)
	}

	scanWarnings := make([]scan.Warning, len(reports))
	for i, r := range reports {
		scanWarnings[i] = scan.Warning{Data: r}
	}
	return &TestVerdict{Name: name, Reports: e.toIrritations(scanWarnings)}, nil
}

// enumerate walks e.root, skipping symlinks and anything matched by the
// manifest's ignore patterns unless a later allow pattern overrides it,
// and resolves each remaining file's language via Associations.
func (e *Engine) enumerate() ([]scan.Candidate, error) {
	var candidates []scan.Candidate
	err := filepath.WalkDir(e.root, func(absPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			e.logger.Info("skipping symlink", "path", absPath)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(e.root, absPath)
		if err != nil {
			return err
		}
		pretty := NewPrettyPath(rel)

		if e.isIgnored(pretty) {
			e.logger.Debug("skipping ignored file", "path", pretty.String())
			return nil
		}

		language, err := e.manifest.Associations.GetLanguage(pretty)
		if err != nil || language.Name() == "" {
			e.logger.Debug("skipping file with no language association", "path", pretty.String(), "reason", errOrAmbiguous(err))
			return nil // no association, or ambiguous: skip, a recoverable condition
		}

		candidates = append(candidates, scan.Candidate{
			AbsPath:    absPath,
			PrettyPath: pretty.String(),
			Language:   language.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, &IOError{Path: NewPrettyPath(e.root), Action: IORead, Cause: err}
	}
	return candidates, nil
}

// isIgnored reports whether pretty matches an ignore pattern without also
// matching a later allow pattern.
func (e *Engine) isIgnored(pretty PrettyPath) bool {
	ignored := false
	for _, p := range e.manifest.Ignore {
		if p.Matches(pretty) {
			ignored = true
			break
		}
	}
	if !ignored {
		return false
	}
	for _, p := range e.manifest.Allow {
		if p.Matches(pretty) {
			return false
		}
	}
	return true
}

func errOrAmbiguous(err error) string {
	if err != nil {
		return err.Error()
	}
	return "no association"
}

// storeLogger adapts e.logger's structured sink into the plain
// printf-style callback internal/store expects.
func (e *Engine) storeLogger() store.Logger {
	return func(format string, args ...any) {
		e.logger.Info(fmt.Sprintf(format, args...))
	}
}

func (e *Engine) grammarForLangName(name string) (*sitter.Language, bool) {
	language, ok := langs.Lookup(name)
	if !ok {
		return nil, false
	}
	return langs.Grammar(language)
}

// parseIdFilter adapts ParseLintIdFilter (which produces validated LintId
// values) into the scan package's plain-string LintIdFilter, since
// internal/scan cannot import this package.
func (e *Engine) parseIdFilter(body string) (ignoremarkers.LintIdFilter, error) {
	filter, err := ParseLintIdFilter(body)
	if err != nil {
		return ignoremarkers.LintIdFilter{}, err
	}
	if filter.all {
		return ignoremarkers.AllLintIdFilter(), nil
	}
	names := make([]string, len(filter.ids))
	for i, id := range filter.ids {
		names[i] = id.String()
	}
	return ignoremarkers.SpecificLintIdFilter(names), nil
}

// toIrritations filters warnings by the engine's WarningFilter, converts
// each survivor into an Irritation, and sorts the result by (path, start
// byte, end byte, id).
func (e *Engine) toIrritations(warnings []scan.Warning) []Irritation {
	irritations := make([]Irritation, 0, len(warnings))
	for _, w := range warnings {
		id, err := ParseLintId(w.Data.Id)
		if err != nil {
			continue
		}
		var group GroupId
		if w.Data.Group != "" {
			group, err = ParseGroupId(w.Data.Group)
			if err != nil {
				continue
			}
		}
		if !e.filter.IsActiveWithGroup(id, group) {
			continue
		}
		irritations = append(irritations, Irritation{
			Id:       id,
			Group:    group,
			Message:  w.Data.Message,
			Info:     w.Data.Info,
			At:       locationFromAnnotation(w.Data.At),
			ShowAlso: locationsFromAnnotations(w.Data.ShowAlso),
		})
	}
	sort.Slice(irritations, func(i, j int) bool { return irritations[i].Compare(irritations[j]) < 0 })
	return irritations
}

func locationFromAnnotation(a *runtime.Annotation) *Location {
	if a == nil {
		return nil
	}
	return &Location{
		Path:      NewPrettyPath(a.Location.Path),
		StartByte: a.Location.StartByte,
		EndByte:   a.Location.EndByte,
		StartLine: a.Location.StartLine,
		Source:    a.Location.Source,
		Label:     a.Label,
	}
}

func locationsFromAnnotations(as []runtime.Annotation) []Location {
	locs := make([]Location, 0, len(as))
	for i := range as {
		if loc := locationFromAnnotation(&as[i]); loc != nil {
			locs = append(locs, *loc)
		}
	}
	return locs
}

func translateStoreError(err error) error {
	switch e := err.(type) {
	case *store.NoVexesDirError:
		return &NoVexesDirError{Path: e.Path}
	case *store.NoSuchModuleError:
		return &NoSuchModuleError{Path: NewPrettyPath(e.Path)}
	case *store.PathOutOfBoundsError:
		return &PathOutOfBoundsError{Path: e.Path}
	case *store.ImportCycleError:
		cycle := make([]PrettyPath, len(e.Cycle))
		for i, p := range e.Cycle {
			cycle[i] = NewPrettyPath(p)
		}
		return &ImportCycleError{Cycle: cycle}
	default:
		return err
	}
}

func translateRuntimeError(err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *runtime.NoInitError:
		return &NoInitError{Path: NewPrettyPath(e.Path)}
	case *runtime.NoCallbacksError:
		return &NoCallbacksError{Path: NewPrettyPath(e.Path)}
	case *runtime.NoQueryError:
		return &NoQueryError{Path: NewPrettyPath(e.Path)}
	case *runtime.NoLanguageError:
		return &NoLanguageError{Path: NewPrettyPath(e.Path)}
	case *runtime.NoMatchError:
		return &NoMatchError{Path: NewPrettyPath(e.Path)}
	case *runtime.EmptyQueryError:
		return &EmptyQueryError{Path: NewPrettyPath(e.Path)}
	case *runtime.UnknownEventError:
		return &UnknownEventError{Name: e.Name, Known: e.Known}
	case *runtime.InvalidWarnCallError:
		return &InvalidWarnCallError{Reason: e.Reason}
	case *runtime.UnfreezableError:
		return &UnfreezableError{Type: e.Type}
	case *runtime.ActionUnavailableError:
		return &ActionUnavailableError{What: e.What, Action: e.Action}
	case *runtime.QueryCompileError:
		return &QueryCompileError{Language: e.Language, Cause: e.Cause}
	case *runtime.UnknownLanguageError:
		return &UnknownLanguageError{Name: e.Name}
	case *runtime.InvalidIdError:
		// NewId's validation is deterministic and shared by LintId/GroupId,
		// so re-running it on the same raw text recovers the specific
		// sub-reason without InvalidIdReason's sub-reason types being
		// duplicated in internal/runtime.
		if _, idErr := ParseLintId(e.RawId); idErr != nil {
			return idErr
		}
		return e
	default:
		if inner := errors.Unwrap(err); inner != nil {
			if translated := translateRuntimeError(inner); translated != inner {
				return translated
			}
		}
		return err
	}
}
