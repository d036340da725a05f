package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vexlint/vex/internal/ignoremarkers"
	"github.com/vexlint/vex/internal/runtime"
)

// Warning is a vex.warn() call, still attributed to its declaring
// scriptlet and not yet passed through the warning filter — that is the
// root package's job, which holds the warning filter this driver does not
// know about. Warnings raised while scanning a parsed file have already
// been checked against that file's ignore markers (see dropIgnored).
type Warning struct {
	Data runtime.WarnData
	Path string
}

// Result is one scan's raw output, before filtering.
type Result struct {
	Warnings        []Warning
	NumFilesScanned int
	NumBytesScanned int
}

// Driver runs the per-project, per-file, per-match event pipeline against
// an already-inited observer registry.
type Driver struct {
	Registry    *runtime.ObserverRegistry
	Grammar     func(lang string) (*sitter.Language, bool)
	Concurrency int
	Ceiling     int // 0 means unlimited
}

// ParseIdFilter parses an ignore-comment body (the text following
// `vex:ignore`) into a filter over lint ids.
type ParseIdFilter func(body string) (ignoremarkers.LintIdFilter, error)

// Scan fires open_project once, then open_file/parse/match for every
// candidate (in parallel, bounded by Concurrency), and returns every
// warning recorded along the way.
func (d *Driver) Scan(ctx context.Context, candidates []Candidate, parseIdFilter ParseIdFilter) (*Result, error) {
	projectQueue := &runtime.IntentQueue{}
	if err := d.Registry.Dispatch(runtime.OpenProject, runtime.OpenProjectEvent{}, runtime.VexingAction(runtime.OpenProject), projectQueue); err != nil {
		return nil, fmt.Errorf("open_project: %w", err)
	}

	var projectFinds []runtime.FindIntent
	var warnings []Warning
	for _, intent := range projectQueue.Drain() {
		switch t := intent.(type) {
		case runtime.FindIntent:
			projectFinds = append(projectFinds, t)
		case runtime.WarnIntent:
			warnings = append(warnings, Warning{Data: t.Data, Path: t.Path})
		}
	}

	concurrency := d.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		sem       = make(chan struct{}, concurrency)
		numFiles  int
		numBytes  int
		warnCount int32
		firstErr  error
	)

	for _, c := range candidates {
		if d.Ceiling > 0 && atomic.LoadInt32(&warnCount) >= int32(d.Ceiling) {
			break
		}

		grammar, ok := d.Grammar(c.Language)
		if !ok {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(c Candidate, grammar *sitter.Language) {
			defer wg.Done()
			defer func() { <-sem }()

			fileWarnings, bytesRead, err := d.scanFile(c, grammar, projectFinds, parseIdFilter)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", c.PrettyPath, err)
				}
				return
			}
			warnings = append(warnings, fileWarnings...)
			numFiles++
			numBytes += bytesRead
			atomic.AddInt32(&warnCount, int32(len(fileWarnings)))
		}(c, grammar)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(warnings, func(i, j int) bool {
		a, b := warnings[i].Data.At, warnings[j].Data.At
		if a == nil || b == nil {
			return warnings[i].Path < warnings[j].Path
		}
		if a.Location.Path != b.Location.Path {
			return a.Location.Path < b.Location.Path
		}
		if a.Location.StartByte != b.Location.StartByte {
			return a.Location.StartByte < b.Location.StartByte
		}
		if a.Location.EndByte != b.Location.EndByte {
			return a.Location.EndByte < b.Location.EndByte
		}
		return warnings[i].Data.Id < warnings[j].Data.Id
	})
	if d.Ceiling > 0 && len(warnings) > d.Ceiling {
		warnings = warnings[:d.Ceiling]
	}

	return &Result{Warnings: warnings, NumFilesScanned: numFiles, NumBytesScanned: numBytes}, nil
}

// scanFile fires open_file, then — only if some project- or file-scoped
// query targets this file's language — parses it and runs every applicable
// query, firing match for each result.
func (d *Driver) scanFile(c Candidate, grammar *sitter.Language, projectFinds []runtime.FindIntent, parseIdFilter ParseIdFilter) ([]Warning, int, error) {
	fileQueue := &runtime.IntentQueue{}
	evt := runtime.OpenFileEvent{Path: c.PrettyPath, Language: c.Language}
	if err := d.Registry.Dispatch(runtime.OpenFile, evt, runtime.VexingAction(runtime.OpenFile), fileQueue); err != nil {
		return nil, 0, fmt.Errorf("open_file: %w", err)
	}

	var fileFinds []runtime.FindIntent
	var warnings []Warning
	for _, intent := range fileQueue.Drain() {
		switch t := intent.(type) {
		case runtime.FindIntent:
			fileFinds = append(fileFinds, t)
		case runtime.WarnIntent:
			warnings = append(warnings, Warning{Data: t.Data, Path: t.Path})
		}
	}

	var applicable []runtime.FindIntent
	for _, f := range projectFinds {
		if f.Language == c.Language {
			applicable = append(applicable, f)
		}
	}
	for _, f := range fileFinds {
		if f.Language == c.Language {
			applicable = append(applicable, f)
		}
	}
	if len(applicable) == 0 {
		return warnings, 0, nil
	}

	sf, err := Parse(c, grammar, parseIdFilter)
	if err != nil {
		return warnings, 0, err
	}
	defer sf.Close()

	matchQueue := &runtime.IntentQueue{}
	for _, find := range applicable {
		matchEvt := func(captures map[string]runtime.Node) runtime.MatchEvent {
			return runtime.MatchEvent{Path: c.PrettyPath, Language: c.Language, Captures: captures}
		}
		if err := RunQuery(sf, find.Query, func(captures map[string]runtime.Node) error {
			return find.Invoke(matchEvt(captures), matchQueue)
		}); err != nil {
			return warnings, len(sf.Content), fmt.Errorf("match: %w", err)
		}
	}
	for _, intent := range matchQueue.Drain() {
		if w, ok := intent.(runtime.WarnIntent); ok {
			warnings = append(warnings, Warning{Data: w.Data, Path: w.Path})
		}
	}

	warnings = dropIgnored(warnings, sf.Markers)
	return warnings, len(sf.Content), nil
}

// dropIgnored removes any warning whose `at` location falls inside an
// ignore marker that covers its lint id.
func dropIgnored(warnings []Warning, markers *ignoremarkers.IgnoreMarkers) []Warning {
	kept := warnings[:0]
	for _, w := range warnings {
		if w.Data.At != nil && markers.IsIgnored(w.Data.At.Location.StartByte, w.Data.Id) {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}
