// Package vex is a programmable static-analysis engine for 10 languages: Go,
// TypeScript, JavaScript, Python, Rust, C, C++, Java, PHP, and Ruby, with
// an escape hatch for externally-registered grammars.
//
// Users write lint rules ("scriptlets") in an embedded scripting language
// and run them against a project's source tree. Each scriptlet registers
// callbacks for lifecycle events (project open, file open, query match,
// test hooks) and uses a host-provided object, `vex`, to declare
// tree-sitter queries, receive matches with captured syntax-tree nodes,
// and emit warnings ("irritations") annotated against source locations.
//
// # Pipeline
//
// A scan runs in three phases:
//
//  1. Store and loader: discover scriptlet files under the queries
//     directory, resolve `load()` imports with cycle detection,
//     topologically order the scriptlets, and preinit then init each one.
//  2. Open project: fire `open_project` once, collecting project-wide
//     queries and any warnings emitted directly.
//  3. Scan driver: enumerate project files, and for each, fire
//     `open_file`, run every applicable query through a tree-sitter
//     cursor, and fire `match` per result, collecting warnings.
//
// Warnings ("irritations") are filtered by the active warning filter,
// checked against inline ignore markers, sorted, and truncated to the
// configured ceiling.
//
// # Usage
//
//	e, err := vex.New("path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := e.Scan(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, irr := range report.Irritations {
//	    fmt.Println(irr.Render(false))
//	}
//
// # Scriptlet API surface
//
// Scriptlets are evaluated by an embedded Risor VM (see internal/runtime).
// The `vex` host object exposes `observe`, `search`, `warn`, and `scan`,
// each gated to particular lifecycle stages (preiniting, initing, vexing).
package vex
