package vex

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// IOAction names the filesystem operation an IOError failed during.
type IOAction int

const (
	IORead IOAction = iota
	IOWrite
)

func (a IOAction) String() string {
	switch a {
	case IOWrite:
		return "write"
	default:
		return "read"
	}
}

// IOError reports a failed filesystem operation against path.
type IOError struct {
	Path   PrettyPath
	Action IOAction
	Cause  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Action, e.Path, e.Cause)
}
func (e *IOError) Unwrap() error { return e.Cause }

// ManifestNotFoundError reports that no manifest could be found walking up
// from the project root.
type ManifestNotFoundError struct{}

func (*ManifestNotFoundError) Error() string {
	return "cannot find manifest, try running `vex init` in the project's root"
}

// AlreadyInitedError reports that a manifest already exists in an ancestor
// directory of the one `vex init` was asked to initialize.
type AlreadyInitedError struct {
	FoundRoot string
}

func (e *AlreadyInitedError) Error() string {
	return fmt.Sprintf("already inited in a parent directory %s", e.FoundRoot)
}

// NoVexesDirError reports that the manifest's configured scriptlet
// directory does not exist.
type NoVexesDirError struct {
	Path string
}

func (e *NoVexesDirError) Error() string {
	return fmt.Sprintf("cannot find vexes directory at %s", e.Path)
}

// ManifestParseError wraps a TOML decode failure.
type ManifestParseError struct {
	Path  string
	Cause error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("cannot parse manifest at %s: %v", e.Path, e.Cause)
}
func (e *ManifestParseError) Unwrap() error { return e.Cause }

// UnknownLanguageError reports that a manifest association or `vex.search`
// call named a language outside the supported set and not externally
// registered.
type UnknownLanguageError struct {
	Name string
}

func (e *UnknownLanguageError) Error() string { return fmt.Sprintf("unknown language %q", e.Name) }

// UnknownExtensionError reports a file extension not mapped to any
// language. Recoverable: the file is skipped.
type UnknownExtensionError struct {
	Extension string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("unknown extension %q", e.Extension)
}

// NoExtensionError reports a file with no extension at all. Recoverable:
// the file is skipped.
type NoExtensionError struct {
	Path PrettyPath
}

func (e *NoExtensionError) Error() string { return fmt.Sprintf("%s has no file extension", e.Path) }

// UnparseableError reports that tree-sitter failed to parse a file as the
// language its extension implied. Recoverable: the file is skipped.
type UnparseableError struct {
	Path     PrettyPath
	Language string
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("cannot parse %s as %s", e.Path, e.Language)
}

// NoInitError reports that a scriptlet declares no init function.
type NoInitError struct{ Path PrettyPath }

func (e *NoInitError) Error() string { return fmt.Sprintf("%s declares no init function", e.Path) }

// NoCallbacksError reports that a scriptlet's init function registered no
// observers at all.
type NoCallbacksError struct{ Path PrettyPath }

func (e *NoCallbacksError) Error() string { return fmt.Sprintf("%s declares no callbacks", e.Path) }

// NoQueryError reports that a scriptlet observes match events but never
// called vex.search.
type NoQueryError struct{ Path PrettyPath }

func (e *NoQueryError) Error() string { return fmt.Sprintf("%s declares no query", e.Path) }

// NoLanguageError reports that a scriptlet's vex.search call target
// language could not be determined.
type NoLanguageError struct{ Path PrettyPath }

func (e *NoLanguageError) Error() string { return fmt.Sprintf("%s declares no target language", e.Path) }

// NoMatchError reports that a scriptlet's vex.search call has no on_match
// callable.
type NoMatchError struct{ Path PrettyPath }

func (e *NoMatchError) Error() string { return fmt.Sprintf("%s declares no match observer", e.Path) }

// EmptyQueryError reports that a vex.search call's query text has no
// non-comment, non-whitespace content.
type EmptyQueryError struct{ Path PrettyPath }

func (e *EmptyQueryError) Error() string { return fmt.Sprintf("%s declares empty query", e.Path) }

// UnknownEventError reports an event name passed to vex.observe that is not
// one of the recognized lifecycle events.
type UnknownEventError struct {
	Name  string
	Known []string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q, expected one of: %s", e.Name, strings.Join(e.Known, ", "))
}

// UnknownOperatorError reports a tree-sitter predicate operator outside the
// known set, with an optional spell-corrected suggestion.
type UnknownOperatorError struct {
	Operator   string
	Suggestion string
}

func (e *UnknownOperatorError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown predicate operator %q", e.Operator)
	}
	return fmt.Sprintf("unknown predicate operator %q, did you mean %q?", e.Operator, e.Suggestion)
}

// ImportCycleError reports a cycle in scriptlet load() imports, with the
// cycle's member paths in traversal order.
type ImportCycleError struct {
	Cycle []PrettyPath
}

func (e *ImportCycleError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, p := range e.Cycle {
		parts[i] = p.String()
	}
	return fmt.Sprintf("import cycle detected: %s", strings.Join(parts, " -> "))
}

// NoSuchModuleError reports that a load() call named a scriptlet that does
// not exist.
type NoSuchModuleError struct{ Path PrettyPath }

func (e *NoSuchModuleError) Error() string { return fmt.Sprintf("cannot find module %q", e.Path) }

// PathOutOfBoundsError reports that a relative load() path walked above the
// vexes directory root.
type PathOutOfBoundsError struct{ Path string }

func (e *PathOutOfBoundsError) Error() string {
	return fmt.Sprintf("path %q escapes the vexes directory", e.Path)
}

// UnfreezableError reports an attempt to freeze a value of a type that
// cannot be safely shared across the vexing store's heap.
type UnfreezableError struct{ Type string }

func (e *UnfreezableError) Error() string { return fmt.Sprintf("cannot freeze a %s", e.Type) }

// ActionUnavailableError reports a host-object capability invoked outside
// the lifecycle stage that permits it (e.g. calling vex.warn during
// preiniting).
type ActionUnavailableError struct {
	What   string
	Action string
}

func (e *ActionUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable while %s", e.What, e.Action)
}

// QueryCompileError wraps a tree-sitter query compilation failure.
type QueryCompileError struct {
	Language string
	Cause    error
}

func (e *QueryCompileError) Error() string {
	return fmt.Sprintf("cannot compile %s query: %v", e.Language, e.Cause)
}
func (e *QueryCompileError) Unwrap() error { return e.Cause }

// InvalidWarnCallError reports a malformed vex.warn() argument list.
type InvalidWarnCallError struct{ Reason string }

func (e *InvalidWarnCallError) Error() string { return e.Reason }

// IsRecoverable reports whether err should cause the offending file to be
// logged and skipped (true) rather than aborting the scan (false).
// Recoverable kinds: per-file I/O failures, missing extension, unknown
// extension, unparseable file. Everything else is fatal.
func IsRecoverable(err error) bool {
	switch err.(type) {
	case *IOError, *NoExtensionError, *UnknownExtensionError, *UnparseableError:
		return true
	default:
		return false
	}
}

var (
	colorErr   = color.New(color.FgRed, color.Bold)
	colorHint  = color.New(color.FgYellow)
)

// Present renders err for terminal display: a bold red "Error:" line, plus
// a yellow "Fix:" hint for the error kinds that have an obvious one. Output
// respects NO_COLOR and the noColor parameter.
func Present(err error, noColor bool) string {
	original := color.NoColor
	defer func() { color.NoColor = original }()
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorErr.Sprint("Error: "))
	out.WriteString(err.Error())
	out.WriteString("\n")
	if fix := fixHint(err); fix != "" {
		out.WriteString(colorHint.Sprint("Fix:   "))
		out.WriteString(fix)
		out.WriteString("\n")
	}
	return out.String()
}

func fixHint(err error) string {
	switch err.(type) {
	case *ManifestNotFoundError:
		return "run `vex init` in the project's root"
	case *AlreadyInitedError:
		return "remove the existing manifest, or run vex from the directory it lives in"
	case *NoInitError:
		return "define an init() function and call vex.observe from it"
	case *NoQueryError:
		return "call vex.search(language, query, on_match) from your observer"
	default:
		return ""
	}
}
