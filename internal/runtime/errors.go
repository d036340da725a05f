package runtime

import (
	"fmt"
	"strings"
)

// These mirror the root package's error taxonomy but are defined locally so
// this package need not import the root package (which imports this one).
// The root package's Engine translates them into their root-level
// equivalents before they reach a caller.

type ActionUnavailableError struct {
	What   string
	Action string
}

func (e *ActionUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable while %s", e.What, e.Action)
}

type NoInitError struct{ Path string }

func (e *NoInitError) Error() string { return fmt.Sprintf("%s declares no init function", e.Path) }

type NoCallbacksError struct{ Path string }

func (e *NoCallbacksError) Error() string { return fmt.Sprintf("%s declares no callbacks", e.Path) }

type NoQueryError struct{ Path string }

func (e *NoQueryError) Error() string { return fmt.Sprintf("%s declares no query", e.Path) }

type NoLanguageError struct{ Path string }

func (e *NoLanguageError) Error() string { return fmt.Sprintf("%s declares no target language", e.Path) }

type NoMatchError struct{ Path string }

func (e *NoMatchError) Error() string { return fmt.Sprintf("%s declares no match observer", e.Path) }

type EmptyQueryError struct{ Path string }

func (e *EmptyQueryError) Error() string { return fmt.Sprintf("%s declares empty query", e.Path) }

type UnknownEventError struct {
	Name  string
	Known []string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %q, expected one of: %s", e.Name, strings.Join(e.Known, ", "))
}

type InvalidWarnCallError struct{ Reason string }

func (e *InvalidWarnCallError) Error() string { return e.Reason }

type UnfreezableError struct{ Type string }

func (e *UnfreezableError) Error() string { return fmt.Sprintf("cannot freeze a %s", e.Type) }

type QueryCompileError struct {
	Language string
	Cause    error
}

func (e *QueryCompileError) Error() string {
	return fmt.Sprintf("cannot compile %s query: %v", e.Language, e.Cause)
}
func (e *QueryCompileError) Unwrap() error { return e.Cause }

type UnknownLanguageError struct{ Name string }

func (e *UnknownLanguageError) Error() string { return fmt.Sprintf("unknown language %q", e.Name) }

// InvalidIdError reports that a vex.warn() id or group argument failed
// identifier validation. RawId is preserved so the root package can
// re-derive the full structured reason by re-running ParseLintId/
// ParseGroupId on it.
type InvalidIdError struct{ RawId string }

func (e *InvalidIdError) Error() string { return fmt.Sprintf("invalid id %q", e.RawId) }
