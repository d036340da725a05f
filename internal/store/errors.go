package store

import (
	"fmt"
	"strings"
)

// NoVexesDirError reports that the configured scriptlet directory does not
// exist. Defined here (rather than reusing the root package's error type) to
// avoid an import cycle: the root package imports this one, not vice versa.
// The root engine translates this into its own *vex.NoVexesDirError.
type NoVexesDirError struct{ Path string }

func (e *NoVexesDirError) Error() string { return fmt.Sprintf("cannot find vexes directory at %s", e.Path) }

// NoSuchModuleError reports that a load() call named a scriptlet outside the
// discovered set.
type NoSuchModuleError struct{ Path string }

func (e *NoSuchModuleError) Error() string { return fmt.Sprintf("cannot find module %q", e.Path) }

// ImportCycleError reports a cycle among scriptlet load() edges.
type ImportCycleError struct{ Cycle []string }

func (e *ImportCycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// PathOutOfBoundsError reports that a relative load() path climbed above the
// vexes directory root.
type PathOutOfBoundsError struct{ Path string }

func (e *PathOutOfBoundsError) Error() string {
	return fmt.Sprintf("path %q escapes the vexes directory", e.Path)
}
