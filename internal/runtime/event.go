package runtime

import "fmt"

// EventKind is a scriptlet lifecycle event a scriptlet may observe.
type EventKind int

const (
	OpenProject EventKind = iota
	OpenFile
	Match
	PreTestRun
	PostTestRun
)

func (k EventKind) String() string {
	switch k {
	case OpenProject:
		return "open_project"
	case OpenFile:
		return "open_file"
	case Match:
		return "match"
	case PreTestRun:
		return "pre_test_run"
	case PostTestRun:
		return "post_test_run"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// AllEventNames lists every recognized event name, used to build the
// "expected one of" part of an UnknownEventError.
var AllEventNames = []string{"open_project", "open_file", "match", "pre_test_run", "post_test_run"}

// ParseEventKind maps an event name to its EventKind, or reports that the
// name is unrecognized.
func ParseEventKind(name string) (EventKind, bool) {
	switch name {
	case "open_project":
		return OpenProject, true
	case "open_file":
		return OpenFile, true
	case "match":
		return Match, true
	case "pre_test_run":
		return PreTestRun, true
	case "post_test_run":
		return PostTestRun, true
	default:
		return 0, false
	}
}

// OpenProjectEvent carries no data; open_project observers learn the
// project root only through their vex.search/vex.warn calls.
type OpenProjectEvent struct{}

// OpenFileEvent carries the file under inspection.
type OpenFileEvent struct {
	Path     string
	Language string
}

// MatchEvent carries one query match's capture bundle, keyed by capture
// name. Node values are only valid for the duration of the callback.
type MatchEvent struct {
	Path     string
	Language string
	Captures map[string]Node
}

// PreTestRunEvent fires once per test run, before any scratch file is
// written.
type PreTestRunEvent struct{ Name string }

// PostTestRunEvent carries the warnings collected from a test run's scratch
// scan, nested by path then lint id.
type PostTestRunEvent struct {
	Name     string
	Warnings map[string]map[string][]WarnData
}
