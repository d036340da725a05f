package runtime

import sitter "github.com/smacker/go-tree-sitter"

// Location names a byte range within a path, materialized eagerly (rather
// than kept as a live Node reference) so it can outlive the parsed tree it
// was read from. StartLine and Source are captured for display purposes
// only, at the same time as the byte range, since the source bytes are
// unavailable once the owning file is dropped.
type Location struct {
	Path               string
	StartByte, EndByte int
	StartLine          int
	Source             string
}

// LocationFromNode captures n's location, including a display line number
// and source excerpt. Call this before n's owning file is dropped.
func LocationFromNode(n Node) Location {
	return Location{
		Path:      n.Path(),
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		StartLine: n.StartLine(),
		Source:    n.Text(),
	}
}

// Annotation is a located, optionally labeled span, used for both the
// `at` slot and each `show_also` entry of a warn call.
type Annotation struct {
	Location Location
	Label    string
}

// WarnData is a vex.warn() call's arguments, captured before translation
// into the root package's Irritation type (which this package cannot
// import without creating a cycle).
type WarnData struct {
	Id       string
	Message  string
	At       *Annotation
	ShowAlso []Annotation
	Info     string
	Group    string
}

// Intent is one of the deferred effects a host-object call records for the
// scan driver to act on after the callback returns.
type Intent interface{ isIntent() }

// FindIntent records a vex.search() call: a compiled query plus the
// callback to run for every match. Owner is the declaring scriptlet's
// long-lived vex object, retargeted by the scan driver to the match action
// before each invocation (a match callback may itself call vex.warn()).
type FindIntent struct {
	Language string
	Query    *sitter.Query
	Owner    *VexObject
	OnMatch  func(MatchEvent) error
	Path     string // attribution: the scriptlet that declared this query
}

func (FindIntent) isIntent() {}

// Invoke retargets f's owning vex object to the match action and a fresh
// queue, runs the match callback, and appends whatever it recorded (finds
// a match callback may itself call vex.warn() to) into collected.
func (f FindIntent) Invoke(evt MatchEvent, collected *IntentQueue) error {
	queue := &IntentQueue{}
	err := f.Owner.WithRetarget(VexingAction(Match), queue, func() error {
		return f.OnMatch(evt)
	})
	for _, intent := range queue.Drain() {
		collected.Add(intent)
	}
	return err
}

// ObserveIntent records a vex.observe() call made during init. Owner is the
// scriptlet's long-lived vex object, which the scan driver retargets to the
// current action and a fresh intent queue before invoking Observer.
type ObserveIntent struct {
	Kind     EventKind
	Owner    *VexObject
	Observer func(any) error
	Path     string
}

func (ObserveIntent) isIntent() {}

// WarnIntent records a vex.warn() call.
type WarnIntent struct {
	Data WarnData
	Path string
}

func (WarnIntent) isIntent() {}

// ScanFileIntent records a vex.scan() call made during pre_test_run.
type ScanFileIntent struct {
	Name, Language, Content string
	Path                    string
}

func (ScanFileIntent) isIntent() {}

// IntentQueue accumulates a single callback invocation's intents. Drained
// by the caller immediately after the callback returns.
type IntentQueue struct {
	intents []Intent
}

func (q *IntentQueue) Add(i Intent) { q.intents = append(q.intents, i) }

// Drain returns and clears the accumulated intents.
func (q *IntentQueue) Drain() []Intent {
	drained := q.intents
	q.intents = nil
	return drained
}
