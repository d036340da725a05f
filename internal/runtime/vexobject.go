package runtime

import (
	"errors"
	"sync"

	"github.com/risor-io/risor/object"

	"github.com/vexlint/vex/internal/langs"
	"github.com/vexlint/vex/internal/querycache"
)

// VexObject is the `vex` host object bound into a scriptlet's risor
// environment via object.NewProxy. Every method first checks the current
// action against the per-method allow-list, then appends an Intent to the
// queue rather than acting immediately — intents are drained and actually
// applied by the scan driver once the callback returns.
//
// A scriptlet's vex global is a single long-lived object: every observer
// and match callback it registers closes over the same *VexObject, and the
// scan driver dispatches those callbacks from multiple worker goroutines at
// once (one per file). mu serializes retargeting and the callback body
// together, so two dispatches into the same scriptlet can't interleave
// their action/queue state.
type VexObject struct {
	mu      sync.Mutex
	action  Action
	path    string // the invoking scriptlet's pretty path, for attribution
	queue   *IntentQueue
	queries *querycache.Cache
	suggest querycache.Suggester
}

// NewVexObject returns a host object: action names the current lifecycle
// moment, path attributes intents to the invoking scriptlet, and queue
// receives every intent recorded until WithRetarget rebinds action and
// queue for a later dispatch.
func NewVexObject(action Action, path string, queue *IntentQueue, queries *querycache.Cache, suggest querycache.Suggester) *VexObject {
	return &VexObject{action: action, path: path, queue: queue, queries: queries, suggest: suggest}
}

// WithRetarget rebinds v's current action and intent queue, runs fn, and
// only then releases v for the next dispatch. Retargeting and the callback
// body must be one atomic section: the callback's vex.observe/search/warn/
// scan calls read v.action and v.queue directly, so letting another
// goroutine retarget v mid-call would let one worker's dispatch observe (or
// clobber) another's action/queue.
func (v *VexObject) WithRetarget(action Action, queue *IntentQueue, fn func() error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.action = action
	v.queue = queue
	return fn()
}

// Observe registers an observer for event, to run during the vexing stage.
func (v *VexObject) Observe(event string, cb object.Object) error {
	if err := checkAllowed("observe", v.action); err != nil {
		return err
	}
	kind, ok := ParseEventKind(event)
	if !ok {
		return &UnknownEventError{Name: event, Known: AllEventNames}
	}
	callable := cb
	v.queue.Add(ObserveIntent{
		Kind: kind,
		Owner: v,
		Observer: func(evt any) error {
			_, err := object.Call(nil, callable, []object.Object{wrapEvent(evt)})
			return err
		},
		Path: v.path,
	})
	return nil
}

// Search declares a query over lang's syntax trees; onMatch fires once per
// match this call's scope (project or file) produces.
func (v *VexObject) Search(lang, queryText string, onMatch object.Object) error {
	if err := checkAllowed("search", v.action); err != nil {
		return err
	}
	language, ok := langs.Lookup(lang)
	if !ok {
		return &UnknownLanguageError{Name: lang}
	}
	grammar, _ := langs.Grammar(language)
	q, err := v.queries.GetOrCompile(grammar, lang, queryText, v.suggest)
	if err != nil {
		var emptyErr *querycache.EmptyQueryError
		if errors.As(err, &emptyErr) {
			return &EmptyQueryError{Path: v.path}
		}
		return &QueryCompileError{Language: lang, Cause: err}
	}

	callable := onMatch
	v.queue.Add(FindIntent{
		Language: lang,
		Query:    q,
		Owner:    v,
		Path:     v.path,
		OnMatch: func(evt MatchEvent) error {
			_, err := object.Call(nil, callable, []object.Object{wrapEvent(evt)})
			return err
		},
	})
	return nil
}

// Warn renders and queues an irritation. opts, if present, is a map
// accepting "at", "show_also", "info", "group".
func (v *VexObject) Warn(id, message string, opts *object.Map) error {
	if err := checkAllowed("warn", v.action); err != nil {
		return err
	}
	if !validId(id) {
		return &InvalidIdError{RawId: id}
	}

	data := WarnData{Id: id, Message: message}
	if opts != nil {
		m := opts.Value()
		if at, ok := m["at"]; ok {
			ann, err := annotationFrom(at)
			if err != nil {
				return err
			}
			data.At = &ann
		}
		if showAlso, ok := m["show_also"]; ok {
			anns, err := annotationListFrom(showAlso)
			if err != nil {
				return err
			}
			data.ShowAlso = anns
		}
		if info, ok := m["info"]; ok {
			data.Info = stringValue(info)
		}
		if group, ok := m["group"]; ok {
			data.Group = stringValue(group)
			if data.Group != "" && !validId(data.Group) {
				return &InvalidIdError{RawId: data.Group}
			}
		}
	}

	if len(data.ShowAlso) > 0 && data.At == nil {
		return &InvalidWarnCallError{Reason: "cannot display show_also without an at argument"}
	}

	v.queue.Add(WarnIntent{Data: data, Path: v.path})
	return nil
}

// Scan queues test source content to be scanned as a virtual file named
// name.
func (v *VexObject) Scan(name, lang, content string) error {
	if err := checkAllowed("scan", v.action); err != nil {
		return err
	}
	v.queue.Add(ScanFileIntent{Name: name, Language: lang, Content: content, Path: v.path})
	return nil
}

func stringValue(o object.Object) string {
	if s, ok := o.(*object.String); ok {
		return s.Value()
	}
	return ""
}

// annotationFrom converts a risor value for the `at` option (a Node proxy,
// or a two-element list of [node, label]) into an Annotation.
func annotationFrom(o object.Object) (Annotation, error) {
	if list, ok := o.(*object.List); ok {
		items := list.Value()
		if len(items) != 2 {
			return Annotation{}, &InvalidWarnCallError{Reason: "at: expected (node, label) tuple"}
		}
		loc, err := locationFrom(items[0])
		if err != nil {
			return Annotation{}, err
		}
		return Annotation{Location: loc, Label: stringValue(items[1])}, nil
	}
	loc, err := locationFrom(o)
	if err != nil {
		return Annotation{}, err
	}
	return Annotation{Location: loc}, nil
}

func annotationListFrom(o object.Object) ([]Annotation, error) {
	list, ok := o.(*object.List)
	if !ok {
		return nil, &InvalidWarnCallError{Reason: "show_also: expected a list"}
	}
	anns := make([]Annotation, 0, len(list.Value()))
	for _, item := range list.Value() {
		ann, err := annotationFrom(item)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

func locationFrom(o object.Object) (Location, error) {
	if proxy, ok := o.(*object.Proxy); ok {
		if node, ok := proxy.Interface().(Node); ok {
			return LocationFromNode(node), nil
		}
	}
	if s, ok := o.(*object.String); ok {
		return Location{Path: s.Value()}, nil
	}
	return Location{}, &InvalidWarnCallError{Reason: "at: expected a node or a path"}
}

// wrapEvent proxies a Go event value into a risor object.
func wrapEvent(evt any) object.Object {
	p, err := object.NewProxy(evt)
	if err != nil {
		return object.Errorf("wrap event: %v", err)
	}
	return p
}
