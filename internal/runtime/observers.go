package runtime

// ObserverRegistry maps an event kind to its registered observers, in
// stable discovery order (the order scriptlets were preinited, then the
// order observe() was called within each).
type ObserverRegistry struct {
	byKind map[EventKind][]registeredObserver
}

type registeredObserver struct {
	path  string
	owner *VexObject
	call  func(any) error
}

// NewObserverRegistry returns an empty registry.
func NewObserverRegistry() *ObserverRegistry {
	return &ObserverRegistry{byKind: make(map[EventKind][]registeredObserver)}
}

// Register appends intent's observer to its event kind's list.
func (r *ObserverRegistry) Register(intent ObserveIntent) {
	r.byKind[intent.Kind] = append(r.byKind[intent.Kind], registeredObserver{
		path:  intent.Path,
		owner: intent.Owner,
		call:  intent.Observer,
	})
}

// HasAny reports whether any scriptlet observes kind.
func (r *ObserverRegistry) HasAny(kind EventKind) bool {
	return len(r.byKind[kind]) > 0
}

// Dispatch invokes every observer registered for kind, in order, retargeting
// each observer's vex object to action and a fresh queue before the call and
// appending whatever that call records to collected. Stops and returns the
// first error encountered, along with whatever was collected before it.
func (r *ObserverRegistry) Dispatch(kind EventKind, evt any, action Action, collected *IntentQueue) error {
	for _, obs := range r.byKind[kind] {
		queue := &IntentQueue{}
		err := obs.owner.WithRetarget(action, queue, func() error {
			return obs.call(evt)
		})
		for _, intent := range queue.Drain() {
			collected.Add(intent)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
