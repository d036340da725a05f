package runtime

// Action names the lifecycle moment a host-object call happens in: either
// of the two non-event stages, or a vexing-stage event kind.
type Action struct {
	name string
}

func PreinitingAction() Action        { return Action{"preiniting"} }
func InitingAction() Action           { return Action{"initing"} }
func VexingAction(kind EventKind) Action { return Action{kind.String()} }

func (a Action) String() string { return a.name }

// allowedActions maps each host-object method to the actions it may be
// called during, grounded on the per-method allowed-stage column of the
// scriptlet API surface table.
var allowedActions = map[string]map[string]bool{
	"observe": {"initing": true},
	"search":  {"open_project": true, "open_file": true},
	"warn":    {"open_project": true, "open_file": true, "match": true},
	"scan":    {"pre_test_run": true},
}

// checkAllowed reports an *ActionUnavailableError if method may not be
// called during action.
func checkAllowed(method string, action Action) error {
	if allowedActions[method][action.name] {
		return nil
	}
	return &ActionUnavailableError{What: method, Action: action.name}
}
