package runtime

import sitter "github.com/smacker/go-tree-sitter"

// Node wraps a tree-sitter node together with the source bytes it was
// parsed from, so a scriptlet callback can read its text without a
// separate source lookup. Live only for the duration of the callback that
// received it; must never be retained, grounded on the rule that
// syntax-tree nodes are reference-into-tree and non-freezable.
type Node struct {
	raw    *sitter.Node
	source []byte
	path   string
}

// NewNode wraps raw, read from the file at path with the given source
// bytes.
func NewNode(raw *sitter.Node, source []byte, path string) Node {
	return Node{raw: raw, source: source, path: path}
}

func (n Node) Text() string     { return n.raw.Content(n.source) }
func (n Node) Kind() string     { return n.raw.Type() }
func (n Node) StartByte() int   { return int(n.raw.StartByte()) }
func (n Node) EndByte() int     { return int(n.raw.EndByte()) }
func (n Node) Path() string     { return n.path }
func (n Node) ChildCount() int  { return int(n.raw.ChildCount()) }

// StartLine returns the node's 0-indexed starting line, for display.
func (n Node) StartLine() int { return int(n.raw.StartPoint().Row) }

func (n Node) Child(i int) (Node, bool) {
	c := n.raw.Child(i)
	if c == nil {
		return Node{}, false
	}
	return NewNode(c, n.source, n.path), true
}

func (n Node) ChildByFieldName(name string) (Node, bool) {
	c := n.raw.ChildByFieldName(name)
	if c == nil {
		return Node{}, false
	}
	return NewNode(c, n.source, n.path), true
}

// Unfreeze always fails: nodes borrow into their parsed file's source and
// must not outlive the callback that received them.
func (n Node) Unfreeze() error { return &UnfreezableError{Type: "Node"} }
