// Package scan parses candidate source files, runs declared queries across
// them with a tree-sitter cursor, and fires the vexing-stage lifecycle
// events, aggregating the warnings callbacks produce.
package scan

import (
	"os"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vexlint/vex/internal/ignoremarkers"
	"github.com/vexlint/vex/internal/runtime"
)

// Candidate is a file the caller has already resolved to a language via its
// Associations, ready to be parsed and scanned.
type Candidate struct {
	AbsPath    string
	PrettyPath string
	Language   string
}

// SourceFile is a parsed candidate: its content, syntax tree, and derived
// ignore markers. The tree borrows into content, so the two must be kept
// together and this value never copied after Parse.
type SourceFile struct {
	Path     string
	Language string
	Content  []byte
	Tree     *sitter.Tree
	Markers  *ignoremarkers.IgnoreMarkers
}

// Close releases the parsed tree.
func (f *SourceFile) Close() {
	if f.Tree != nil {
		f.Tree.Close()
	}
}

var ignoreCommentBody = regexp.MustCompile(`^vex:ignore\s*(.*)$`)

// Parse reads c's content and parses it as language grammar, then derives
// ignore markers by scanning every comment node for a `vex:ignore` body,
// attributing the suppression to the comment's next sibling statement.
func Parse(c Candidate, grammar *sitter.Language, parseIdFilter func(body string) (ignoremarkers.LintIdFilter, error)) (*SourceFile, error) {
	content, err := os.ReadFile(c.AbsPath)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(nil, nil, content)
	if err != nil {
		return nil, err
	}

	builder := ignoremarkers.NewBuilder()
	collectIgnoreMarkers(tree.RootNode(), content, parseIdFilter, builder)

	return &SourceFile{
		Path:     c.PrettyPath,
		Language: c.Language,
		Content:  content,
		Tree:     tree,
		Markers:  builder.Build(),
	}, nil
}

func collectIgnoreMarkers(node *sitter.Node, content []byte, parseIdFilter func(string) (ignoremarkers.LintIdFilter, error), builder *ignoremarkers.Builder) {
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		child := node.Child(i)
		if strings.Contains(child.Type(), "comment") {
			body := commentBody(child.Content(content))
			if m := ignoreCommentBody.FindStringSubmatch(body); m != nil {
				if filter, err := parseIdFilter(m[1]); err == nil {
					if sibling := node.Child(i + 1); sibling != nil {
						builder.Add(int(sibling.StartByte()), int(sibling.EndByte()), filter)
					}
				}
			}
		}
		collectIgnoreMarkers(child, content, parseIdFilter, builder)
	}
}

// commentBody strips a line or block comment's delimiters and surrounding
// whitespace, leaving its trimmed text.
func commentBody(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "//")
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")
	return strings.TrimSpace(s)
}

// RunQuery runs query against file's tree, firing onMatch for every match
// in cursor order.
func RunQuery(file *SourceFile, query *sitter.Query, onMatch func(map[string]runtime.Node) error) error {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, file.Tree.RootNode())

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, file.Content)

		captures := make(map[string]runtime.Node, len(match.Captures))
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			captures[name] = runtime.NewNode(capture.Node, file.Content, file.Path)
		}
		if err := onMatch(captures); err != nil {
			return err
		}
	}
	return nil
}
