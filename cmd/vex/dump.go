package main

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	vex "github.com/vexlint/vex"
	"github.com/vexlint/vex/internal/langs"
)

var flagDumpAs string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print a file's syntax tree",
	Long:  "Parses file with its associated language's grammar and prints the resulting syntax tree, for scriptlet authors writing a new query.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolP("compact", "", false, "print the tree as a single line, without positions")
	dumpCmd.Flags().StringVar(&flagDumpAs, "as", "", "override language detection")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	compact, _ := cmd.Flags().GetBool("compact")

	content, err := os.ReadFile(path)
	if err != nil {
		return &vex.IOError{Path: vex.NewPrettyPath(path), Action: vex.IORead, Cause: err}
	}

	languageName := flagDumpAs
	if languageName == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting cwd: %w", err)
		}
		associations := vex.BaseAssociations()
		if _, manifest, err := vex.Acquire(cwd); err == nil {
			associations = manifest.Associations
		}
		language, err := associations.GetLanguage(vex.NewPrettyPath(path))
		if err != nil {
			return err
		}
		languageName = language.Name()
	}
	if languageName == "" {
		return fmt.Errorf("cannot discern language of %s", path)
	}

	language, ok := langs.Lookup(languageName)
	if !ok {
		return &vex.UnknownLanguageError{Name: languageName}
	}
	grammar, ok := langs.Grammar(language)
	if !ok {
		return &vex.UnknownLanguageError{Name: languageName}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(nil, nil, content)
	if err != nil {
		return fmt.Errorf("%s: cannot parse %s: %w", path, languageName, err)
	}
	defer tree.Close()

	var out strings.Builder
	if compact {
		writeNodeCompact(&out, tree.RootNode())
	} else {
		writeNodeExpanded(&out, tree.RootNode(), 0)
	}
	fmt.Println(out.String())
	return nil
}

// writeNodeCompact prints node and its named children as a single
// whitespace-separated s-expression line, with no location info.
func writeNodeCompact(out *strings.Builder, node *sitter.Node) {
	if node == nil {
		return
	}
	out.WriteByte('(')
	out.WriteString(node.Type())
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			continue
		}
		out.WriteByte(' ')
		writeNodeCompact(out, child)
	}
	out.WriteByte(')')
}

// writeNodeExpanded prints node and its named children as an indented
// tree, one line per node, each annotated with its byte range.
func writeNodeExpanded(out *strings.Builder, node *sitter.Node, depth int) {
	if node == nil {
		return
	}
	out.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(out, "%s [%d, %d)\n", node.Type(), node.StartByte(), node.EndByte())

	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			continue
		}
		writeNodeExpanded(out, child, depth+1)
	}
}
