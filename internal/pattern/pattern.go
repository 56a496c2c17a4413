package pattern

import (
	"mend/internal/ast"
)

// FixPattern is a rule's parsed replacement snippet: the tree, the raw text
// the tree's spans point into, and the metavariables the snippet references.
type FixPattern struct {
	Root     *ast.Node
	Text     []byte
	Metavars []string
}

// NewFixPattern builds a FixPattern, collecting metavariable references
// from the tree.
func NewFixPattern(root *ast.Node, text []byte) *FixPattern {
	return &FixPattern{
		Root:     root,
		Text:     text,
		Metavars: TreeMetavars(root),
	}
}

// TreeMetavars collects metavariable names referenced in a pattern tree,
// unique, in preorder of first appearance.
func TreeMetavars(root *ast.Node) []string {
	seen := make(map[string]bool)
	var out []string
	ast.Walk(root, func(n *ast.Node) bool {
		if n.Kind == ast.KindMetavar && !seen[n.Text] {
			seen[n.Text] = true
			out = append(out, n.Text)
		}
		return true
	})
	return out
}
