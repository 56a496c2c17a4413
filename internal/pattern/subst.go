package pattern

import (
	"mend/internal/ast"
)

// Substitute builds the fixed tree: every metavariable occurrence in the
// pattern tree is replaced by its bound value. Bound nodes are inserted
// as-is, keeping their original spans, so verbatim extraction can later
// recover their exact source text. Pattern nodes are shallow-copied with
// their pattern spans intact for the same reason.
//
// A sequence binding is spliced into its parent's child list in place of
// the metavariable node. Metavariables without a binding are left as-is.
func Substitute(root *ast.Node, binds Bindings) *ast.Node {
	if root == nil {
		return nil
	}
	if root.Kind == ast.KindMetavar {
		if b, ok := binds[root.Text]; ok && !b.IsSeq() {
			return b.Node
		}
		return root
	}

	out := &ast.Node{
		Kind: root.Kind,
		Text: root.Text,
		Span: root.Span,
	}
	if len(root.Children) > 0 {
		out.Children = make([]*ast.Node, 0, len(root.Children))
		for _, c := range root.Children {
			if c != nil && c.Kind == ast.KindMetavar {
				if b, ok := binds[c.Text]; ok && b.IsSeq() {
					out.Children = append(out.Children, b.Seq...)
					continue
				}
			}
			out.Children = append(out.Children, Substitute(c, binds))
		}
	}
	return out
}
