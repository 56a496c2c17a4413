package pattern

import (
	"mend/internal/ast"
)

// Binding associates a metavariable with what the matcher captured: either
// one node or an ordered sequence of nodes (variadic captures). Exactly one
// of Node and Seq is populated. Bindings are immutable inputs produced
// upstream.
type Binding struct {
	Node *ast.Node
	Seq  []*ast.Node
}

// IsSeq reports whether the binding captured an ordered sequence.
func (b Binding) IsSeq() bool {
	return b.Seq != nil
}

// Single wraps one captured node.
func Single(n *ast.Node) Binding {
	return Binding{Node: n}
}

// Sequence wraps an ordered capture of several nodes.
func Sequence(nodes ...*ast.Node) Binding {
	if nodes == nil {
		nodes = []*ast.Node{}
	}
	return Binding{Seq: nodes}
}

// Bindings maps metavariable names to their captures.
type Bindings map[string]Binding
