package render

import (
	"mend/internal/ast"
)

// Hook is consulted by a structural printer before it renders each node.
// A hit returns ready-made text to emit verbatim instead of synthesizing
// the node; the printer must not descend into the node's children after a
// hit. A miss tells the printer to synthesize normally.
//
// Hooks are side-effect-free and idempotent: calling one repeatedly for the
// same node yields the same answer.
type Hook func(n *ast.Node) (string, bool)

// NewHook builds the hybrid print hook over a provenance table and an
// extractor. A node found in the table whose extraction fails falls through
// to synthesis; that is an expected, recoverable case (synthetic spans,
// macro-expanded locations), never an error.
func NewHook(table *Table, ex *Extractor) Hook {
	return func(n *ast.Node) (string, bool) {
		origin, ok := table.Lookup(n)
		if !ok {
			return "", false
		}
		return ex.Extract(n, origin)
	}
}
