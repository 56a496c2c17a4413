package render

import (
	"mend/internal/ast"
	"mend/internal/pattern"
)

type tableEntry struct {
	node   *ast.Node
	origin Origin
}

// Table maps syntax nodes, compared structurally, to their origin. Built
// once per fix-rendering attempt, consulted read-only while printing, then
// discarded. Lookups bucket by structural hash and confirm candidates with
// ast.Equal, so hash collisions never produce a wrong origin.
type Table struct {
	buckets map[uint64][]tableEntry
	size    int
}

// BuildTable populates a provenance table from the metavariable bindings and
// the fix-pattern tree. Bindings are inserted first and always win: a node
// present in both resolves to OriginTarget.
//
// Sequence bindings are recorded element by element. When a captured
// sequence is spliced into a position expecting several elements, the
// aggregate container does not reappear unchanged in the fixed tree, only
// its elements do, so provenance lives at element granularity. This covers
// one level of nesting; sequences of sequences are a known limitation and
// are not handled.
func BuildTable(binds pattern.Bindings, fixPatternRoot *ast.Node) *Table {
	t := &Table{buckets: make(map[uint64][]tableEntry)}

	for _, b := range binds {
		if b.IsSeq() {
			for _, el := range b.Seq {
				t.insert(el, OriginTarget)
			}
			continue
		}
		t.insert(b.Node, OriginTarget)
	}

	ast.Walk(fixPatternRoot, func(n *ast.Node) bool {
		t.insert(n, OriginFixPattern)
		return true
	})

	return t
}

// insert records an origin for the node unless a structurally equal node is
// already present.
func (t *Table) insert(n *ast.Node, origin Origin) {
	if n == nil {
		return
	}
	key := ast.Hash(n)
	for _, e := range t.buckets[key] {
		if ast.Equal(e.node, n) {
			return
		}
	}
	t.buckets[key] = append(t.buckets[key], tableEntry{node: n, origin: origin})
	t.size++
}

// Lookup finds the origin recorded for a structurally equal node.
func (t *Table) Lookup(n *ast.Node) (Origin, bool) {
	if t == nil || n == nil {
		return 0, false
	}
	for _, e := range t.buckets[ast.Hash(n)] {
		if ast.Equal(e.node, n) {
			return e.origin, true
		}
	}
	return 0, false
}

// Len returns the number of recorded nodes.
func (t *Table) Len() int {
	return t.size
}
