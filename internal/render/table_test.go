package render

import (
	"testing"

	"mend/internal/ast"
	"mend/internal/pattern"
	"mend/internal/source"
)

func ident(name string) *ast.Node { return ast.New(ast.KindIdent, name) }

func TestBuildTableBindingBeatsPatternWalk(t *testing.T) {
	// the same identifier appears both as a binding value and inside the
	// fix pattern; the binding must win
	bound := ident("x").WithSpan(source.Span{Start: 7, End: 8})
	patternRoot := ast.New(ast.KindArgs, "", ident("x").WithSpan(source.Span{Start: 2, End: 3}))

	table := BuildTable(pattern.Bindings{"$X": pattern.Single(bound)}, patternRoot)

	origin, ok := table.Lookup(ident("x"))
	if !ok {
		t.Fatal("expected node to be present")
	}
	if origin != OriginTarget {
		t.Fatalf("origin = %s, want %s", origin, OriginTarget)
	}
}

func TestBuildTableSequenceElements(t *testing.T) {
	one := ast.New(ast.KindLiteral, "1").WithSpan(source.Span{Start: 4, End: 5})
	two := ast.New(ast.KindLiteral, "2").WithSpan(source.Span{Start: 6, End: 7})

	table := BuildTable(pattern.Bindings{"$...ARGS": pattern.Sequence(one, two)}, nil)

	for _, el := range []*ast.Node{one, two} {
		origin, ok := table.Lookup(el)
		if !ok {
			t.Fatalf("element %q missing from table", el.Text)
		}
		if origin != OriginTarget {
			t.Fatalf("element %q origin = %s, want %s", el.Text, origin, OriginTarget)
		}
	}

	// the aggregate container was never inserted
	container := ast.New(ast.KindArgs, "", one, two)
	if _, ok := table.Lookup(container); ok {
		t.Fatal("aggregate container must not be present")
	}
}

func TestBuildTablePatternWalkCoversAllNodes(t *testing.T) {
	patternRoot := ast.New(ast.KindCall, "",
		ident("g"),
		ast.New(ast.KindArgs, "", ast.New(ast.KindMetavar, "$X")),
	)

	table := BuildTable(nil, patternRoot)

	if table.Len() != 4 {
		t.Fatalf("table has %d entries, want 4", table.Len())
	}
	for _, n := range []*ast.Node{
		patternRoot,
		ident("g"),
		ast.New(ast.KindMetavar, "$X"),
	} {
		origin, ok := table.Lookup(n)
		if !ok {
			t.Fatalf("pattern node %s missing", n.Kind)
		}
		if origin != OriginFixPattern {
			t.Fatalf("origin = %s, want %s", origin, OriginFixPattern)
		}
	}
}

func TestTableLookupStructural(t *testing.T) {
	bound := ident("conn").WithSpan(source.Span{Start: 3, End: 7})
	table := BuildTable(pattern.Bindings{"$C": pattern.Single(bound)}, nil)

	// a different node object with a different span but the same shape
	probe := ident("conn").WithSpan(source.Span{Start: 90, End: 94})
	if _, ok := table.Lookup(probe); !ok {
		t.Fatal("lookup must match structurally, ignoring spans")
	}
	if _, ok := table.Lookup(ident("other")); ok {
		t.Fatal("structurally different node must miss")
	}
}

func TestTableLookupNil(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup(ident("x")); ok {
		t.Fatal("nil table must miss")
	}
	table = BuildTable(nil, nil)
	if _, ok := table.Lookup(nil); ok {
		t.Fatal("nil node must miss")
	}
}
