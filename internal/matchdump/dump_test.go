package matchdump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"mend/internal/ast"
)

func sampleDump() *Dump {
	// fix pattern g($X), $X bound to the identifier "conn" at [2,6)
	return &Dump{
		Schema: Schema,
		Target: "app/main.go",
		Matches: []Match{{
			RuleID:   "prefer-g",
			Language: "go",
			Start:    0,
			End:      10,
			Bindings: map[string]Binding{
				"$X": {Node: &Node{Kind: uint8(ast.KindIdent), Text: "conn", Start: 2, End: 6}},
			},
			Pattern: &Node{Kind: uint8(ast.KindCall), Start: 0, End: 5, Children: []*Node{
				{Kind: uint8(ast.KindIdent), Text: "g", Start: 0, End: 1},
				{Kind: uint8(ast.KindArgs), Start: 1, End: 5, Children: []*Node{
					{Kind: uint8(ast.KindMetavar), Text: "$X", Start: 2, End: 4},
				}},
			}},
			PatternText: "g($X)",
		}},
	}
}

func writeDump(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMsgpack(t *testing.T) {
	raw, err := msgpack.Marshal(sampleDump())
	if err != nil {
		t.Fatal(err)
	}
	d, err := Load(writeDump(t, "run.mp", raw))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if d.Target != "app/main.go" || len(d.Matches) != 1 {
		t.Fatalf("dump = %+v", d)
	}

	m := &d.Matches[0]
	binds := m.PatternBindings()
	b, ok := binds["$X"]
	if !ok || b.IsSeq() {
		t.Fatalf("bindings = %+v", binds)
	}
	if b.Node.Kind != ast.KindIdent || b.Node.Text != "conn" {
		t.Fatalf("bound node = %+v", b.Node)
	}
	if b.Node.Span.Start != 2 || b.Node.Span.End != 6 {
		t.Fatalf("bound span = %v", b.Node.Span)
	}

	fp := m.FixPattern()
	if string(fp.Text) != "g($X)" {
		t.Fatalf("pattern text = %q", fp.Text)
	}
	if len(fp.Metavars) != 1 || fp.Metavars[0] != "$X" {
		t.Fatalf("metavars = %v", fp.Metavars)
	}

	fixed := m.FixedTree(binds, fp)
	arg := fixed.Children[1].Children[0]
	if arg.Kind != ast.KindIdent || arg.Text != "conn" {
		t.Fatalf("fixed tree arg = %+v", arg)
	}
}

func TestLoadJSON(t *testing.T) {
	content := `{
		"schema": 1,
		"target": "lib/util.js",
		"matches": [{
			"rule_id": "variadic-foo",
			"language": "javascript",
			"start": 4, "end": 12,
			"bindings": {
				"$...ARGS": {"seq": [
					{"kind": 2, "text": "1", "start": 8, "end": 9},
					{"kind": 2, "text": "2", "start": 10, "end": 11}
				]}
			},
			"pattern": {"kind": 4, "children": [
				{"kind": 1, "text": "foo", "start": 0, "end": 3},
				{"kind": 5, "start": 3, "end": 13, "children": [
					{"kind": 3, "text": "$...ARGS", "start": 4, "end": 12}
				]}
			]},
			"pattern_text": "foo($...ARGS)"
		}]
	}`
	d, err := Load(writeDump(t, "run.json", []byte(content)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := &d.Matches[0]
	binds := m.PatternBindings()
	b := binds["$...ARGS"]
	if !b.IsSeq() || len(b.Seq) != 2 {
		t.Fatalf("binding = %+v", b)
	}

	fixed := m.FixedTree(binds, m.FixPattern())
	args := fixed.Children[1]
	if len(args.Children) != 2 || args.Children[0].Text != "1" || args.Children[1].Text != "2" {
		t.Fatalf("spliced args = %+v", args.Children)
	}
}

func TestLoadRejections(t *testing.T) {
	base := sampleDump()

	tests := []struct {
		name    string
		mutate  func(*Dump)
		wantErr string
	}{
		{"schema mismatch", func(d *Dump) { d.Schema = 99 }, "schema 99 not supported"},
		{"no target", func(d *Dump) { d.Target = "" }, "no target path"},
		{"no rule id", func(d *Dump) { d.Matches[0].RuleID = "" }, "no rule id"},
		{"bad language", func(d *Dump) { d.Matches[0].Language = "cobol" }, "unknown language"},
		{"no pattern", func(d *Dump) { d.Matches[0].Pattern = nil }, "no fix pattern tree"},
		{"empty span", func(d *Dump) { d.Matches[0].End = d.Matches[0].Start }, "empty match span"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := *base
			d.Matches = append([]Match(nil), base.Matches...)
			tt.mutate(&d)

			raw, err := msgpack.Marshal(&d)
			if err != nil {
				t.Fatal(err)
			}
			_, err = Load(writeDump(t, "bad.mp", raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
