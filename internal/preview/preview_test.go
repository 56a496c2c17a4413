package preview

import (
	"strings"
	"testing"

	"mend/internal/diag"
	"mend/internal/source"
)

func TestRenderEditSingleLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.go", []byte("x := f(a, 5)\ny := 2\n"))

	edit := diag.TextEdit{
		Span:    source.Span{File: id, Start: 5, End: 12},
		NewText: "g(a)",
	}

	var out strings.Builder
	if err := RenderEdit(&out, fs, edit, Options{}); err != nil {
		t.Fatalf("RenderEdit: %v", err)
	}

	got := out.String()
	want := "main.go:1:6\n" +
		"- 1 | x := f(a, 5)\n" +
		"    |      ^~~~~~~\n" +
		"+ 1 | x := g(a)\n"
	if got != want {
		t.Fatalf("preview:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEditMultiLine(t *testing.T) {
	fs := source.NewFileSet()
	content := "if ok {\n\tf(a)\n}\ndone()\n"
	id := fs.AddVirtual("main.go", []byte(content))

	// replace "f(a)\n}" with "g(a)\n}"
	start := uint32(strings.Index(content, "f(a)"))
	end := uint32(strings.Index(content, "}")) + 1
	edit := diag.TextEdit{
		Span:    source.Span{File: id, Start: start, End: end},
		NewText: "g(a)\n}",
	}

	pv, err := buildEditPreview(fs, edit)
	if err != nil {
		t.Fatalf("buildEditPreview: %v", err)
	}

	if pv.startLine != 2 {
		t.Errorf("startLine = %d, want 2", pv.startLine)
	}
	if len(pv.before) != 2 || pv.before[0] != "\tf(a)" || pv.before[1] != "}" {
		t.Errorf("before = %q", pv.before)
	}
	if len(pv.after) != 2 || pv.after[0] != "\tg(a)" || pv.after[1] != "}" {
		t.Errorf("after = %q", pv.after)
	}
}

func TestRenderEditInsertion(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.go", []byte("f(a)\n"))

	// empty span, pure insertion before "a"
	edit := diag.TextEdit{
		Span:    source.Span{File: id, Start: 2, End: 2},
		NewText: "ctx, ",
	}

	pv, err := buildEditPreview(fs, edit)
	if err != nil {
		t.Fatalf("buildEditPreview: %v", err)
	}
	if len(pv.after) != 1 || pv.after[0] != "f(ctx, a)" {
		t.Errorf("after = %q", pv.after)
	}
	// zero-width edits still get a single caret
	if pv.caretLine != "  ^" {
		t.Errorf("caret = %q", pv.caretLine)
	}
}

func TestRenderEditErrors(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("main.go", []byte("f(a)\n"))

	var out strings.Builder
	err := RenderEdit(&out, nil, diag.TextEdit{}, Options{})
	if err == nil {
		t.Fatal("expected error for nil FileSet")
	}

	err = RenderEdit(&out, fs, diag.TextEdit{
		Span: source.Span{File: 7, Start: 0, End: 1},
	}, Options{})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v", err)
	}
}
