package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("fixture.go", []byte("f(a, 5)\n"))

	file := fs.Get(id)
	if file == nil {
		t.Fatal("expected file to be registered")
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if string(file.Content) != "f(a, 5)\n" {
		t.Errorf("unexpected content %q", string(file.Content))
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.go", []byte("version 1"), 0)
	id2 := fs.Add("main.go", []byte("version 2"), 0)
	if id2 == id1 {
		t.Fatal("expected a fresh FileID for the second Add")
	}

	latest, ok := fs.GetLatest("main.go")
	if !ok {
		t.Fatal("expected file to be indexed")
	}
	if latest != id2 {
		t.Fatalf("expected latest ID %d, got %d", id2, latest)
	}
}

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.go", []byte("ab\ncd\nef"))

	tests := []struct {
		name string
		span Span
		s, e LineCol
	}{
		{"first line", Span{File: id, Start: 0, End: 2}, LineCol{1, 1}, LineCol{1, 3}},
		{"second line", Span{File: id, Start: 3, End: 5}, LineCol{2, 1}, LineCol{2, 3}},
		{"third line", Span{File: id, Start: 6, End: 8}, LineCol{3, 1}, LineCol{3, 3}},
		{"across lines", Span{File: id, Start: 1, End: 4}, LineCol{1, 2}, LineCol{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.s || end != tt.e {
				t.Fatalf("Resolve = %+v..%+v, want %+v..%+v", start, end, tt.s, tt.e)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.go", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := file.GetLine(2); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("line 3 = %q", got)
	}
	if got := file.GetLine(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.go")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("expected normalized content, got %q", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}
