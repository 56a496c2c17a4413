package render

import (
	"errors"
	"sync/atomic"
	"testing"

	"mend/internal/ast"
	"mend/internal/source"
)

func TestExtractTargetVerbatim(t *testing.T) {
	target := source.LazyBytes([]byte("f(a.b() /* keep */, 5)"))
	ex := NewExtractor(target, []byte("g($X)"))

	n := ast.New(ast.KindCall, "").WithSpan(source.Span{Start: 2, End: 18})
	text, ok := ex.Extract(n, OriginTarget)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if text != "a.b() /* keep */" {
		t.Fatalf("extracted %q, want the exact slice with the comment", text)
	}
}

func TestExtractFixPattern(t *testing.T) {
	ex := NewExtractor(nil, []byte("g($X)"))
	n := ast.New(ast.KindIdent, "g").WithSpan(source.Span{Start: 0, End: 1})

	text, ok := ex.Extract(n, OriginFixPattern)
	if !ok || text != "g" {
		t.Fatalf("Extract = %q, %v", text, ok)
	}
}

func TestExtractUnavailable(t *testing.T) {
	target := source.LazyBytes([]byte("abc"))
	ex := NewExtractor(target, []byte("xy"))

	tests := []struct {
		name   string
		node   *ast.Node
		origin Origin
	}{
		{"no position", ast.New(ast.KindIdent, "a"), OriginTarget},
		{"span past end", ast.New(ast.KindIdent, "a").WithSpan(source.Span{Start: 1, End: 9}), OriginTarget},
		{"pattern span past end", ast.New(ast.KindIdent, "a").WithSpan(source.Span{Start: 0, End: 3}), OriginFixPattern},
		{"nil node", nil, OriginTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, ok := ex.Extract(tt.node, tt.origin); ok {
				t.Fatalf("expected unavailable, got %q", text)
			}
		})
	}
}

func TestExtractTargetReadFailureIsSoft(t *testing.T) {
	failing := source.LazyFunc(func() ([]byte, error) {
		return nil, errors.New("disk gone")
	})
	ex := NewExtractor(failing, nil)
	n := ast.New(ast.KindIdent, "a").WithSpan(source.Span{Start: 0, End: 1})

	if _, ok := ex.Extract(n, OriginTarget); ok {
		t.Fatal("read failure must report unavailable, not panic or succeed")
	}
}

func TestExtractReadsTargetLazilyAndOnce(t *testing.T) {
	var reads atomic.Int32
	target := source.LazyFunc(func() ([]byte, error) {
		reads.Add(1)
		return []byte("hello"), nil
	})
	ex := NewExtractor(target, []byte("pat"))

	// pattern-origin extraction must not touch the target file
	patNode := ast.New(ast.KindIdent, "p").WithSpan(source.Span{Start: 0, End: 3})
	if _, ok := ex.Extract(patNode, OriginFixPattern); !ok {
		t.Fatal("pattern extraction failed")
	}
	if reads.Load() != 0 {
		t.Fatal("target file must not be read for pattern-origin extraction")
	}

	n := ast.New(ast.KindIdent, "h").WithSpan(source.Span{Start: 0, End: 5})
	for range 3 {
		if _, ok := ex.Extract(n, OriginTarget); !ok {
			t.Fatal("target extraction failed")
		}
	}
	if got := reads.Load(); got != 1 {
		t.Fatalf("target read %d times, want exactly 1", got)
	}
}
