package render

import (
	"mend/internal/ast"
	"mend/internal/source"
)

// Extractor slices exact original text for a node out of the buffer its
// origin names. Extraction failure is a soft condition: a node without a
// usable span, or with a span outside its buffer, simply reports !ok and
// the caller falls back to synthesis.
type Extractor struct {
	target      *source.Lazy
	patternText []byte
}

// NewExtractor pairs the lazily-loaded target contents with the fix
// pattern's own text. The target file is read only if a target-origin
// extraction actually happens, and at most once.
func NewExtractor(target *source.Lazy, patternText []byte) *Extractor {
	return &Extractor{target: target, patternText: patternText}
}

// Extract returns the byte-for-byte original text for the node, selecting
// the buffer by origin. No trimming or re-indentation is applied; this is
// what preserves the original formatting and comments.
func (e *Extractor) Extract(n *ast.Node, origin Origin) (string, bool) {
	if e == nil || n == nil || !n.HasPos() {
		return "", false
	}

	var buf []byte
	switch origin {
	case OriginTarget:
		if e.target == nil {
			return "", false
		}
		content, err := e.target.Content()
		if err != nil {
			return "", false
		}
		buf = content
	case OriginFixPattern:
		buf = e.patternText
	default:
		return "", false
	}

	start, end := int(n.Span.Start), int(n.Span.End)
	if end > len(buf) {
		return "", false
	}
	return string(buf[start:end]), true
}
