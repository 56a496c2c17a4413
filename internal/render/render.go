// Package render produces replacement source text from a fixed syntax tree.
//
// The fixed tree is the result of substituting matched code fragments into a
// rule's replacement pattern. Rendering is hybrid: wherever a subtree of the
// fixed tree exists verbatim in the target file or in the fix pattern, the
// original text is sliced out and reused, exact formatting and comments
// included; only genuinely new or restructured subtrees are synthesized by
// the language's structural printer.
//
// Each call is a pure, self-contained computation: the provenance table is
// built fresh, consulted read-only, and discarded. The only I/O is the
// at-most-once lazy read of the target file. Calls are independent and may
// run concurrently as long as each owns its table; a shared source.Lazy
// cell is itself safe.
package render

import (
	"errors"
	"fmt"

	"mend/internal/ast"
	"mend/internal/pattern"
	"mend/internal/source"
)

// ErrUnsupportedLanguage reports that no structural printer is registered
// for the requested language. Rendering aborts for that fix attempt only.
var ErrUnsupportedLanguage = errors.New("no printer registered for language")

// Render renders the fixed tree for the given language.
//
// It builds the provenance table from bindings and the fix pattern,
// constructs the hybrid print hook over it, resolves the language's printer,
// and prints the fixed tree's root. Expected failures are the unsupported
// language and a printer synthesis gap, both returned as errors; per-node
// extraction failures are absorbed by the hook and never surface here.
func Render(reg *Registry, lang Language, binds pattern.Bindings, target *source.Lazy, fixPattern *pattern.FixPattern, fixed *ast.Node) (string, error) {
	if reg == nil {
		return "", fmt.Errorf("render: nil registry")
	}
	if fixed == nil {
		return "", fmt.Errorf("render: nil fixed tree")
	}

	printer, err := reg.Lookup(lang)
	if err != nil {
		return "", err
	}

	var patternRoot *ast.Node
	var patternText []byte
	if fixPattern != nil {
		patternRoot = fixPattern.Root
		patternText = fixPattern.Text
	}

	table := BuildTable(binds, patternRoot)
	hook := NewHook(table, NewExtractor(target, patternText))

	out, err := printer.Print(fixed, hook)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", lang, err)
	}
	return out, nil
}
