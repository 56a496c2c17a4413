package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"mend/internal/ast"
)

// Language identifies a target language for rendering.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangC          Language = "c"
)

var knownLanguages = map[Language]bool{
	LangGo:         true,
	LangJavaScript: true,
	LangTypeScript: true,
	LangJava:       true,
	LangC:          true,
}

// ParseLanguage maps a rule-file language identifier onto a known Language.
// Knowing a language does not imply a printer is registered for it; dispatch
// still goes through Registry.Lookup.
func ParseLanguage(s string) (Language, bool) {
	lang := Language(strings.ToLower(s))
	return lang, knownLanguages[lang]
}

// Printer renders a fixed tree for one language. Implementations must
// consult the hook before rendering each node: on a hit they emit the
// substitute verbatim and do not descend into the node's children; on a
// miss they synthesize the node structurally, applying the same rule to
// every child. A printer that cannot synthesize a node returns an error.
type Printer interface {
	Print(root *ast.Node, hook Hook) (string, error)
}

// Registry maps languages to their structural printers. A language with no
// registered printer fails dispatch explicitly; there is no generic
// fallback, because fidelity for unsupported languages cannot be promised.
type Registry struct {
	mu       sync.RWMutex
	printers map[Language]Printer
}

// NewRegistry creates an empty printer registry.
func NewRegistry() *Registry {
	return &Registry{printers: make(map[Language]Printer)}
}

// Register installs (or replaces) the printer for a language.
func (r *Registry) Register(lang Language, p Printer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printers[lang] = p
}

// Lookup resolves the printer for a language.
func (r *Registry) Lookup(lang Language) (Printer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.printers[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return p, nil
}

// Languages lists the registered languages, sorted.
func (r *Registry) Languages() []Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Language, 0, len(r.printers))
	for lang := range r.printers {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
