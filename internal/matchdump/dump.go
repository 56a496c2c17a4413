// Package matchdump decodes match dumps handed over by the external
// matching engine. A dump carries, per match, the metavariable bindings,
// the rule's parsed fix pattern with its text, and optionally the already
// substituted fixed tree — everything fix rendering needs, so this tool
// never parses source itself.
//
// Dumps are msgpack by default (.mp) with JSON (.json) accepted for
// debugging by hand.
package matchdump

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"mend/internal/ast"
	"mend/internal/pattern"
	"mend/internal/render"
	"mend/internal/source"
)

// Schema is the current dump schema version. Bump when the payload format
// changes; decoding rejects mismatched dumps instead of guessing.
const Schema uint16 = 1

// Dump is one matcher run over one target file.
type Dump struct {
	Schema  uint16  `json:"schema" msgpack:"schema"`
	Target  string  `json:"target" msgpack:"target"`
	Matches []Match `json:"matches" msgpack:"matches"`
}

// Match is a single rule hit with everything needed to render its fix.
type Match struct {
	RuleID   string `json:"rule_id" msgpack:"rule_id"`
	Language string `json:"language" msgpack:"language"`
	// Start/End delimit the matched region in the target file.
	Start uint32 `json:"start" msgpack:"start"`
	End   uint32 `json:"end" msgpack:"end"`

	Bindings    map[string]Binding `json:"bindings" msgpack:"bindings"`
	Pattern     *Node              `json:"pattern" msgpack:"pattern"`
	PatternText string             `json:"pattern_text" msgpack:"pattern_text"`
	// Fixed is the substituted tree; when absent it is recomputed from
	// Pattern and Bindings.
	Fixed *Node `json:"fixed,omitempty" msgpack:"fixed,omitempty"`
}

// Binding mirrors pattern.Binding in serialized form: Seq non-nil means a
// sequence capture.
type Binding struct {
	Node *Node   `json:"node,omitempty" msgpack:"node,omitempty"`
	Seq  []*Node `json:"seq,omitempty" msgpack:"seq,omitempty"`
}

// Node is the serialized tree node. Kind uses ast.Kind values; Start/End
// are byte offsets into the node's originating buffer.
type Node struct {
	Kind     uint8   `json:"kind" msgpack:"kind"`
	Text     string  `json:"text,omitempty" msgpack:"text,omitempty"`
	Start    uint32  `json:"start,omitempty" msgpack:"start,omitempty"`
	End      uint32  `json:"end,omitempty" msgpack:"end,omitempty"`
	Children []*Node `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Load reads and decodes a dump file, selecting the codec by extension.
func Load(path string) (*Dump, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Dump
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(content, &d)
	} else {
		err = msgpack.Unmarshal(content, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("matchdump: decode %s: %w", path, err)
	}

	if d.Schema != Schema {
		return nil, fmt.Errorf("matchdump: schema %d not supported (want %d)", d.Schema, Schema)
	}
	if d.Target == "" {
		return nil, fmt.Errorf("matchdump: dump has no target path")
	}
	for i := range d.Matches {
		if err := d.Matches[i].validate(); err != nil {
			return nil, fmt.Errorf("matchdump: match %d: %w", i, err)
		}
	}
	return &d, nil
}

func (m *Match) validate() error {
	if m.RuleID == "" {
		return fmt.Errorf("no rule id")
	}
	if _, ok := render.ParseLanguage(m.Language); !ok {
		return fmt.Errorf("unknown language %q", m.Language)
	}
	if m.Pattern == nil {
		return fmt.Errorf("no fix pattern tree")
	}
	if m.End <= m.Start {
		return fmt.Errorf("empty match span %d..%d", m.Start, m.End)
	}
	return nil
}

// AST converts a serialized node into the in-memory tree form.
func (n *Node) AST() *ast.Node {
	if n == nil {
		return nil
	}
	out := &ast.Node{
		Kind: ast.Kind(n.Kind),
		Text: n.Text,
		Span: source.Span{Start: n.Start, End: n.End},
	}
	if len(n.Children) > 0 {
		out.Children = make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.AST()
		}
	}
	return out
}

// PatternBindings converts the serialized bindings.
func (m *Match) PatternBindings() pattern.Bindings {
	binds := make(pattern.Bindings, len(m.Bindings))
	for name, b := range m.Bindings {
		if b.Seq != nil {
			seq := make([]*ast.Node, len(b.Seq))
			for i, n := range b.Seq {
				seq[i] = n.AST()
			}
			binds[name] = pattern.Sequence(seq...)
			continue
		}
		binds[name] = pattern.Single(b.Node.AST())
	}
	return binds
}

// FixPattern converts the serialized fix pattern.
func (m *Match) FixPattern() *pattern.FixPattern {
	return pattern.NewFixPattern(m.Pattern.AST(), []byte(m.PatternText))
}

// FixedTree returns the substituted tree, computing it from the pattern
// and bindings when the dump omitted it.
func (m *Match) FixedTree(binds pattern.Bindings, fp *pattern.FixPattern) *ast.Node {
	if m.Fixed != nil {
		return m.Fixed.AST()
	}
	return pattern.Substitute(fp.Root, binds)
}

// Span locates the matched region inside the loaded target file.
func (m *Match) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: m.Start, End: m.End}
}
