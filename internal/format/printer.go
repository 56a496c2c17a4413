// Package format implements the generic structural printer used as the
// synthesis fallback during fix rendering. It covers the node categories
// shared by the C-family surface languages the tool supports; constructs it
// cannot synthesize produce an error, which render surfaces as a failed fix
// attempt for that match.
package format

import (
	"errors"
	"fmt"
	"strings"

	"mend/internal/ast"
	"mend/internal/render"
)

// Printer renders a fixed tree by structural synthesis, consulting the
// hybrid print hook before every node. On a hook hit the substitute text is
// emitted verbatim and the node's children are not visited.
type Printer struct{}

// Print implements render.Printer.
func (Printer) Print(root *ast.Node, hook render.Hook) (string, error) {
	p := printer{hook: hook}
	if err := p.print(root); err != nil {
		return "", err
	}
	return p.out.String(), nil
}

// RegisterAll installs the printer for every supported language. The
// C-family surface languages share one synthesis surface at the granularity
// of the generic node categories.
func RegisterAll(reg *render.Registry) {
	p := Printer{}
	for _, lang := range []render.Language{
		render.LangGo,
		render.LangJavaScript,
		render.LangTypeScript,
		render.LangJava,
		render.LangC,
	} {
		reg.Register(lang, p)
	}
}

type printer struct {
	out  strings.Builder
	hook render.Hook
}

func (p *printer) print(n *ast.Node) error {
	if n == nil {
		return errors.New("format: nil node")
	}
	if p.hook != nil {
		if text, ok := p.hook(n); ok {
			p.out.WriteString(text)
			return nil
		}
	}
	return p.synthesize(n)
}

func (p *printer) synthesize(n *ast.Node) error {
	switch n.Kind {
	case ast.KindIdent, ast.KindLiteral, ast.KindRaw:
		p.out.WriteString(n.Text)
		return nil

	case ast.KindMetavar:
		// an unsubstituted metavariable means the substitution step was
		// incomplete; emitting its name would corrupt the output
		return fmt.Errorf("format: unsubstituted metavariable %s", n.Text)

	case ast.KindCall:
		if len(n.Children) != 2 {
			return arityErr(n, 2)
		}
		if err := p.print(n.Children[0]); err != nil {
			return err
		}
		return p.print(n.Children[1])

	case ast.KindArgs:
		p.out.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				p.out.WriteString(", ")
			}
			if err := p.print(c); err != nil {
				return err
			}
		}
		p.out.WriteByte(')')
		return nil

	case ast.KindMember:
		if len(n.Children) != 2 {
			return arityErr(n, 2)
		}
		if err := p.print(n.Children[0]); err != nil {
			return err
		}
		p.out.WriteByte('.')
		return p.print(n.Children[1])

	case ast.KindIndex:
		if len(n.Children) != 2 {
			return arityErr(n, 2)
		}
		if err := p.print(n.Children[0]); err != nil {
			return err
		}
		p.out.WriteByte('[')
		if err := p.print(n.Children[1]); err != nil {
			return err
		}
		p.out.WriteByte(']')
		return nil

	case ast.KindBinary:
		if len(n.Children) != 2 {
			return arityErr(n, 2)
		}
		if err := p.print(n.Children[0]); err != nil {
			return err
		}
		p.out.WriteByte(' ')
		p.out.WriteString(n.Text)
		p.out.WriteByte(' ')
		return p.print(n.Children[1])

	case ast.KindUnary:
		if len(n.Children) != 1 {
			return arityErr(n, 1)
		}
		p.out.WriteString(n.Text)
		return p.print(n.Children[0])

	case ast.KindAssign:
		if len(n.Children) != 2 {
			return arityErr(n, 2)
		}
		if err := p.print(n.Children[0]); err != nil {
			return err
		}
		p.out.WriteString(" = ")
		return p.print(n.Children[1])

	case ast.KindExprStmt:
		if len(n.Children) != 1 {
			return arityErr(n, 1)
		}
		return p.print(n.Children[0])

	case ast.KindReturn:
		p.out.WriteString("return")
		if len(n.Children) == 1 {
			p.out.WriteByte(' ')
			return p.print(n.Children[0])
		}
		if len(n.Children) > 1 {
			return arityErr(n, 1)
		}
		return nil

	case ast.KindBlock, ast.KindFile:
		for i, c := range n.Children {
			if i > 0 {
				p.out.WriteByte('\n')
			}
			if err := p.print(c); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("format: cannot synthesize %s node", n.Kind)
}

func arityErr(n *ast.Node, want int) error {
	return fmt.Errorf("format: %s node has %d children, want %d", n.Kind, len(n.Children), want)
}
