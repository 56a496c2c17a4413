package ast

import (
	"mend/internal/source"
)

// Kind classifies a node into one of the generic tree-element categories
// shared by the surface languages the tool renders.
type Kind uint8

const (
	KindFile Kind = iota
	KindIdent
	KindLiteral
	KindMetavar
	KindCall
	KindArgs
	KindMember
	KindIndex
	KindBinary
	KindUnary
	KindAssign
	KindExprStmt
	KindReturn
	KindBlock
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindIdent:
		return "ident"
	case KindLiteral:
		return "literal"
	case KindMetavar:
		return "metavar"
	case KindCall:
		return "call"
	case KindArgs:
		return "args"
	case KindMember:
		return "member"
	case KindIndex:
		return "index"
	case KindBinary:
		return "binary"
	case KindUnary:
		return "unary"
	case KindAssign:
		return "assign"
	case KindExprStmt:
		return "expr_stmt"
	case KindReturn:
		return "return"
	case KindBlock:
		return "block"
	case KindRaw:
		return "raw"
	}
	return "unknown"
}

// Node is a generic syntax-tree node. Text carries leaf content (identifier
// names, literal text, operators); Children carry subtrees in source order.
// Span records where the node came from in its originating buffer; an empty
// span means the node has no usable position (synthesized, macro-expanded).
//
// Nodes are treated as immutable once built. Structural identity is defined
// by Equal/Hash, which ignore Span.
type Node struct {
	Kind     Kind
	Text     string
	Children []*Node
	Span     source.Span
}

// New builds a node with the given kind, leaf text, and children.
func New(kind Kind, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Children: children}
}

// WithSpan returns the node with its span set. Meant for construction chains.
func (n *Node) WithSpan(span source.Span) *Node {
	n.Span = span
	return n
}

// HasPos reports whether the node carries a usable source position.
func (n *Node) HasPos() bool {
	return n != nil && !n.Span.Empty()
}
