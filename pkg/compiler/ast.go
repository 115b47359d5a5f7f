package compiler

// NodeKind discriminates AST node variants.
type NodeKind int

const (
	NodeElement NodeKind = iota
	NodeText
	NodeExpr
	// NodeCondAnd is `{cond && <rsx>}` conditional rendering.
	NodeCondAnd
	// NodeTernary is `{cond ? <a> : <b>}`.
	NodeTernary
)

// Attr is one element attribute. IsExpr distinguishes a brace
// expression value from a quoted literal.
type Attr struct {
	Name   string
	Value  string
	IsExpr bool
}

// Node is one RSX AST node. Fields are populated per Kind:
// Element uses Tag, Attrs, Children, SelfClosing; Text uses Text;
// Expr uses Expr; CondAnd uses Condition, Children; Ternary uses
// Condition, IfTrue, IfFalse.
type Node struct {
	Kind        NodeKind
	Tag         string
	Attrs       []Attr
	Children    []*Node
	Text        string
	Expr        string
	Condition   string
	IfTrue      []*Node
	IfFalse     []*Node
	SelfClosing bool
}
