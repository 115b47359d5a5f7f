package compiler

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) []*Node {
	t.Helper()
	tokens := mustTokenize(t, src)
	nodes, err := Parse(tokens, "test.volki")
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return nodes
}

func TestParseSimpleElement(t *testing.T) {
	nodes := mustParse(t, `<div class="foo">"hello"</div>`)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	n := nodes[0]
	if n.Kind != NodeElement || n.Tag != "div" {
		t.Fatalf("node = %+v", n)
	}
	if len(n.Attrs) != 1 || n.Attrs[0].Name != "class" || n.Attrs[0].Value != "foo" || n.Attrs[0].IsExpr {
		t.Fatalf("attrs = %+v", n.Attrs)
	}
	if len(n.Children) != 1 || n.Children[0].Kind != NodeText || n.Children[0].Text != "hello" {
		t.Fatalf("children = %+v", n.Children)
	}
}

func TestParseNestedElements(t *testing.T) {
	nodes := mustParse(t, `<div><span>"inner"</span></div>`)
	n := nodes[0]
	if len(n.Children) != 1 || n.Children[0].Tag != "span" {
		t.Fatalf("children = %+v", n.Children)
	}
}

func TestParseSelfClosing(t *testing.T) {
	nodes := mustParse(t, `<img src="/logo.png" />`)
	n := nodes[0]
	if !n.SelfClosing || n.Tag != "img" {
		t.Fatalf("node = %+v", n)
	}
}

func TestParseSiblings(t *testing.T) {
	nodes := mustParse(t, `<h1>"a"</h1><p>"b"</p>`)
	if len(nodes) != 2 || nodes[0].Tag != "h1" || nodes[1].Tag != "p" {
		t.Fatalf("nodes = %+v", nodes)
	}
}

func TestParseExpressionChild(t *testing.T) {
	nodes := mustParse(t, `<div>{sidebar_content()}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeExpr || child.Expr != "sidebar_content()" {
		t.Fatalf("child = %+v", child)
	}
}

func TestParseCondAnd(t *testing.T) {
	nodes := mustParse(t, `<div>{is_admin && <span>"Admin"</span>}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeCondAnd {
		t.Fatalf("child = %+v", child)
	}
	if child.Condition != "is_admin" {
		t.Fatalf("condition = %q", child.Condition)
	}
	if len(child.Children) != 1 || child.Children[0].Tag != "span" {
		t.Fatalf("body = %+v", child.Children)
	}
}

func TestParseTernary(t *testing.T) {
	nodes := mustParse(t, `<div>{flag ? <b>"on"</b> : <i>"off"</i>}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeTernary || child.Condition != "flag" {
		t.Fatalf("child = %+v", child)
	}
	if len(child.IfTrue) != 1 || child.IfTrue[0].Tag != "b" {
		t.Fatalf("if_true = %+v", child.IfTrue)
	}
	if len(child.IfFalse) != 1 || child.IfFalse[0].Tag != "i" {
		t.Fatalf("if_false = %+v", child.IfFalse)
	}
}

func TestParseTernaryWithMethodCallCondition(t *testing.T) {
	nodes := mustParse(t, `<div>{items.is_empty() ? <p>"none"</p> : <p>"some"</p>}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeTernary || child.Condition != "items.is_empty()" {
		t.Fatalf("child = %+v", child)
	}
}

func TestParsePlainExpressionPassthrough(t *testing.T) {
	nodes := mustParse(t, `<div>{count + 1}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeExpr || child.Expr != "count + 1" {
		t.Fatalf("child = %+v", child)
	}
}

func TestParseCondAndOnlyForRsxRhs(t *testing.T) {
	// A boolean && with a non-markup right side stays a plain
	// expression when both sides are present.
	nodes := mustParse(t, `<div>{a && b}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeExpr || child.Expr != "a && b" {
		t.Fatalf("child = %+v", child)
	}
}

func TestParseMismatchedClosingTag(t *testing.T) {
	tokens := mustTokenize(t, `<div>"x"</span>`)
	_, err := Parse(tokens, "test.volki")
	if err == nil || !strings.Contains(err.Error(), "mismatched closing tag") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseMissingClosingTag(t *testing.T) {
	tokens := mustTokenize(t, `<div>"x"`)
	_, err := Parse(tokens, "test.volki")
	if err == nil || !strings.Contains(err.Error(), "expected closing tag") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseAttrMissingEquals(t *testing.T) {
	tokens := mustTokenize(t, `<div class>"x"</div>`)
	_, err := Parse(tokens, "test.volki")
	if err == nil || !strings.Contains(err.Error(), "expected '=' after attribute name") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseInvalidTernaryMissingColon(t *testing.T) {
	tokens := mustTokenize(t, `<div>{flag ? <b>"on"</b>}</div>`)
	_, err := Parse(tokens, "test.volki")
	if err == nil || !strings.Contains(err.Error(), "invalid ternary expression") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseNestedCondInTernaryBranch(t *testing.T) {
	nodes := mustParse(t, `<div>{flag ? <span>{inner && <b>"deep"</b>}</span> : <i>"off"</i>}</div>`)
	child := nodes[0].Children[0]
	if child.Kind != NodeTernary {
		t.Fatalf("child = %+v", child)
	}
	branch := child.IfTrue[0]
	if branch.Tag != "span" || branch.Children[0].Kind != NodeCondAnd {
		t.Fatalf("branch = %+v", branch)
	}
}
