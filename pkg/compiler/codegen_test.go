package compiler

import (
	"strings"
	"testing"
)

func elem(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: NodeElement, Tag: tag, Attrs: attrs, Children: children}
}

func textNode(s string) *Node {
	return &Node{Kind: NodeText, Text: s}
}

func exprNode(s string) *Node {
	return &Node{Kind: NodeExpr, Expr: s}
}

func TestCodegenSimpleDiv(t *testing.T) {
	nodes := []*Node{elem("div", []Attr{{Name: "class", Value: "foo"}}, textNode("hello"))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, `div().class("foo").text("hello").into_node()`) {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenNested(t *testing.T) {
	nodes := []*Node{elem("div", nil, elem("span", nil, textNode("inner")))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, `div().child(span().text("inner").into_node()).into_node()`) {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenHtmlFn(t *testing.T) {
	nodes := []*Node{
		elem("Style", nil, exprNode("CSS")),
		elem("div", []Attr{{Name: "class", Value: "main"}}),
	}
	code := GenerateHtmlFn(nodes)
	for _, want := range []string{
		"HtmlDocument::new()",
		".inline_style(CSS)",
		".body_node(",
		`div().class("main").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenFragmentFn(t *testing.T) {
	nodes := []*Node{
		elem("div", nil, textNode("one")),
		elem("span", nil, textNode("two")),
	}
	code := GenerateFragmentFn(nodes)
	for _, want := range []string{
		"let mut __rsx_nodes = Vec::new();",
		"__rsx_nodes.push(",
		`div().text("one").into_node()`,
		`span().text("two").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
	if !strings.HasSuffix(code, "__rsx_nodes") {
		t.Fatalf("fragment body must yield the vector:\n%s", code)
	}
}

func TestCodegenStyleElementOnly(t *testing.T) {
	nodes := []*Node{elem("Style", nil, exprNode("CSS"))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, ".inline_style(CSS)") {
		t.Fatalf("missing inline_style:\n%s", code)
	}
	if strings.Contains(code, ".body_node(") {
		t.Fatalf("Style must not emit a body node:\n%s", code)
	}
}

func TestCodegenExpressionChild(t *testing.T) {
	nodes := []*Node{elem("div", nil, exprNode("sidebar_content()"))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, ".children((sidebar_content()).into_children())") {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenSelfClosing(t *testing.T) {
	nodes := []*Node{{Kind: NodeElement, Tag: "br", SelfClosing: true}}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, "br().into_node()") {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenAttrShorthand(t *testing.T) {
	nodes := []*Node{elem("div", []Attr{
		{Name: "class", Value: "container"},
		{Name: "id", Value: "main"},
		{Name: "data-x", Value: "y"},
	})}
	code := GenerateHtmlFn(nodes)
	for _, want := range []string{
		`.class("container")`,
		`.id("main")`,
		`.attr("data-x", "y")`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenEventExprAttrToDataBinding(t *testing.T) {
	nodes := []*Node{elem("button",
		[]Attr{{Name: "onclick", Value: "on_increment", IsExpr: true}},
		textNode("+"))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, `button().attr("data-volki-onclick", "on_increment")`) {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenHeadElement(t *testing.T) {
	meta := &Node{Kind: NodeElement, Tag: "meta",
		Attrs: []Attr{{Name: "charset", Value: "utf-8"}}, SelfClosing: true}
	nodes := []*Node{elem("Head", nil, meta)}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, ".head_node(") {
		t.Fatalf("missing head_node:\n%s", code)
	}
	if !strings.Contains(code, `meta().attr("charset", "utf-8").into_node()`) {
		t.Fatalf("unexpected output:\n%s", code)
	}
}

func TestCodegenStyledInjectsCSS(t *testing.T) {
	nodes := []*Node{elem("div", []Attr{{Name: "class", Value: "flex"}}, textNode("hello"))}
	code := GenerateHtmlFnStyled(nodes, ".flex{display:flex;}", "")
	for _, want := range []string{
		"HtmlDocument::new()",
		`.inline_style(".flex{display:flex;}")`,
		`div().class("flex").text("hello").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenStyledEmptyCSS(t *testing.T) {
	nodes := []*Node{elem("div", nil, textNode("hello"))}
	code := GenerateHtmlFnStyled(nodes, "", "")
	if strings.Contains(code, ".inline_style(") {
		t.Fatalf("empty css must not inject inline_style:\n%s", code)
	}
}

func TestCodegenStyledWithGlue(t *testing.T) {
	nodes := []*Node{elem("div", []Attr{{Name: "class", Value: "flex"}})}
	code := GenerateHtmlFnStyled(nodes, ".flex{display:flex;}", "/wasm/page_glue.js")
	if !strings.Contains(code, `.script_module("/wasm/page_glue.js")`) {
		t.Fatalf("missing script_module:\n%s", code)
	}
}

func TestCodegenStyledUtilityCSSPrecedesUserStyle(t *testing.T) {
	nodes := []*Node{
		elem("Style", nil, exprNode("CSS")),
		elem("div", []Attr{{Name: "class", Value: "flex"}}),
	}
	code := GenerateHtmlFnStyled(nodes, ".flex{display:flex;}", "")
	utilityPos := strings.Index(code, `.inline_style(".flex`)
	userPos := strings.Index(code, ".inline_style(CSS)")
	if utilityPos < 0 || userPos < 0 {
		t.Fatalf("missing inline_style calls:\n%s", code)
	}
	if utilityPos >= userPos {
		t.Fatalf("utility css must come before user style:\n%s", code)
	}
}

func TestCodegenCondAndInFragment(t *testing.T) {
	nodes := []*Node{{
		Kind:      NodeCondAnd,
		Condition: "is_admin",
		Children:  []*Node{elem("span", nil, textNode("Admin"))},
	}}
	code := GenerateFragmentFn(nodes)
	for _, want := range []string{
		"if is_admin {",
		"__rsx_nodes.push(",
		`span().text("Admin").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenTernaryInFragment(t *testing.T) {
	nodes := []*Node{{
		Kind:      NodeTernary,
		Condition: "flag",
		IfTrue:    []*Node{elem("span", nil, textNode("yes"))},
		IfFalse:   []*Node{elem("span", nil, textNode("no"))},
	}}
	code := GenerateFragmentFn(nodes)
	for _, want := range []string{
		"__rsx_nodes.push(if flag {",
		`span().text("yes").into_node()`,
		"} else {",
		`span().text("no").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenCondAndAsElementChild(t *testing.T) {
	cond := &Node{
		Kind:      NodeCondAnd,
		Condition: "show",
		Children:  []*Node{elem("span", []Attr{{Name: "class", Value: "flex"}}, textNode("hello"))},
	}
	code := GenerateHtmlFn([]*Node{elem("div", nil, cond)})
	for _, want := range []string{
		".children(",
		"if show {",
		"__c.push(",
		`span().class("flex").text("hello").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenTernaryAsElementChild(t *testing.T) {
	tern := &Node{
		Kind:      NodeTernary,
		Condition: "active",
		IfTrue:    []*Node{elem("b", nil, textNode("on"))},
		IfFalse:   []*Node{elem("i", nil, textNode("off"))},
	}
	code := GenerateHtmlFn([]*Node{elem("div", nil, tern)})
	for _, want := range []string{
		".child(if active {",
		`b().text("on").into_node()`,
		"} else {",
		`i().text("off").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenCondAndInHtmlTopLevel(t *testing.T) {
	nodes := []*Node{{
		Kind:      NodeCondAnd,
		Condition: "show_banner",
		Children:  []*Node{elem("div", []Attr{{Name: "class", Value: "banner"}}, textNode("Welcome"))},
	}}
	code := GenerateHtmlFn(nodes)
	for _, want := range []string{
		".body_nodes(",
		"if show_banner {",
		"__c.push(",
		`div().class("banner").text("Welcome").into_node()`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}

func TestCodegenStylesheetInHtmlFn(t *testing.T) {
	sheet := &Node{Kind: NodeElement, Tag: "Stylesheet",
		Attrs: []Attr{{Name: "href", Value: "/styles/app.css"}}, SelfClosing: true}
	nodes := []*Node{sheet, elem("div", nil, textNode("hello"))}
	code := GenerateHtmlFn(nodes)
	if !strings.Contains(code, `.stylesheet("/styles/app.css")`) {
		t.Fatalf("missing stylesheet:\n%s", code)
	}
	if !strings.Contains(code, `div().text("hello").into_node()`) {
		t.Fatalf("missing div:\n%s", code)
	}
}

func TestCodegenChildrenExpr(t *testing.T) {
	nodes := []*Node{
		elem("p", nil, textNode("inner")),
		exprNode("extra()"),
	}
	code := GenerateChildrenExpr(nodes)
	for _, want := range []string{
		"{ let mut __c = Vec::new(); ",
		`__c.push(p().text("inner").into_node()); `,
		"__c.extend((extra()).into_children()); ",
		"__c }",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in:\n%s", want, code)
		}
	}
}
