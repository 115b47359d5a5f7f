package compiler

import "strings"

// GenerateHtmlFn produces the `HtmlDocument::new()...` builder chain
// for a document function body.
func GenerateHtmlFn(nodes []*Node) string {
	return GenerateHtmlFnStyled(nodes, "", "")
}

// GenerateHtmlFnStyled produces the document builder chain with
// generated utility CSS injected first and an optional client glue
// script appended last. Empty css and glueURL are skipped.
func GenerateHtmlFnStyled(nodes []*Node, css, glueURL string) string {
	var out strings.Builder
	out.WriteString("HtmlDocument::new()\n")

	if css != "" {
		out.WriteString("        .inline_style(\"")
		for i := 0; i < len(css); i++ {
			switch css[i] {
			case '"':
				out.WriteString("\\\"")
			case '\\':
				out.WriteString("\\\\")
			default:
				out.WriteByte(css[i])
			}
		}
		out.WriteString("\")\n")
	}

	for _, node := range nodes {
		switch {
		case node.Kind == NodeElement && node.Tag == "Style" && !node.SelfClosing:
			if len(node.Children) > 0 && node.Children[0].Kind == NodeExpr {
				out.WriteString("        .inline_style(")
				out.WriteString(node.Children[0].Expr)
				out.WriteString(")\n")
			}
		case node.Kind == NodeElement && node.Tag == "Head" && !node.SelfClosing:
			for _, child := range node.Children {
				out.WriteString("        .head_node(\n            ")
				generateNode(child, &out)
				out.WriteString("\n        )\n")
			}
		case node.Kind == NodeElement && node.Tag == "Stylesheet" && node.SelfClosing:
			if href, ok := findLiteralAttr(node.Attrs, "href"); ok {
				out.WriteString("        .stylesheet(\"")
				out.WriteString(href)
				out.WriteString("\")\n")
			}
		case node.Kind == NodeCondAnd:
			out.WriteString("        .body_nodes(")
			generateCondAndVec(node.Condition, node.Children, &out)
			out.WriteString(")\n")
		case node.Kind == NodeTernary:
			if len(node.IfTrue) == 1 && len(node.IfFalse) == 1 {
				out.WriteString("        .body_node(\n            ")
				generateTernarySingle(node.Condition, node.IfTrue[0], node.IfFalse[0], &out)
				out.WriteString("\n        )\n")
			} else {
				out.WriteString("        .body_nodes(")
				generateTernaryVec(node.Condition, node.IfTrue, node.IfFalse, &out)
				out.WriteString(")\n")
			}
		case node.Kind == NodeExpr:
			out.WriteString("        .body_nodes((")
			out.WriteString(node.Expr)
			out.WriteString(").into_children())\n")
		default:
			out.WriteString("        .body_node(\n            ")
			generateNode(node, &out)
			out.WriteString("\n        )\n")
		}
	}

	if glueURL != "" {
		out.WriteString("        .script_module(\"")
		out.WriteString(glueURL)
		out.WriteString("\")\n")
	}

	return out.String()
}

// GenerateFragmentFn produces a body that accumulates nodes into
// `__rsx_nodes` and yields the vector.
func GenerateFragmentFn(nodes []*Node) string {
	var out strings.Builder
	out.WriteString("let mut __rsx_nodes = Vec::new();\n")

	for _, node := range nodes {
		switch node.Kind {
		case NodeExpr:
			// Top-level expressions extend, they may yield a Vec.
			out.WriteString("    __rsx_nodes.extend((")
			out.WriteString(node.Expr)
			out.WriteString(").into_children());\n")
		case NodeCondAnd:
			out.WriteString("    if ")
			out.WriteString(node.Condition)
			out.WriteString(" {\n")
			for _, child := range node.Children {
				out.WriteString("        __rsx_nodes.push(")
				generateNode(child, &out)
				out.WriteString(");\n")
			}
			out.WriteString("    }\n")
		case NodeTernary:
			if len(node.IfTrue) == 1 && len(node.IfFalse) == 1 {
				out.WriteString("    __rsx_nodes.push(if ")
				out.WriteString(node.Condition)
				out.WriteString(" { ")
				generateNode(node.IfTrue[0], &out)
				out.WriteString(" } else { ")
				generateNode(node.IfFalse[0], &out)
				out.WriteString(" });\n")
			} else {
				out.WriteString("    if ")
				out.WriteString(node.Condition)
				out.WriteString(" {\n")
				for _, child := range node.IfTrue {
					out.WriteString("        __rsx_nodes.push(")
					generateNode(child, &out)
					out.WriteString(");\n")
				}
				out.WriteString("    } else {\n")
				for _, child := range node.IfFalse {
					out.WriteString("        __rsx_nodes.push(")
					generateNode(child, &out)
					out.WriteString(");\n")
				}
				out.WriteString("    }\n")
			}
		default:
			out.WriteString("    __rsx_nodes.push(\n        ")
			generateNode(node, &out)
			out.WriteString("\n    );\n")
		}
	}

	out.WriteString("    __rsx_nodes")
	return out.String()
}

// GenerateChildrenExpr produces a block expression building a
// `Vec<HtmlNode>` from child nodes, used for component children
// arguments.
func GenerateChildrenExpr(nodes []*Node) string {
	var out strings.Builder
	out.WriteString("{ let mut __c = Vec::new(); ")
	for _, node := range nodes {
		switch node.Kind {
		case NodeExpr:
			out.WriteString("__c.extend((")
			out.WriteString(node.Expr)
			out.WriteString(").into_children()); ")
		case NodeCondAnd:
			out.WriteString("if ")
			out.WriteString(node.Condition)
			out.WriteString(" { ")
			for _, child := range node.Children {
				out.WriteString("__c.push(")
				generateNode(child, &out)
				out.WriteString("); ")
			}
			out.WriteString("} ")
		case NodeTernary:
			out.WriteString("if ")
			out.WriteString(node.Condition)
			out.WriteString(" { ")
			for _, child := range node.IfTrue {
				out.WriteString("__c.push(")
				generateNode(child, &out)
				out.WriteString("); ")
			}
			out.WriteString("} else { ")
			for _, child := range node.IfFalse {
				out.WriteString("__c.push(")
				generateNode(child, &out)
				out.WriteString("); ")
			}
			out.WriteString("} ")
		default:
			out.WriteString("__c.push(")
			generateNode(node, &out)
			out.WriteString("); ")
		}
	}
	out.WriteString("__c }")
	return out.String()
}

func findLiteralAttr(attrs []Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name == name && !attr.IsExpr {
			return attr.Value, true
		}
	}
	return "", false
}

func generateNode(node *Node, out *strings.Builder) {
	switch node.Kind {
	case NodeElement:
		generateElement(node, out)
	case NodeText:
		out.WriteString("text(\"")
		out.WriteString(node.Text)
		out.WriteString("\")")
	case NodeExpr:
		out.WriteString("(")
		out.WriteString(node.Expr)
		out.WriteString(").into_children()")
	case NodeCondAnd:
		generateCondAndVec(node.Condition, node.Children, out)
	case NodeTernary:
		if len(node.IfTrue) == 1 && len(node.IfFalse) == 1 {
			generateTernarySingle(node.Condition, node.IfTrue[0], node.IfFalse[0], out)
		} else {
			generateTernaryVec(node.Condition, node.IfTrue, node.IfFalse, out)
		}
	}
}

func generateCondAndVec(condition string, body []*Node, out *strings.Builder) {
	out.WriteString("{ let mut __c = Vec::new(); if ")
	out.WriteString(condition)
	out.WriteString(" { ")
	for _, node := range body {
		out.WriteString("__c.push(")
		generateNode(node, out)
		out.WriteString("); ")
	}
	out.WriteString("} __c }")
}

func generateTernarySingle(condition string, ifTrue, ifFalse *Node, out *strings.Builder) {
	out.WriteString("if ")
	out.WriteString(condition)
	out.WriteString(" { ")
	generateNode(ifTrue, out)
	out.WriteString(" } else { ")
	generateNode(ifFalse, out)
	out.WriteString(" }")
}

func generateTernaryVec(condition string, ifTrue, ifFalse []*Node, out *strings.Builder) {
	out.WriteString("if ")
	out.WriteString(condition)
	out.WriteString(" { let mut __t = Vec::new(); ")
	for _, node := range ifTrue {
		out.WriteString("__t.push(")
		generateNode(node, out)
		out.WriteString("); ")
	}
	out.WriteString("__t } else { let mut __f = Vec::new(); ")
	for _, node := range ifFalse {
		out.WriteString("__f.push(")
		generateNode(node, out)
		out.WriteString("); ")
	}
	out.WriteString("__f }")
}

func generateElement(node *Node, out *strings.Builder) {
	out.WriteString(node.Tag)
	out.WriteString("()")

	for _, attr := range node.Attrs {
		if attr.IsExpr {
			// Event handler expressions lower to data attributes
			// picked up by client-side auto-binding.
			if isEventAttr(attr.Name) {
				out.WriteString(".attr(\"data-volki-")
				out.WriteString(attr.Name)
				out.WriteString("\", \"")
				out.WriteString(attr.Value)
				out.WriteString("\")")
			}
			continue
		}
		switch attr.Name {
		case "class":
			out.WriteString(".class(\"")
			out.WriteString(attr.Value)
			out.WriteString("\")")
		case "id":
			out.WriteString(".id(\"")
			out.WriteString(attr.Value)
			out.WriteString("\")")
		default:
			out.WriteString(".attr(\"")
			out.WriteString(attr.Name)
			out.WriteString("\", \"")
			out.WriteString(attr.Value)
			out.WriteString("\")")
		}
	}

	for _, child := range node.Children {
		switch child.Kind {
		case NodeText:
			out.WriteString(".text(\"")
			out.WriteString(child.Text)
			out.WriteString("\")")
		case NodeExpr:
			out.WriteString(".children((")
			out.WriteString(child.Expr)
			out.WriteString(").into_children())")
		case NodeElement:
			out.WriteString(".child(")
			generateElement(child, out)
			out.WriteString(")")
		case NodeCondAnd:
			out.WriteString(".children(")
			generateCondAndVec(child.Condition, child.Children, out)
			out.WriteString(")")
		case NodeTernary:
			if len(child.IfTrue) == 1 && len(child.IfFalse) == 1 {
				out.WriteString(".child(")
				generateTernarySingle(child.Condition, child.IfTrue[0], child.IfFalse[0], out)
				out.WriteString(")")
			} else {
				out.WriteString(".children(")
				generateTernaryVec(child.Condition, child.IfTrue, child.IfFalse, out)
				out.WriteString(")")
			}
		}
	}

	out.WriteString(".into_node()")
}

func isEventAttr(name string) bool {
	return strings.HasPrefix(name, "on") && len(name) > 2
}
