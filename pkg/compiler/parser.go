package compiler

import "strings"

func skipWS(b []byte, pos int) int {
	for pos < len(b) {
		switch b[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// isRsxStart reports whether the byte at pos begins markup content,
// either `<` followed by a letter or a quoted string.
func isRsxStart(b []byte, pos int) bool {
	if pos >= len(b) {
		return false
	}
	switch b[pos] {
	case '"':
		return true
	case '<':
		return pos+1 < len(b) && isAlphaByte(b[pos+1])
	}
	return false
}

func skipStringLit(b []byte, i int) int {
	i++
	for i < len(b) {
		if b[i] == '\\' {
			i += 2
			continue
		}
		if b[i] == '"' {
			return i + 1
		}
		i++
	}
	return i
}

// findCondAndSplit returns the position of the first depth-0 `&&`
// whose right-hand side starts markup, or -1.
func findCondAndSplit(b []byte) int {
	braceDepth, parenDepth := 0, 0
	for i := 0; i < len(b); {
		switch b[i] {
		case '"':
			i = skipStringLit(b, i)
			continue
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '&':
			if braceDepth == 0 && parenDepth == 0 && i+1 < len(b) && b[i+1] == '&' {
				if isRsxStart(b, skipWS(b, i+2)) {
					return i
				}
			}
		}
		i++
	}
	return -1
}

func findTopLevelAnd(b []byte) int {
	braceDepth, parenDepth := 0, 0
	for i := 0; i < len(b); {
		switch b[i] {
		case '"':
			i = skipStringLit(b, i)
			continue
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '&':
			if braceDepth == 0 && parenDepth == 0 && i+1 < len(b) && b[i+1] == '&' {
				return i
			}
		}
		i++
	}
	return -1
}

// findTernaryQuestion returns the position of a depth-0 `?` followed
// by markup, or -1.
func findTernaryQuestion(b []byte) int {
	braceDepth, parenDepth := 0, 0
	for i := 0; i < len(b); {
		switch b[i] {
		case '"':
			i = skipStringLit(b, i)
			continue
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '?':
			if braceDepth == 0 && parenDepth == 0 && isRsxStart(b, skipWS(b, i+1)) {
				return i
			}
		}
		i++
	}
	return -1
}

func findTopLevelQuestion(b []byte) int {
	braceDepth, parenDepth := 0, 0
	for i := 0; i < len(b); {
		switch b[i] {
		case '"':
			i = skipStringLit(b, i)
			continue
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '?':
			if braceDepth == 0 && parenDepth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// findTernaryColon locates the `:` separating ternary branches. It
// tracks tag nesting and brace depth so colons inside the true branch
// markup are skipped. Returns -1 when not found.
func findTernaryColon(b []byte) int {
	tagDepth, braceDepth := 0, 0
	seenContent := false
	for i := 0; i < len(b); {
		switch b[i] {
		case '"':
			seenContent = true
			i = skipStringLit(b, i)
			continue
		case '{':
			braceDepth++
		case '}':
			braceDepth--
		case '<':
			if braceDepth != 0 {
				break
			}
			seenContent = true
			if i+1 < len(b) && b[i+1] == '/' {
				i += 2
				for i < len(b) && b[i] != '>' {
					i++
				}
				if i < len(b) {
					i++
				}
				tagDepth--
				continue
			}
			if i+1 < len(b) && isAlphaByte(b[i+1]) {
				i++
				for i < len(b) && isIdentByte(b[i]) {
					i++
				}
				selfClosing := false
				for i < len(b) {
					if b[i] == '"' {
						i = skipStringLit(b, i)
						continue
					}
					if b[i] == '/' && i+1 < len(b) && b[i+1] == '>' {
						selfClosing = true
						i += 2
						break
					}
					if b[i] == '>' {
						i++
						break
					}
					i++
				}
				if !selfClosing {
					tagDepth++
				}
				continue
			}
		case ':':
			if braceDepth == 0 && tagDepth == 0 && seenContent {
				return i
			}
		}
		i++
	}
	return -1
}

type parser struct {
	tokens []Token
	pos    int
	file   string
}

func (p *parser) peek() *Token {
	if p.pos < len(p.tokens) {
		return &p.tokens[p.pos]
	}
	return nil
}

func (p *parser) advance() *Token {
	tok := p.peek()
	if tok != nil {
		p.pos++
	}
	return tok
}

func (p *parser) error(code, msg string) *CompileError {
	return &CompileError{Code: code, File: p.file, Message: msg}
}

func (p *parser) parseNodes() ([]*Node, *CompileError) {
	var nodes []*Node
	for p.pos < len(p.tokens) {
		// A close tag belongs to the enclosing element.
		if tok := p.peek(); tok != nil && tok.Kind == TokCloseTag {
			break
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (p *parser) parseNode() (*Node, *CompileError) {
	tok := p.peek()
	if tok == nil {
		return nil, p.error("E004", "unexpected end of tokens")
	}
	switch tok.Kind {
	case TokOpenTag:
		return p.parseElement()
	case TokTextLiteral:
		p.advance()
		return &Node{Kind: NodeText, Text: tok.Value}, nil
	case TokExpression:
		p.advance()
		return p.parseExpression(tok.Value)
	default:
		return nil, p.error("E004", "unexpected token")
	}
}

// parseExpression inspects an expression for `cond ? a : b` or
// `cond && <rsx>` conditional rendering. Ternary is checked first
// since it binds outermost. Plain expressions pass through unchanged.
func (p *parser) parseExpression(expr string) (*Node, *CompileError) {
	b := []byte(expr)

	if qPos := findTernaryQuestion(b); qPos >= 0 {
		rest := expr[qPos+1:]
		cPos := findTernaryColon([]byte(rest))
		if cPos < 0 {
			return nil, p.error("E006", "invalid ternary expression: expected `:`")
		}
		condition := strings.TrimSpace(expr[:qPos])
		trueStr := strings.TrimSpace(rest[:cPos])
		falseStr := strings.TrimSpace(rest[cPos+1:])
		if condition == "" || trueStr == "" || falseStr == "" {
			return nil, p.error("E006", "invalid ternary expression: expected `cond ? a : b`")
		}
		ifTrue, err := p.parseInlineRsx(trueStr)
		if err != nil {
			return nil, err
		}
		ifFalse, err := p.parseInlineRsx(falseStr)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeTernary, Condition: condition, IfTrue: ifTrue, IfFalse: ifFalse}, nil
	}

	if splitPos := findCondAndSplit(b); splitPos >= 0 {
		condition := strings.TrimSpace(expr[:splitPos])
		rsxStr := strings.TrimSpace(expr[splitPos+2:])
		if condition == "" || rsxStr == "" {
			return nil, p.error("E006", "invalid conditional expression: expected `cond && <rsx>`")
		}
		body, err := p.parseInlineRsx(rsxStr)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeCondAnd, Condition: condition, Children: body}, nil
	}

	// Malformed conditionals that never reach markup still error out.
	if qPos := findTopLevelQuestion(b); qPos >= 0 {
		if strings.TrimSpace(expr[:qPos]) == "" {
			return nil, p.error("E006", "invalid ternary expression: missing condition before `?`")
		}
	}
	if andPos := findTopLevelAnd(b); andPos >= 0 {
		condition := strings.TrimSpace(expr[:andPos])
		rhs := strings.TrimSpace(expr[andPos+2:])
		if condition == "" || rhs == "" {
			return nil, p.error("E006", "invalid conditional expression: expected `cond && <expr>`")
		}
	}

	return &Node{Kind: NodeExpr, Expr: expr}, nil
}

// parseInlineRsx re-tokenizes a branch slice so nested conditionals
// inside branches parse recursively.
func (p *parser) parseInlineRsx(src string) ([]*Node, *CompileError) {
	t := &tokenizer{src: []byte(src), file: p.file}
	tokens, err := t.run()
	if err != nil {
		return nil, err
	}
	sub := &parser{tokens: tokens, file: p.file}
	return sub.parseNodes()
}

func (p *parser) parseElement() (*Node, *CompileError) {
	open := p.advance()
	if open == nil || open.Kind != TokOpenTag {
		return nil, p.error("E004", "expected opening tag")
	}
	tag := open.Value

	var attrs []Attr
attrLoop:
	for {
		tok := p.peek()
		if tok == nil {
			return nil, p.error("E003", "unexpected token in tag attributes")
		}
		switch tok.Kind {
		case TokAttrName:
			p.advance()
			name := tok.Value
			if eq := p.advance(); eq == nil || eq.Kind != TokAttrEquals {
				return nil, p.error("E003", "expected '=' after attribute name")
			}
			val := p.advance()
			if val == nil {
				return nil, p.error("E003", "expected attribute value")
			}
			switch val.Kind {
			case TokAttrValue:
				attrs = append(attrs, Attr{Name: name, Value: val.Value})
			case TokAttrExpr:
				attrs = append(attrs, Attr{Name: name, Value: val.Value, IsExpr: true})
			default:
				return nil, p.error("E003", "expected attribute value")
			}
		case TokSelfCloseEnd, TokTagEnd:
			break attrLoop
		default:
			return nil, p.error("E003", "unexpected token in tag attributes")
		}
	}

	switch end := p.advance(); {
	case end != nil && end.Kind == TokSelfCloseEnd:
		return &Node{Kind: NodeElement, Tag: tag, Attrs: attrs, SelfClosing: true}, nil
	case end != nil && end.Kind == TokTagEnd:
	default:
		return nil, p.error("E003", "expected '>' or '/>' after tag attributes")
	}

	children, err := p.parseNodes()
	if err != nil {
		return nil, err
	}

	closeTok := p.advance()
	if closeTok == nil || closeTok.Kind != TokCloseTag {
		return nil, p.error("E005", "expected closing tag")
	}
	if closeTok.Value != tag {
		return nil, p.error("E005", "mismatched closing tag")
	}

	return &Node{Kind: NodeElement, Tag: tag, Attrs: attrs, Children: children}, nil
}

// Parse builds the AST from a token stream.
func Parse(tokens []Token, file string) ([]*Node, error) {
	p := &parser{tokens: tokens, file: file}
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
