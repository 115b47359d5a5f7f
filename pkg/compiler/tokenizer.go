package compiler

import "fmt"

// TokenKind discriminates RSX tokens.
type TokenKind int

const (
	// TokOpenTag is `<div` — the opening tag name.
	TokOpenTag TokenKind = iota
	// TokCloseTag is `</div>`.
	TokCloseTag
	// TokSelfCloseEnd is `/>`.
	TokSelfCloseEnd
	// TokTagEnd is `>`.
	TokTagEnd
	// TokAttrName is an attribute name (`class`, `href`).
	TokAttrName
	// TokAttrEquals is `=`.
	TokAttrEquals
	// TokAttrValue is a quoted attribute value, without quotes.
	TokAttrValue
	// TokAttrExpr is a brace attribute expression, without outer braces.
	TokAttrExpr
	// TokTextLiteral is a quoted string child node.
	TokTextLiteral
	// TokExpression is a brace-matched expression child, without outer
	// braces.
	TokExpression
)

// Token is one lexical unit of an RSX body.
type Token struct {
	Kind  TokenKind
	Value string
}

// CompileError carries a source position alongside the message. Code
// is the registry code for diagnostics; infrastructure failures (I/O
// during dist assembly) leave it empty.
type CompileError struct {
	Code    string
	File    string
	Line    int
	Col     int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Message)
}

type tokenizer struct {
	src    []byte
	pos    int
	file   string
	tokens []Token
	// inTag is true between `<name` and the closing `>` or `/>`.
	inTag bool
}

func (t *tokenizer) peekAt(offset int) (byte, bool) {
	idx := t.pos + offset
	if idx < len(t.src) {
		return t.src[idx], true
	}
	return 0, false
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case ' ', '\t', '\n', '\r':
			t.pos++
		default:
			return
		}
	}
}

func (t *tokenizer) lineCol() (int, int) {
	line, col := 1, 1
	limit := t.pos
	if limit > len(t.src) {
		limit = len(t.src)
	}
	for i := 0; i < limit; i++ {
		if t.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (t *tokenizer) errorf(code, msg string) *CompileError {
	line, col := t.lineCol()
	return &CompileError{Code: code, File: t.file, Line: line, Col: col, Message: msg}
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '-'
}

func isAlphaByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func (t *tokenizer) readIdent() string {
	start := t.pos
	for t.pos < len(t.src) && isIdentByte(t.src[t.pos]) {
		t.pos++
	}
	return string(t.src[start:t.pos])
}

func (t *tokenizer) readQuotedString() (string, *CompileError) {
	t.pos++ // opening quote
	start := t.pos
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case '\\':
			t.pos += 2
		case '"':
			s := string(t.src[start:t.pos])
			t.pos++
			return s, nil
		default:
			t.pos++
		}
	}
	return "", t.errorf("E001", "unterminated string literal")
}

func (t *tokenizer) readBraceExpression() (string, *CompileError) {
	t.pos++ // opening brace
	start := t.pos
	depth := 1
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case '"':
			t.pos++
			for t.pos < len(t.src) {
				if t.src[t.pos] == '\\' {
					t.pos += 2
					continue
				}
				if t.src[t.pos] == '"' {
					t.pos++
					break
				}
				t.pos++
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := trimSpace(string(t.src[start:t.pos]))
				t.pos++
				return s, nil
			}
		}
		t.pos++
	}
	return "", t.errorf("E002", "unterminated brace expression")
}

func (t *tokenizer) run() ([]Token, *CompileError) {
	for t.pos < len(t.src) {
		t.skipWhitespace()
		if t.pos >= len(t.src) {
			break
		}
		b := t.src[t.pos]

		if t.inTag {
			switch {
			case b == '/':
				if next, ok := t.peekAt(1); ok && next == '>' {
					t.pos += 2
					t.inTag = false
					t.tokens = append(t.tokens, Token{Kind: TokSelfCloseEnd})
					continue
				}
				return nil, t.errorf("E003", "unexpected character in tag")
			case b == '>':
				t.pos++
				t.inTag = false
				t.tokens = append(t.tokens, Token{Kind: TokTagEnd})
			case b == '=':
				t.pos++
				t.tokens = append(t.tokens, Token{Kind: TokAttrEquals})
			case b == '"':
				val, err := t.readQuotedString()
				if err != nil {
					return nil, err
				}
				t.tokens = append(t.tokens, Token{Kind: TokAttrValue, Value: val})
			case b == '{':
				expr, err := t.readBraceExpression()
				if err != nil {
					return nil, err
				}
				t.tokens = append(t.tokens, Token{Kind: TokAttrExpr, Value: expr})
			case isAlphaByte(b) || b == '_':
				t.tokens = append(t.tokens, Token{Kind: TokAttrName, Value: t.readIdent()})
			default:
				return nil, t.errorf("E003", "unexpected character in tag")
			}
			continue
		}

		switch {
		case b == '<':
			next, ok := t.peekAt(1)
			if ok && next == '/' {
				t.pos += 2
				name := t.readIdent()
				t.skipWhitespace()
				if t.pos >= len(t.src) || t.src[t.pos] != '>' {
					return nil, t.errorf("E003", "expected '>' in closing tag")
				}
				t.pos++
				t.tokens = append(t.tokens, Token{Kind: TokCloseTag, Value: name})
				continue
			}
			if ok && (isAlphaByte(next) || next == '_') {
				t.pos++
				name := t.readIdent()
				t.inTag = true
				t.tokens = append(t.tokens, Token{Kind: TokOpenTag, Value: name})
				continue
			}
			return nil, t.errorf("E004", "unexpected character in RSX body")
		case b == '"':
			text, err := t.readQuotedString()
			if err != nil {
				return nil, err
			}
			t.tokens = append(t.tokens, Token{Kind: TokTextLiteral, Value: text})
		case b == '{':
			expr, err := t.readBraceExpression()
			if err != nil {
				return nil, err
			}
			t.tokens = append(t.tokens, Token{Kind: TokExpression, Value: expr})
		default:
			return nil, t.errorf("E004", "unexpected character in RSX body")
		}
	}
	return t.tokens, nil
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	end := len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

// Tokenize lexes an RSX function body.
func Tokenize(source, file string) ([]Token, error) {
	t := &tokenizer{src: []byte(source), file: file}
	tokens, err := t.run()
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
