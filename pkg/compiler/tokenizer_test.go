package compiler

import (
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src, "test.volki")
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSimpleElement(t *testing.T) {
	tokens := mustTokenize(t, `<div>"hello"</div>`)
	want := []TokenKind{TokOpenTag, TokTagEnd, TokTextLiteral, TokCloseTag}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if tokens[0].Value != "div" || tokens[2].Value != "hello" || tokens[3].Value != "div" {
		t.Fatalf("unexpected values: %+v", tokens)
	}
}

func TestTokenizeAttributes(t *testing.T) {
	tokens := mustTokenize(t, `<a href="/docs" onclick={go_docs}>"x"</a>`)
	var names, values, exprs []string
	for _, tok := range tokens {
		switch tok.Kind {
		case TokAttrName:
			names = append(names, tok.Value)
		case TokAttrValue:
			values = append(values, tok.Value)
		case TokAttrExpr:
			exprs = append(exprs, tok.Value)
		}
	}
	if len(names) != 2 || names[0] != "href" || names[1] != "onclick" {
		t.Fatalf("attr names = %v", names)
	}
	if len(values) != 1 || values[0] != "/docs" {
		t.Fatalf("attr values = %v", values)
	}
	if len(exprs) != 1 || exprs[0] != "go_docs" {
		t.Fatalf("attr exprs = %v", exprs)
	}
}

func TestTokenizeSelfClosing(t *testing.T) {
	tokens := mustTokenize(t, `<br />`)
	got := kinds(tokens)
	if len(got) != 2 || got[0] != TokOpenTag || got[1] != TokSelfCloseEnd {
		t.Fatalf("tokens = %v", got)
	}
}

func TestTokenizeExpression(t *testing.T) {
	tokens := mustTokenize(t, `<div>{sidebar_content()}</div>`)
	found := false
	for _, tok := range tokens {
		if tok.Kind == TokExpression {
			found = true
			if tok.Value != "sidebar_content()" {
				t.Fatalf("expression = %q", tok.Value)
			}
		}
	}
	if !found {
		t.Fatal("no expression token")
	}
}

func TestTokenizeNestedBraceExpression(t *testing.T) {
	tokens := mustTokenize(t, `<div>{foo({ bar: 1 })}</div>`)
	for _, tok := range tokens {
		if tok.Kind == TokExpression {
			if tok.Value != "foo({ bar: 1 })" {
				t.Fatalf("expression = %q", tok.Value)
			}
			return
		}
	}
	t.Fatal("no expression token")
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`<div>"hello`, "test.volki")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unterminated string literal") {
		t.Fatalf("error = %v", err)
	}
}

func TestTokenizeUnterminatedBrace(t *testing.T) {
	_, err := Tokenize(`<div>{foo(`, "test.volki")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unterminated brace expression") {
		t.Fatalf("error = %v", err)
	}
}

func TestTokenizeErrorPosition(t *testing.T) {
	_, err := Tokenize("<div>\n  %</div>", "test.volki")
	if err == nil {
		t.Fatal("expected error")
	}
	cerr, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if cerr.Line != 2 {
		t.Fatalf("line = %d, want 2", cerr.Line)
	}
	if cerr.File != "test.volki" {
		t.Fatalf("file = %q", cerr.File)
	}
}

func TestTokenizeEscapedQuoteInText(t *testing.T) {
	tokens := mustTokenize(t, `<p>"say \"hi\""</p>`)
	for _, tok := range tokens {
		if tok.Kind == TokTextLiteral {
			if tok.Value != `say \"hi\"` {
				t.Fatalf("text = %q", tok.Value)
			}
			return
		}
	}
	t.Fatal("no text literal")
}
