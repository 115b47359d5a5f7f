package compiler

import "strings"

// ReturnType classifies a scanned function by its declared result.
type ReturnType int

const (
	ReturnHtml ReturnType = iota
	ReturnFragment
	ReturnClient
	ReturnComponent
)

func (r ReturnType) String() string {
	switch r {
	case ReturnHtml:
		return "Html"
	case ReturnFragment:
		return "Fragment"
	case ReturnClient:
		return "Client"
	case ReturnComponent:
		return "Component"
	}
	return "unknown"
}

// Param is one function parameter from a scanned signature.
type Param struct {
	Name string
	Type string
}

// Span is a half-open byte range into the scanned source.
type Span struct {
	Start int
	End   int
}

// ScannedFunc describes one markup-returning function found in a
// source file. BodySpan covers the content inside the outermost
// braces; ReturnTypeSpan covers the return type word itself.
type ScannedFunc struct {
	ReturnType     ReturnType
	ReturnTypeSpan Span
	BodySpan       Span
	// Name is empty when the signature could not be recovered.
	Name   string
	Params []Param
}

// BodySplit is the result of dividing a component body into a logic
// section and the markup inside `return (...)`.
type BodySplit struct {
	LogicSpan Span
	RsxSpan   Span
}

func isIdentChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

func skipSrcWhitespace(b []byte, pos int) int {
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

func skipSrcString(b []byte, start int) int {
	i := start + 1
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

func skipLineComment(b []byte, start int) int {
	i := start + 2
	for i < len(b) && b[i] != '\n' {
		i++
	}
	if i < len(b) {
		return i + 1
	}
	return i
}

func skipBlockComment(b []byte, start int) int {
	i := start + 2
	for i+1 < len(b) {
		if b[i] == '*' && b[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(b)
}

// findMatchingBrace returns the index of the `}` closing the `{` at
// start, skipping strings and comments, or -1.
func findMatchingBrace(b []byte, start int) int {
	depth := 1
	i := start + 1
	for i < len(b) {
		switch {
		case b[i] == '"':
			i = skipSrcString(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '/':
			i = skipLineComment(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '*':
			i = skipBlockComment(b, i)
			continue
		case b[i] == '{':
			depth++
		case b[i] == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

func findMatchingParen(b []byte, start int) int {
	depth := 1
	i := start + 1
	for i < len(b) {
		switch {
		case b[i] == '"':
			i = skipSrcString(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '/':
			i = skipLineComment(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '*':
			i = skipBlockComment(b, i)
			continue
		case b[i] == '(':
			depth++
		case b[i] == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

func matchReturnType(b []byte, pos int) (ReturnType, int, bool) {
	words := []struct {
		word string
		rt   ReturnType
	}{
		{"Html", ReturnHtml},
		{"Fragment", ReturnFragment},
		{"Client", ReturnClient},
		{"Component", ReturnComponent},
	}
	for _, w := range words {
		end := pos + len(w.word)
		if end <= len(b) && string(b[pos:end]) == w.word {
			// Reject longer identifiers like HtmlDocument.
			if end >= len(b) || !isIdentChar(b[end]) {
				return w.rt, end, true
			}
		}
	}
	return 0, 0, false
}

// ScanFunctions finds every function in source whose return type is
// Html, Fragment, Client, or Component.
func ScanFunctions(source string) []ScannedFunc {
	b := []byte(source)
	var results []ScannedFunc
	i := 0

	for i < len(b) {
		switch {
		case b[i] == '"':
			i = skipSrcString(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '/':
			i = skipLineComment(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '*':
			i = skipBlockComment(b, i)
			continue
		}

		if i+1 < len(b) && b[i] == '-' && b[i+1] == '>' {
			arrowStart := i
			wsEnd := skipSrcWhitespace(b, i+2)
			if rt, retEnd, ok := matchReturnType(b, wsEnd); ok {
				braceStart := skipSrcWhitespace(b, retEnd)
				if braceStart < len(b) && b[braceStart] == '{' {
					if braceEnd := findMatchingBrace(b, braceStart); braceEnd >= 0 {
						var name string
						var params []Param
						if rt == ReturnClient || rt == ReturnComponent || rt == ReturnFragment {
							name, params = extractFnSignature(source, arrowStart)
						} else {
							name, _ = extractFnSignature(source, arrowStart)
							params = nil
						}
						results = append(results, ScannedFunc{
							ReturnType:     rt,
							ReturnTypeSpan: Span{wsEnd, retEnd},
							BodySpan:       Span{braceStart + 1, braceEnd},
							Name:           name,
							Params:         params,
						})
						i = braceEnd + 1
						continue
					}
				}
			}
		}
		i++
	}
	return results
}

// extractFnSignature walks backward from the arrow over
// `name(params)` and recovers both parts.
func extractFnSignature(source string, arrowPos int) (string, []Param) {
	b := []byte(source[:arrowPos])

	pos := len(b)
	for pos > 0 && (b[pos-1] == ' ' || b[pos-1] == '\t' || b[pos-1] == '\n' || b[pos-1] == '\r') {
		pos--
	}
	if pos == 0 || b[pos-1] != ')' {
		return "", nil
	}

	closeParen := pos - 1
	depth := 1
	openParen := closeParen
	for openParen > 0 {
		openParen--
		switch b[openParen] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				goto found
			}
		}
	}
	return "", nil
found:

	params := parseParams(source[openParen+1 : closeParen])

	nameEnd := openParen
	for nameEnd > 0 && (b[nameEnd-1] == ' ' || b[nameEnd-1] == '\t') {
		nameEnd--
	}
	nameStart := nameEnd
	for nameStart > 0 && isIdentChar(b[nameStart-1]) {
		nameStart--
	}
	if nameStart == nameEnd {
		return "", params
	}
	return source[nameStart:nameEnd], params
}

func parseParams(paramsStr string) []Param {
	if strings.TrimSpace(paramsStr) == "" {
		return nil
	}
	var result []Param
	for _, part := range strings.Split(paramsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(part[:colon])
		ty := strings.TrimSpace(part[colon+1:])
		if name != "" && ty != "" {
			result = append(result, Param{Name: name, Type: ty})
		}
	}
	return result
}

// SplitComponentBody divides a component body into the logic section
// and the markup inside a depth-0 `return (...)`. The second result
// is false for imperative components with no such return.
func SplitComponentBody(source string, bodySpan Span) (BodySplit, bool) {
	body := source[bodySpan.Start:bodySpan.End]
	b := []byte(body)
	braceDepth := 0
	i := 0

	for i < len(b) {
		switch {
		case b[i] == '"':
			i = skipSrcString(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '/':
			i = skipLineComment(b, i)
			continue
		case b[i] == '/' && i+1 < len(b) && b[i+1] == '*':
			i = skipBlockComment(b, i)
			continue
		case b[i] == '{':
			braceDepth++
		case b[i] == '}':
			braceDepth--
		}

		if braceDepth == 0 && i+6 <= len(b) && string(b[i:i+6]) == "return" {
			if i > 0 && isIdentChar(b[i-1]) {
				i++
				continue
			}
			if i+6 < len(b) && isIdentChar(b[i+6]) {
				i++
				continue
			}
			j := skipSrcWhitespace(b, i+6)
			if j < len(b) && b[j] == '(' {
				if close := findMatchingParen(b, j); close >= 0 {
					return BodySplit{
						LogicSpan: Span{bodySpan.Start, bodySpan.Start + i},
						RsxSpan:   Span{bodySpan.Start + j + 1, bodySpan.Start + close},
					}, true
				}
			}
		}
		i++
	}
	return BodySplit{}, false
}
