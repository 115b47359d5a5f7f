package compiler

import (
	"fmt"
	"sort"
)

// Violation is one use of an API on the wrong side of the
// server/client boundary.
type Violation struct {
	Code    string
	Line    int
	Col     int
	Pattern string
	FnType  string
	FnName  string
	Message string
	Help    string
}

type patternPair struct {
	match   string
	display string
}

// Browser-only APIs, forbidden in Html and Fragment functions.
var clientOnlyAPIs = []patternPair{
	{"dom::query(", "dom::query"},
	{"dom::log(", "dom::log"},
	{".set_text(", ".set_text"},
	{".get_value(", ".get_value"},
	{".set_attr(", ".set_attr"},
	{".add_class(", ".add_class"},
	{".remove_class(", ".remove_class"},
	{"use_state(", "use_state"},
	{"state::get_i32(", "state::get_i32"},
	{"state::set_i32(", "state::set_i32"},
	{"state::get_f32(", "state::get_f32"},
	{"state::set_f32(", "state::set_f32"},
	{"state::get_str(", "state::get_str"},
	{"state::set_str(", "state::set_str"},
	{"state::fmt_i32(", "state::fmt_i32"},
	{"state::fmt_f32(", "state::fmt_f32"},
	{"dom::create(", "dom::create"},
	{"dom::append(", "dom::append"},
	{"dom::remove(", "dom::remove"},
	{"dom::set_html(", "dom::set_html"},
	{".toggle_class(", ".toggle_class"},
	{".get_attr(", ".get_attr"},
	{".remove_attr(", ".remove_attr"},
	{"dom::query_all_count(", "dom::query_all_count"},
	{"dom::query_all_get(", "dom::query_all_get"},
	{"use_ref(", "use_ref"},
	{"use_ref_el(", "use_ref_el"},
	{"ref::get_i32(", "ref::get_i32"},
	{"ref::set_i32(", "ref::set_i32"},
	{"ref::get_f32(", "ref::get_f32"},
	{"ref::set_f32(", "ref::set_f32"},
	{"use_effect(", "use_effect"},
	{"use_memo_i32(", "use_memo_i32"},
	{"use_memo_f32(", "use_memo_f32"},
}

// Server-only APIs, forbidden in Client and Component functions.
var serverOnlyAPIs = []patternPair{
	{"Response::", "Response::"},
	{"HtmlDocument::", "HtmlDocument::"},
	{"Metadata::new", "Metadata::new"},
	{"StatusCode::", "StatusCode::"},
	{"Headers::", "Headers::"},
}

// Component-only APIs, forbidden in plain Client functions.
var componentOnlyAPIs = []patternPair{
	{"use_state(", "use_state"},
	{"use_ref(", "use_ref"},
	{"use_ref_el(", "use_ref_el"},
	{"use_effect(", "use_effect"},
	{"use_memo_i32(", "use_memo_i32"},
	{"use_memo_f32(", "use_memo_f32"},
}

type violationKind int

const (
	clientInServer violationKind = iota
	serverInClient
	componentOnlyInClient
	topLevelForbidden
)

func (k violationKind) code() string {
	switch k {
	case clientInServer:
		return "E101"
	case serverInClient:
		return "E102"
	case componentOnlyInClient:
		return "E103"
	}
	return "E104"
}

// ValidateBoundaries checks each scanned function body against the
// API lists allowed for its function type.
func ValidateBoundaries(functions []ScannedFunc, source string) []Violation {
	var violations []Violation
	for _, fn := range functions {
		body := source[fn.BodySpan.Start:fn.BodySpan.End]
		switch fn.ReturnType {
		case ReturnHtml, ReturnFragment:
			scanBody(body, clientOnlyAPIs, fn.BodySpan.Start, source,
				fn.ReturnType.String(), fn.Name, clientInServer, &violations)
		case ReturnClient:
			scanBody(body, serverOnlyAPIs, fn.BodySpan.Start, source,
				"Client", fn.Name, serverInClient, &violations)
			scanBody(body, componentOnlyAPIs, fn.BodySpan.Start, source,
				"Client", fn.Name, componentOnlyInClient, &violations)
		case ReturnComponent:
			scanBody(body, serverOnlyAPIs, fn.BodySpan.Start, source,
				"Component", fn.Name, serverInClient, &violations)
		}
	}
	return violations
}

// ValidateTopLevel checks the regions outside any function body for
// runtime APIs that only make sense inside Component or Client
// functions.
func ValidateTopLevel(functions []ScannedFunc, source string) []Violation {
	var violations []Violation

	// Exclude whole declarations, not just bodies.
	type span struct{ start, end int }
	var spans []span
	for _, fn := range functions {
		fnStart := findFnKeywordStart(source, fn.ReturnTypeSpan.Start)
		fnEnd := fn.BodySpan.End + 1
		if fnEnd > len(source) {
			fnEnd = len(source)
		}
		spans = append(spans, span{fnStart, fnEnd})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	var gaps []span
	cursor := 0
	for _, s := range spans {
		if cursor < s.start {
			gaps = append(gaps, span{cursor, s.start})
		}
		if s.end > cursor {
			cursor = s.end
		}
	}
	if cursor < len(source) {
		gaps = append(gaps, span{cursor, len(source)})
	}

	for _, g := range gaps {
		scanBody(source[g.start:g.end], clientOnlyAPIs, g.start, source,
			"top-level", "", topLevelForbidden, &violations)
	}
	return violations
}

func findFnKeywordStart(source string, pos int) int {
	b := []byte(source)
	for i := pos; i > 0; i-- {
		if i >= 3 && string(b[i-3:i]) == "fn " {
			fnStart := i - 3
			if fnStart >= 4 && string(b[fnStart-4:fnStart]) == "pub " {
				return fnStart - 4
			}
			return fnStart
		}
	}
	return 0
}

func scanBody(body string, patterns []patternPair, bodyOffset int, source, fnType, fnName string, kind violationKind, violations *[]Violation) {
	b := []byte(body)
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

		matched := false
		for _, p := range patterns {
			if i+len(p.match) <= len(b) && string(b[i:i+len(p.match)]) == p.match {
				line, col := lineColAt(source, bodyOffset+i)
				msg, help := buildViolationMessage(p.display, fnType, fnName, kind)
				*violations = append(*violations, Violation{
					Code:    kind.code(),
					Line:    line,
					Col:     col,
					Pattern: p.display,
					FnType:  fnType,
					FnName:  fnName,
					Message: msg,
					Help:    help,
				})
				i += len(p.match)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		i++
	}
}

func buildViolationMessage(display, fnType, fnName string, kind violationKind) (string, string) {
	namePart := ""
	if fnName != "" {
		namePart = fmt.Sprintf(" `%s`", fnName)
	}
	switch kind {
	case clientInServer:
		msg := fmt.Sprintf("client-only API `%s` used in server function%s (-> %s)", display, namePart, fnType)
		help := fmt.Sprintf("`%s` only works in `-> Client` or `-> Component` functions.\n           Move this code to a Client function, or use server-side alternatives.", display)
		return msg, help
	case serverInClient:
		msg := fmt.Sprintf("server-only API `%s` used in client function%s (-> %s)", display, namePart, fnType)
		help := fmt.Sprintf("`%s` only works in server functions (-> Html, -> Fragment).\n           Client functions run in the browser and cannot use server APIs.", display)
		return msg, help
	case componentOnlyInClient:
		msg := "`use_state` can only be used in `-> Component` functions, not `-> Client`"
		help := "`use_state` initializes component state slots and requires a Component function.\n           Change `-> Client` to `-> Component`, or use `state::get_i32`/`state::set_i32`\n           to access state from a Client function."
		return msg, help
	default:
		msg := fmt.Sprintf("`%s` cannot be used at the top level of a source file", display)
		help := fmt.Sprintf("`%s` is a runtime API that must be called inside a function body.\n           Move it inside a `-> Component` or `-> Client` function.", display)
		return msg, help
	}
}

// lineColAt converts a byte offset into 1-based line and column.
func lineColAt(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
