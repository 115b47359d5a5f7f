package compiler

import (
	"strings"
	"testing"
)

func TestScanHtmlFunction(t *testing.T) {
	source := `use crate::prelude::*;

pub fn page(_req: &Request) -> Html {
    <div>"hi"</div>
}
`
	fns := ScanFunctions(source)
	if len(fns) != 1 {
		t.Fatalf("got %d functions", len(fns))
	}
	fn := fns[0]
	if fn.ReturnType != ReturnHtml {
		t.Fatalf("return type = %v", fn.ReturnType)
	}
	if fn.Name != "page" {
		t.Fatalf("name = %q", fn.Name)
	}
	body := source[fn.BodySpan.Start:fn.BodySpan.End]
	if strings.TrimSpace(body) != `<div>"hi"</div>` {
		t.Fatalf("body = %q", body)
	}
	rt := source[fn.ReturnTypeSpan.Start:fn.ReturnTypeSpan.End]
	if rt != "Html" {
		t.Fatalf("return type span = %q", rt)
	}
}

func TestScanAllReturnTypes(t *testing.T) {
	source := `
pub fn a() -> Html { <p>"a"</p> }
pub fn b() -> Fragment { <p>"b"</p> }
pub fn c() -> Client { dom::log("c"); }
pub fn d() -> Component { let x = use_state(0); return (<p>"d"</p>); }
`
	fns := ScanFunctions(source)
	if len(fns) != 4 {
		t.Fatalf("got %d functions", len(fns))
	}
	want := []ReturnType{ReturnHtml, ReturnFragment, ReturnClient, ReturnComponent}
	for i, rt := range want {
		if fns[i].ReturnType != rt {
			t.Fatalf("fn %d return type = %v, want %v", i, fns[i].ReturnType, rt)
		}
	}
}

func TestScanRejectsLongerIdentifiers(t *testing.T) {
	source := `pub fn doc() -> HtmlDocument { build() }`
	fns := ScanFunctions(source)
	if len(fns) != 0 {
		t.Fatalf("HtmlDocument must not scan as Html: %+v", fns)
	}
}

func TestScanFragmentParams(t *testing.T) {
	source := `pub fn counter(show_help: bool, compact: bool) -> Fragment { <p>"x"</p> }`
	fns := ScanFunctions(source)
	if len(fns) != 1 {
		t.Fatalf("got %d functions", len(fns))
	}
	params := fns[0].Params
	if len(params) != 2 {
		t.Fatalf("params = %+v", params)
	}
	if params[0].Name != "show_help" || params[0].Type != "bool" {
		t.Fatalf("param 0 = %+v", params[0])
	}
	if params[1].Name != "compact" || params[1].Type != "bool" {
		t.Fatalf("param 1 = %+v", params[1])
	}
}

func TestScanSkipsStringsAndComments(t *testing.T) {
	source := `
// not a fn: -> Html {
/* also not: -> Fragment { */
const S: &str = "-> Client {";

pub fn page() -> Html { <p>"x"</p> }
`
	fns := ScanFunctions(source)
	if len(fns) != 1 || fns[0].ReturnType != ReturnHtml {
		t.Fatalf("fns = %+v", fns)
	}
}

func TestScanNestedBracesInBody(t *testing.T) {
	source := `pub fn page() -> Html {
    <div>{format(Value { x: 1 })}</div>
}
after`
	fns := ScanFunctions(source)
	if len(fns) != 1 {
		t.Fatalf("got %d functions", len(fns))
	}
	body := source[fns[0].BodySpan.Start:fns[0].BodySpan.End]
	if !strings.Contains(body, "Value { x: 1 }") {
		t.Fatalf("body = %q", body)
	}
	if strings.Contains(body, "after") {
		t.Fatalf("body overran closing brace: %q", body)
	}
}

func TestSplitComponentBody(t *testing.T) {
	source := `pub fn counter() -> Component {
    let count = use_state(0);
    return (
        <div>"x"</div>
    );
}`
	fns := ScanFunctions(source)
	if len(fns) != 1 {
		t.Fatalf("got %d functions", len(fns))
	}
	split, ok := SplitComponentBody(source, fns[0].BodySpan)
	if !ok {
		t.Fatal("expected a markup return")
	}
	logic := source[split.LogicSpan.Start:split.LogicSpan.End]
	if !strings.Contains(logic, "use_state(0)") {
		t.Fatalf("logic = %q", logic)
	}
	rsx := source[split.RsxSpan.Start:split.RsxSpan.End]
	if strings.TrimSpace(rsx) != `<div>"x"</div>` {
		t.Fatalf("rsx = %q", rsx)
	}
}

func TestSplitComponentBodyImperative(t *testing.T) {
	source := `pub fn ticker() -> Component {
    use_effect(0);
}`
	fns := ScanFunctions(source)
	_, ok := SplitComponentBody(source, fns[0].BodySpan)
	if ok {
		t.Fatal("imperative component must not split")
	}
}

func TestSplitComponentBodyIgnoresNestedReturn(t *testing.T) {
	source := `pub fn c() -> Component {
    if cond { return (<p>"early"</p>); }
    return (<div>"main"</div>);
}`
	fns := ScanFunctions(source)
	split, ok := SplitComponentBody(source, fns[0].BodySpan)
	if !ok {
		t.Fatal("expected a split")
	}
	rsx := source[split.RsxSpan.Start:split.RsxSpan.End]
	if strings.TrimSpace(rsx) != `<div>"main"</div>` {
		t.Fatalf("depth-0 return must win: %q", rsx)
	}
}

func TestPascalToSnake(t *testing.T) {
	cases := map[string]string{
		"Counter":        "counter",
		"SidebarContent": "sidebar_content",
		"A":              "a",
		"MyHTTPWidget":   "my_h_t_t_p_widget",
	}
	for in, want := range cases {
		if got := PascalToSnake(in); got != want {
			t.Errorf("PascalToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
