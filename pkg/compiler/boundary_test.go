package compiler

import (
	"strings"
	"testing"
)

func TestBoundaryClientAPIInServerFunction(t *testing.T) {
	source := `pub fn page(_req: &Request) -> Html {
    dom::log("nope");
    <div>"x"</div>
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 1 {
		t.Fatalf("got %d violations: %+v", len(violations), violations)
	}
	v := violations[0]
	if v.Pattern != "dom::log" {
		t.Fatalf("pattern = %q", v.Pattern)
	}
	if v.Message != "client-only API `dom::log` used in server function `page` (-> Html)" {
		t.Fatalf("message = %q", v.Message)
	}
	if v.Line != 2 {
		t.Fatalf("line = %d", v.Line)
	}
}

func TestBoundaryServerAPIInClientFunction(t *testing.T) {
	source := `pub fn on_click() -> Client {
    let r = Response::new(StatusCode::OK);
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 2 {
		t.Fatalf("got %d violations: %+v", len(violations), violations)
	}
	if violations[0].Pattern != "Response::" {
		t.Fatalf("pattern = %q", violations[0].Pattern)
	}
	if !strings.Contains(violations[0].Message, "server-only API `Response::` used in client function `on_click` (-> Client)") {
		t.Fatalf("message = %q", violations[0].Message)
	}
}

func TestBoundaryUseStateInClientFunction(t *testing.T) {
	source := `pub fn on_click() -> Client {
    let s = use_state(0);
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 1 {
		t.Fatalf("got %d violations: %+v", len(violations), violations)
	}
	want := "`use_state` can only be used in `-> Component` functions, not `-> Client`"
	if violations[0].Message != want {
		t.Fatalf("message = %q", violations[0].Message)
	}
}

func TestBoundaryUseStateAllowedInComponent(t *testing.T) {
	source := `pub fn counter() -> Component {
    let s = use_state(0);
    return (<p>"x"</p>);
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}

func TestBoundaryStateAccessAllowedInClient(t *testing.T) {
	source := `pub fn on_click() -> Client {
    state::set_i32(0, state::get_i32(0) + 1);
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}

func TestBoundarySkipsStringsAndComments(t *testing.T) {
	source := `pub fn page() -> Html {
    // dom::log("comment")
    /* dom::query("block") */
    let s = "dom::log(inside string)";
    <div>"x"</div>
}
`
	fns := ScanFunctions(source)
	violations := ValidateBoundaries(fns, source)
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}

func TestBoundaryTopLevelMisuse(t *testing.T) {
	source := `use crate::prelude::*;

let bad = use_state(0);

pub fn page() -> Html {
    <div>"x"</div>
}
`
	fns := ScanFunctions(source)
	violations := ValidateTopLevel(fns, source)
	if len(violations) != 1 {
		t.Fatalf("got %d violations: %+v", len(violations), violations)
	}
	v := violations[0]
	if v.Message != "`use_state` cannot be used at the top level of a source file" {
		t.Fatalf("message = %q", v.Message)
	}
	if v.FnType != "top-level" {
		t.Fatalf("fn type = %q", v.FnType)
	}
	if v.Line != 3 {
		t.Fatalf("line = %d", v.Line)
	}
}

func TestBoundaryTopLevelIgnoresFunctionBodies(t *testing.T) {
	source := `pub fn counter() -> Component {
    let s = use_state(0);
    return (<p>"x"</p>);
}
`
	fns := ScanFunctions(source)
	violations := ValidateTopLevel(fns, source)
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %+v", violations)
	}
}
