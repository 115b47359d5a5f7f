package compiler

import (
	"strings"
	"testing"
)

func TestRsxStaticElement(t *testing.T) {
	nodes := []*Node{elem("div",
		[]Attr{{Name: "class", Value: "counter"}},
		textNode("hello"))}
	out := GenerateComponentRsx(nodes, 0, 0)

	for _, want := range []string{
		`__volki_dom_create("div"`,
		"__volki_dom_add_class(",
		`"counter"`,
		`__volki_dom_create_text("hello"`,
		"__volki_dom_append(",
	} {
		if !strings.Contains(out.MountCode, want) {
			t.Errorf("mount missing %q:\n%s", want, out.MountCode)
		}
	}
	if out.UpdateCode != "" {
		t.Fatalf("static markup must not emit update code:\n%s", out.UpdateCode)
	}
	if out.RefSlotsUsed != 0 {
		t.Fatalf("RefSlotsUsed = %d, want 0", out.RefSlotsUsed)
	}
	if !out.NeedsCreate || !out.NeedsCreateText || !out.NeedsAppend || !out.NeedsAddClass {
		t.Fatal("expected create, create_text, append, add_class externs")
	}
}

func TestRsxDynamicExpression(t *testing.T) {
	nodes := []*Node{elem("span", nil, exprNode("state::fmt_i32(count)"))}
	out := GenerateComponentRsx(nodes, 0, 0)

	if !strings.Contains(out.MountCode, `__volki_dom_create_text("".as_ptr()`) {
		t.Fatalf("mount must create an empty placeholder:\n%s", out.MountCode)
	}
	if !strings.Contains(out.MountCode, "__volki_ref_set_i32(0,") {
		t.Fatalf("mount must store the handle in slot 0:\n%s", out.MountCode)
	}

	for _, want := range []string{
		"__volki_ref_get_i32(0)",
		"__volki_alloc(20)",
		"__volki_state_fmt_i32(count,",
		"__volki_dom_set_text(",
	} {
		if !strings.Contains(out.UpdateCode, want) {
			t.Errorf("update missing %q:\n%s", want, out.UpdateCode)
		}
	}
	if out.RefSlotsUsed != 1 {
		t.Fatalf("RefSlotsUsed = %d, want 1", out.RefSlotsUsed)
	}
	if !out.NeedsFmtI32 || !out.NeedsSetText {
		t.Fatal("expected fmt_i32 and set_text externs")
	}
}

func TestRsxEventAttr(t *testing.T) {
	nodes := []*Node{elem("button",
		[]Attr{{Name: "onclick", Value: "on_click", IsExpr: true}},
		textNode("+"))}
	out := GenerateComponentRsx(nodes, 0, 0)

	for _, want := range []string{
		"__volki_dom_set_attr(",
		"data-volki-onclick",
		"on_click",
	} {
		if !strings.Contains(out.MountCode, want) {
			t.Errorf("mount missing %q:\n%s", want, out.MountCode)
		}
	}
}

func TestRsxRefSlotOffset(t *testing.T) {
	nodes := []*Node{elem("span", nil, exprNode("state::fmt_i32(count)"))}
	out := GenerateComponentRsx(nodes, 0, 3)

	if !strings.Contains(out.MountCode, "__volki_ref_set_i32(3,") {
		t.Fatalf("dynamic slot must start after user refs:\n%s", out.MountCode)
	}
	if !strings.Contains(out.UpdateCode, "__volki_ref_get_i32(3)") {
		t.Fatalf("update must read the offset slot:\n%s", out.UpdateCode)
	}
}

func TestRsxStringLiteralExpr(t *testing.T) {
	nodes := []*Node{elem("span", nil, exprNode(`"hello world"`))}
	out := GenerateComponentRsx(nodes, 0, 0)

	if !strings.Contains(out.UpdateCode, `"hello world".as_ptr()`) {
		t.Fatalf("literal must pass through directly:\n%s", out.UpdateCode)
	}
}

func TestRsxMultipleDynamicSlots(t *testing.T) {
	nodes := []*Node{elem("div", nil,
		exprNode("state::fmt_i32(a)"),
		textNode(" + "),
		exprNode("state::fmt_i32(b)"))}
	out := GenerateComponentRsx(nodes, 0, 0)

	if out.RefSlotsUsed != 2 {
		t.Fatalf("RefSlotsUsed = %d, want 2", out.RefSlotsUsed)
	}
	for _, want := range []string{"__volki_ref_set_i32(0,", "__volki_ref_set_i32(1,"} {
		if !strings.Contains(out.MountCode, want) {
			t.Errorf("mount missing %q:\n%s", want, out.MountCode)
		}
	}
	for _, want := range []string{"__volki_ref_get_i32(0)", "__volki_ref_get_i32(1)"} {
		if !strings.Contains(out.UpdateCode, want) {
			t.Errorf("update missing %q:\n%s", want, out.UpdateCode)
		}
	}
}

func TestRsxGeneralExpr(t *testing.T) {
	nodes := []*Node{elem("span", nil, exprNode("label"))}
	out := GenerateComponentRsx(nodes, 0, 0)

	if !strings.Contains(out.UpdateCode, "(label).as_ptr() as i32, (label).len() as i32") {
		t.Fatalf("general expression must be treated as a string slice:\n%s", out.UpdateCode)
	}
}

func TestRsxMountPoint(t *testing.T) {
	out := GenerateComponentRsx([]*Node{textNode("x")}, 7, 0)
	if !strings.Contains(out.MountCode, "__volki_component_mount_point(7)") {
		t.Fatalf("mount must resolve the component mount point:\n%s", out.MountCode)
	}
	if !out.NeedsMountPoint || !out.NeedsIsMounted {
		t.Fatal("mount point externs must always be flagged")
	}
}
