package compiler

import (
	"fmt"
	"strings"
)

// WasmRsxOutput is the mount/update code generated for a Component
// markup body, plus the extern imports the emitted code requires.
type WasmRsxOutput struct {
	// MountCode runs once, on first render, and builds the DOM.
	MountCode string
	// UpdateCode runs every render and refreshes dynamic slots.
	UpdateCode string
	// RefSlotsUsed counts ref slots consumed for dynamic handles.
	RefSlotsUsed uint32

	NeedsCreate     bool
	NeedsCreateText bool
	NeedsAppend     bool
	NeedsAddClass   bool
	NeedsSetAttr    bool
	NeedsSetText    bool
	NeedsMountPoint bool
	NeedsIsMounted  bool
	NeedsRefGetI32  bool
	NeedsRefSetI32  bool
	NeedsFmtI32     bool
	NeedsFmtF32     bool
}

type rsxWalker struct {
	mount          strings.Builder
	update         strings.Builder
	nodeCounter    uint32
	dynSlotCounter uint32
	refSlotOffset  uint32
	out            *WasmRsxOutput
}

// GenerateComponentRsx emits mount and update code for a component's
// markup body. refSlotOffset is the first slot free after the user's
// own use_ref calls; dynamic expression handles start there.
func GenerateComponentRsx(nodes []*Node, componentID, refSlotOffset uint32) *WasmRsxOutput {
	out := &WasmRsxOutput{NeedsMountPoint: true, NeedsIsMounted: true}
	w := &rsxWalker{refSlotOffset: refSlotOffset, out: out}

	mpVar := "__rsx_mp"
	fmt.Fprintf(&w.mount, "let %s = __volki_component_mount_point(%d);\n", mpVar, componentID)

	for _, node := range nodes {
		w.walkNode(node, mpVar)
	}

	out.MountCode = w.mount.String()
	out.UpdateCode = w.update.String()
	out.RefSlotsUsed = w.dynSlotCounter
	return out
}

func (w *rsxWalker) walkNode(node *Node, parentVar string) {
	switch node.Kind {
	case NodeElement:
		w.walkElement(node, parentVar)
	case NodeText:
		w.walkText(node.Text, parentVar)
	case NodeExpr:
		w.walkExpr(node.Expr, parentVar)
	case NodeCondAnd, NodeTernary:
		// Conditionals inside component markup are deferred.
	}
}

func (w *rsxWalker) walkElement(node *Node, parentVar string) {
	n := w.nodeCounter
	w.nodeCounter++
	varName := fmt.Sprintf("__rn%d", n)

	fmt.Fprintf(&w.mount, "let %s = __volki_dom_create(\"%s\".as_ptr() as i32, %d);\n",
		varName, node.Tag, len(node.Tag))
	w.out.NeedsCreate = true

	for _, attr := range node.Attrs {
		if attr.IsExpr {
			if isEventAttr(attr.Name) {
				w.emitSetAttr(varName, "data-volki-"+attr.Name, attr.Value)
			}
			// Non-event expression attrs are deferred.
			continue
		}
		if attr.Name == "class" {
			for _, cls := range strings.Split(attr.Value, " ") {
				if cls == "" {
					continue
				}
				fmt.Fprintf(&w.mount, "__volki_dom_add_class(%s, \"%s\".as_ptr() as i32, %d);\n",
					varName, cls, len(cls))
				w.out.NeedsAddClass = true
			}
			continue
		}
		w.emitSetAttr(varName, attr.Name, attr.Value)
	}

	for _, child := range node.Children {
		w.walkNode(child, varName)
	}

	fmt.Fprintf(&w.mount, "__volki_dom_append(%s, %s);\n", parentVar, varName)
	w.out.NeedsAppend = true
}

func (w *rsxWalker) walkText(text, parentVar string) {
	n := w.nodeCounter
	w.nodeCounter++
	varName := fmt.Sprintf("__rt%d", n)

	fmt.Fprintf(&w.mount, "let %s = __volki_dom_create_text(\"%s\".as_ptr() as i32, %d);\n",
		varName, text, len(text))
	w.out.NeedsCreateText = true

	fmt.Fprintf(&w.mount, "__volki_dom_append(%s, %s);\n", parentVar, varName)
	w.out.NeedsAppend = true
}

// walkExpr mounts an empty text placeholder, stores its handle in a
// ref slot, and emits update code that refreshes the text from the
// expression on every render.
func (w *rsxWalker) walkExpr(expr, parentVar string) {
	slot := w.dynSlotCounter
	w.dynSlotCounter++
	refSlot := w.refSlotOffset + slot

	n := w.nodeCounter
	w.nodeCounter++
	varName := fmt.Sprintf("__rd%d", n)

	fmt.Fprintf(&w.mount, "let %s = __volki_dom_create_text(\"\".as_ptr() as i32, 0);\n", varName)
	w.out.NeedsCreateText = true

	fmt.Fprintf(&w.mount, "__volki_dom_append(%s, %s);\n", parentVar, varName)
	w.out.NeedsAppend = true

	fmt.Fprintf(&w.mount, "__volki_ref_set_i32(%d, %s);\n", refSlot, varName)
	w.out.NeedsRefSetI32 = true

	dynVar := fmt.Sprintf("__dyn%d", slot)
	fmt.Fprintf(&w.update, "let %s = __volki_ref_get_i32(%d);\n", dynVar, refSlot)
	w.out.NeedsRefGetI32 = true

	w.generateExprUpdate(dynVar, expr, slot)
}

func (w *rsxWalker) generateExprUpdate(handleVar, expr string, slot uint32) {
	expr = strings.TrimSpace(expr)

	if inner, ok := extractFmtCall(expr, "state::fmt_i32("); ok {
		fb := fmt.Sprintf("__rfb%d", slot)
		fl := fmt.Sprintf("__rfl%d", slot)
		fmt.Fprintf(&w.update, "let %s = __volki_alloc(20);\n", fb)
		fmt.Fprintf(&w.update, "let %s = __volki_state_fmt_i32(%s, %s, 20);\n", fl, inner, fb)
		fmt.Fprintf(&w.update, "__volki_dom_set_text(%s, %s, %s);\n", handleVar, fb, fl)
		w.out.NeedsSetText = true
		w.out.NeedsFmtI32 = true
		return
	}

	if inner, ok := extractFmtCall(expr, "state::fmt_f32("); ok {
		fb := fmt.Sprintf("__rfb%d", slot)
		fl := fmt.Sprintf("__rfl%d", slot)
		fmt.Fprintf(&w.update, "let %s = __volki_alloc(20);\n", fb)
		fmt.Fprintf(&w.update, "let %s = __volki_state_fmt_f32(%s, %s, 20);\n", fl, inner, fb)
		fmt.Fprintf(&w.update, "__volki_dom_set_text(%s, %s, %s);\n", handleVar, fb, fl)
		w.out.NeedsSetText = true
		w.out.NeedsFmtF32 = true
		return
	}

	if len(expr) >= 2 && expr[0] == '"' && expr[len(expr)-1] == '"' {
		inner := expr[1 : len(expr)-1]
		fmt.Fprintf(&w.update, "__volki_dom_set_text(%s, \"%s\".as_ptr() as i32, %d);\n",
			handleVar, inner, len(inner))
		w.out.NeedsSetText = true
		return
	}

	// General expression, treated as a string slice.
	fmt.Fprintf(&w.update, "__volki_dom_set_text(%s, (%s).as_ptr() as i32, (%s).len() as i32);\n",
		handleVar, expr, expr)
	w.out.NeedsSetText = true
}

func (w *rsxWalker) emitSetAttr(varName, attrName, attrValue string) {
	fmt.Fprintf(&w.mount, "__volki_dom_set_attr(%s, \"%s\".as_ptr() as i32, %d, \"%s\".as_ptr() as i32, %d);\n",
		varName, attrName, len(attrName), attrValue, len(attrValue))
	w.out.NeedsSetAttr = true
}

// extractFmtCall pulls the argument out of `prefix...arg...)` when
// expr is exactly one such call.
func extractFmtCall(expr, prefix string) (string, bool) {
	if !strings.HasPrefix(expr, prefix) {
		return "", false
	}
	depth := 1
	for i := len(prefix); i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(expr[len(prefix):i]), true
			}
		}
	}
	return "", false
}
