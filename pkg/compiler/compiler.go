package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/volki-dev/volki/pkg/style"
)

// ClientOutput carries the browser-side artifacts produced for a
// source file with Client or Component functions.
type ClientOutput struct {
	// WasmRs is the source for the client WASM module.
	WasmRs string
	// GlueJS is the loader script that instantiates the module.
	GlueJS string
}

// CompileWarning is a non-fatal finding attached to a compile result.
type CompileWarning struct {
	File    string
	Line    int
	Col     int
	Message string
}

// SourceOutput is the full result of compiling one source string.
type SourceOutput struct {
	ServerRs string
	Client   *ClientOutput
	Warnings []CompileWarning
}

// CompileResult describes one compiled file within a directory build.
type CompileResult struct {
	SourcePath string
	OutputPath string
	Warnings   []CompileWarning
	Client     *ClientOutput
}

// CompileSource compiles a source string and returns the server
// output only.
func CompileSource(source, file string) (string, error) {
	out, err := CompileSourceFull(source, file)
	if err != nil {
		return "", err
	}
	return out.ServerRs, nil
}

// CompileSourceFull runs the whole pipeline on one source string:
// scan, boundary validation, parse, component resolution, style
// generation, and codegen for both server and client output.
func CompileSourceFull(source, file string) (*SourceOutput, error) {
	functions := ScanFunctions(source)

	// Boundary and top-level misuse checks run before any parsing.
	violations := ValidateBoundaries(functions, source)
	violations = append(violations, ValidateTopLevel(functions, source)...)
	if len(violations) > 0 {
		var msg strings.Builder
		for idx, v := range violations {
			if idx > 0 {
				msg.WriteString("\n\n")
			}
			fmt.Fprintf(&msg, "error: %s\n  --> %s:%d:%d\n   |\n   = help: %s",
				v.Message, file, v.Line, v.Col, v.Help)
		}
		first := violations[0]
		return nil, &CompileError{Code: first.Code, File: file, Line: first.Line, Col: first.Col, Message: msg.String()}
	}

	if len(functions) == 0 {
		return &SourceOutput{ServerRs: source}, nil
	}

	var clientFns, componentFns []ScannedFunc
	for _, fn := range functions {
		switch fn.ReturnType {
		case ReturnClient:
			clientFns = append(clientFns, fn)
		case ReturnComponent:
			componentFns = append(componentFns, fn)
		}
	}

	// First pass: parse every Html/Fragment body.
	parsedBodies := make([][]*Node, len(functions))
	for i, fn := range functions {
		if fn.ReturnType == ReturnClient || fn.ReturnType == ReturnComponent {
			continue
		}
		body := source[fn.BodySpan.Start:fn.BodySpan.End]
		tokens, err := Tokenize(strings.TrimSpace(body), file)
		if err != nil {
			return nil, err
		}
		nodes, err := Parse(tokens, file)
		if err != nil {
			return nil, err
		}
		parsedBodies[i] = nodes
	}

	componentMap := CollectFragmentComponents(source, file, functions)

	// Classes are collected before component resolution so component
	// children contribute theirs too.
	var allClasses []string
	for _, nodes := range parsedBodies {
		allClasses = append(allClasses, CollectClasses(nodes)...)
	}

	// Parse markup from Component functions with a `return (...)`.
	componentRsxBodies := make([][]*Node, len(componentFns))
	hasRsxComponents := false
	var rsxComponentNames []string
	for i, fn := range componentFns {
		split, ok := SplitComponentBody(source, fn.BodySpan)
		if !ok {
			continue
		}
		rsxSrc := source[split.RsxSpan.Start:split.RsxSpan.End]
		tokens, err := Tokenize(strings.TrimSpace(rsxSrc), file)
		if err != nil {
			return nil, err
		}
		nodes, err := Parse(tokens, file)
		if err != nil {
			return nil, err
		}
		allClasses = append(allClasses, CollectClasses(nodes)...)
		componentRsxBodies[i] = nodes
		hasRsxComponents = true
		if fn.Name != "" {
			rsxComponentNames = append(rsxComponentNames, fn.Name)
		}
	}

	if err := ValidateComponentResolution(source, file, functions, parsedBodies, componentMap, rsxComponentNames); err != nil {
		return nil, err
	}

	// Resolve component tags into function call expressions.
	for i, fn := range functions {
		if parsedBodies[i] == nil {
			continue
		}
		if fn.ReturnType == ReturnHtml || fn.ReturnType == ReturnFragment {
			parsedBodies[i] = resolveComponents(parsedBodies[i], componentMap, rsxComponentNames)
		}
	}

	styleCfg := style.LoadForSourceFile(file)
	styleReport := style.GenerateCSSWithConfig(allClasses, &styleCfg)
	warnings := compileWarningsFromStyle(file, source, &styleReport)
	if styleCfg.UnknownClassPolicy == style.PolicyError && len(styleReport.Diagnostics) > 0 {
		first := styleReport.Diagnostics[0]
		line, col := findClassOccurrence(source, first.ClassName)
		return nil, &CompileError{
			Code:    "E301",
			File:    file,
			Line:    line,
			Col:     col,
			Message: fmt.Sprintf("style error: %s", first.Message),
		}
	}
	css := styleReport.CSS

	hasClientCode := len(clientFns) > 0 || len(componentFns) > 0

	// Second pass: rebuild the server source around compiled bodies.
	var output strings.Builder
	output.Grow(len(source) * 2)
	lastPos := 0

	for i, fn := range functions {
		if fn.ReturnType == ReturnClient || fn.ReturnType == ReturnComponent {
			fnStart := findFnStart(source, fn.ReturnTypeSpan.Start)
			output.WriteString(source[lastPos:fnStart])
			lastPos = fn.BodySpan.End + 1
			if lastPos < len(source) && source[lastPos] == '\n' {
				lastPos++
			}
			continue
		}

		output.WriteString(source[lastPos:fn.ReturnTypeSpan.Start])

		switch fn.ReturnType {
		case ReturnHtml:
			output.WriteString("HtmlDocument")
		case ReturnFragment:
			output.WriteString("Vec<HtmlNode>")
		}

		output.WriteString(source[fn.ReturnTypeSpan.End:fn.BodySpan.Start])

		var compiledBody string
		switch fn.ReturnType {
		case ReturnHtml:
			glueURL := ""
			if hasClientCode {
				glueURL = fmt.Sprintf("/wasm/%s_glue.js", fileStem(file))
			}
			compiledBody = GenerateHtmlFnStyled(parsedBodies[i], css, glueURL)
		case ReturnFragment:
			compiledBody = GenerateFragmentFn(parsedBodies[i])
		}

		output.WriteString("\n    ")
		output.WriteString(compiledBody)

		lastPos = fn.BodySpan.End
	}
	output.WriteString(source[lastPos:])

	var client *ClientOutput
	if hasClientCode {
		stem := fileStem(file)
		wasmURL := fmt.Sprintf("/wasm/%s_client.wasm", stem)
		client = &ClientOutput{
			WasmRs: generateWasmModule(source, componentFns, componentRsxBodies),
			GlueJS: generateGlueJS(wasmURL, hasRsxComponents),
		}
	}

	return &SourceOutput{
		ServerRs: output.String(),
		Client:   client,
		Warnings: warnings,
	}, nil
}

// CollectSourceClasses scans one source string and returns every
// literal utility class in its RSX bodies, document and component
// functions alike.
func CollectSourceClasses(source, file string) ([]string, error) {
	functions := ScanFunctions(source)
	var classes []string
	for _, fn := range functions {
		var span Span
		switch fn.ReturnType {
		case ReturnHtml, ReturnFragment:
			span = fn.BodySpan
		case ReturnComponent:
			split, ok := SplitComponentBody(source, fn.BodySpan)
			if !ok {
				continue
			}
			span = split.RsxSpan
		default:
			continue
		}
		tokens, err := Tokenize(strings.TrimSpace(source[span.Start:span.End]), file)
		if err != nil {
			return nil, err
		}
		nodes, err := Parse(tokens, file)
		if err != nil {
			return nil, err
		}
		classes = append(classes, CollectClasses(nodes)...)
	}
	return classes, nil
}

// CollectClasses gathers literal class attribute values from a parsed
// markup tree, split on whitespace. Expression-valued class attrs are
// skipped, their content is not statically known.
func CollectClasses(nodes []*Node) []string {
	var out []string
	collectClassesInto(nodes, &out)
	return out
}

func collectClassesInto(nodes []*Node, out *[]string) {
	for _, node := range nodes {
		switch node.Kind {
		case NodeElement:
			for _, attr := range node.Attrs {
				if attr.Name != "class" || attr.IsExpr {
					continue
				}
				for _, cls := range strings.Fields(attr.Value) {
					*out = append(*out, cls)
				}
			}
			collectClassesInto(node.Children, out)
		case NodeCondAnd:
			collectClassesInto(node.Children, out)
		case NodeTernary:
			collectClassesInto(node.IfTrue, out)
			collectClassesInto(node.IfFalse, out)
		}
	}
}

// isComponentTag reports whether a tag names a user component rather
// than a built-in element or special tag.
func isComponentTag(tag string) bool {
	if tag == "" || tag == "Style" || tag == "Head" || tag == "Stylesheet" {
		return false
	}
	return tag[0] >= 'A' && tag[0] <= 'Z'
}

// resolveComponents rewrites component tags into function call
// expressions, and component tags backed by browser-rendered
// components into mount-point divs.
func resolveComponents(nodes []*Node, components []componentInfo, rsxComponents []string) []*Node {
	var out []*Node
	for _, node := range nodes {
		switch node.Kind {
		case NodeElement:
			if isComponentTag(node.Tag) {
				snake := PascalToSnake(node.Tag)

				if containsStr(rsxComponents, snake) {
					mountExpr := fmt.Sprintf(
						"div().attr(\"data-volki-component\", \"%s\").into_node()", snake)
					out = append(out, &Node{Kind: NodeExpr, Expr: mountExpr})
					continue
				}

				resolved := false
				for _, c := range components {
					if c.Name == snake {
						call := buildComponentCall(snake, c.Params, node.Attrs, node.Children, components, rsxComponents)
						out = append(out, &Node{Kind: NodeExpr, Expr: call})
						resolved = true
						break
					}
				}
				if resolved {
					continue
				}
			}
			out = append(out, &Node{
				Kind:        NodeElement,
				Tag:         node.Tag,
				Attrs:       node.Attrs,
				Children:    resolveComponents(node.Children, components, rsxComponents),
				SelfClosing: node.SelfClosing,
			})
		case NodeCondAnd:
			out = append(out, &Node{
				Kind:      NodeCondAnd,
				Condition: node.Condition,
				Children:  resolveComponents(node.Children, components, rsxComponents),
			})
		case NodeTernary:
			out = append(out, &Node{
				Kind:      NodeTernary,
				Condition: node.Condition,
				IfTrue:    resolveComponents(node.IfTrue, components, rsxComponents),
				IfFalse:   resolveComponents(node.IfFalse, components, rsxComponents),
			})
		default:
			out = append(out, node)
		}
	}
	return out
}

// buildComponentCall maps tag attributes onto function parameters in
// declaration order. A `children` parameter receives the compiled
// children block.
func buildComponentCall(fnName string, params []Param, attrs []Attr, children []*Node, components []componentInfo, rsxComponents []string) string {
	var call strings.Builder
	call.WriteString(fnName)
	call.WriteByte('(')

	first := true
	for _, param := range params {
		if param.Name == "children" {
			if !first {
				call.WriteString(", ")
			}
			first = false
			if len(children) == 0 {
				call.WriteString("Vec::new()")
			} else {
				resolved := resolveComponents(children, components, rsxComponents)
				call.WriteString(GenerateChildrenExpr(resolved))
			}
			continue
		}

		if !first {
			call.WriteString(", ")
		}
		first = false

		for _, attr := range attrs {
			if attr.Name != param.Name {
				continue
			}
			if attr.IsExpr {
				call.WriteString(attr.Value)
			} else {
				call.WriteByte('"')
				call.WriteString(attr.Value)
				call.WriteByte('"')
			}
			break
		}
	}

	call.WriteByte(')')
	return call.String()
}

func compileWarningsFromStyle(file, source string, report *style.Report) []CompileWarning {
	var out []CompileWarning
	for _, d := range report.Diagnostics {
		line, col := findClassOccurrence(source, d.ClassName)
		out = append(out, CompileWarning{
			File:    file,
			Line:    line,
			Col:     col,
			Message: d.Message,
		})
	}
	return out
}

func findClassOccurrence(source, className string) (int, int) {
	idx := strings.Index(source, className)
	if idx < 0 {
		return 0, 0
	}
	return lineColAt(source, idx)
}

// findFnStart walks backward from the return type to the start of the
// `fn` or `pub fn` declaration.
func findFnStart(source string, pos int) int {
	return findFnKeywordStart(source, pos)
}

func fileStem(file string) string {
	stem := filepath.Base(file)
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	if stem == "" || stem == "." {
		return "module"
	}
	return stem
}

// generateWasmModule emits the client WASM module source. Each
// component with a markup body exports mount and update entry points
// built from its RSX tree; dynamic expression handles live in ref
// slots after the component's own use_ref slots.
func generateWasmModule(source string, componentFns []ScannedFunc, componentRsxBodies [][]*Node) string {
	var out strings.Builder
	out.WriteString("#![no_std]\n#![no_main]\n\n")

	for i, fn := range componentFns {
		nodes := componentRsxBodies[i]
		if nodes == nil {
			continue
		}
		name := fn.Name
		if name == "" {
			name = fmt.Sprintf("component_%d", i)
		}
		refOffset := countUserRefSlots(source, fn.BodySpan)
		rsx := GenerateComponentRsx(nodes, uint32(i), refOffset)

		fmt.Fprintf(&out, "#[no_mangle]\npub extern \"C\" fn __volki_mount_%s() {\n", name)
		out.WriteString(indentLines(rsx.MountCode, "    "))
		out.WriteString("}\n\n")

		fmt.Fprintf(&out, "#[no_mangle]\npub extern \"C\" fn __volki_update_%s() {\n", name)
		out.WriteString(indentLines(rsx.UpdateCode, "    "))
		out.WriteString("}\n\n")
	}

	return out.String()
}

// countUserRefSlots counts use_ref calls in a component body so
// dynamic markup slots allocate after them.
func countUserRefSlots(source string, bodySpan Span) uint32 {
	body := source[bodySpan.Start:bodySpan.End]
	n := strings.Count(body, "use_ref(") + strings.Count(body, "use_ref_el(")
	return uint32(n)
}

// generateGlueJS emits the loader that fetches and instantiates the
// client module, then drives mount and update for any component
// mount points on the page.
func generateGlueJS(wasmURL string, hasRsxComponents bool) string {
	var out strings.Builder
	out.WriteString("// @generated by volki compiler\n")
	fmt.Fprintf(&out, "const __volki_wasm_url = %q;\n", wasmURL)
	out.WriteString(`WebAssembly.instantiateStreaming(fetch(__volki_wasm_url), __volki_imports()).then((m) => {
  const exports = m.instance.exports;
`)
	if hasRsxComponents {
		out.WriteString(`  document.querySelectorAll("[data-volki-component]").forEach((el) => {
    const name = el.getAttribute("data-volki-component");
    const mount = exports["__volki_mount_" + name];
    const update = exports["__volki_update_" + name];
    if (mount) { mount(); }
    if (update) { update(); }
  });
`)
	}
	out.WriteString("});\n")
	return out.String()
}

func indentLines(code, prefix string) string {
	if code == "" {
		return ""
	}
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		out.WriteString(prefix)
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// ReadDistConfig returns the `[web].dist` value from volki.toml in
// dir, or ".volki" when absent.
func ReadDistConfig(dir string) string {
	return readWebConfigKey(dir, "dist", ".volki")
}

// ReadEntrypointConfig returns the `[web].entrypoint` value from
// volki.toml in dir, or "." when absent.
func ReadEntrypointConfig(dir string) string {
	return readWebConfigKey(dir, "entrypoint", ".")
}

type webTomlConfig struct {
	Web struct {
		Dist       string `toml:"dist"`
		Entrypoint string `toml:"entrypoint"`
	} `toml:"web"`
}

func readWebConfigKey(dir, key, fallback string) string {
	data, err := os.ReadFile(filepath.Join(dir, "volki.toml"))
	if err != nil {
		return fallback
	}
	var tc webTomlConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return fallback
	}
	var val string
	switch key {
	case "dist":
		val = tc.Web.Dist
	case "entrypoint":
		val = tc.Web.Entrypoint
	}
	if val == "" {
		return fallback
	}
	return val
}
