package compiler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ModuleFS is the slice of the filesystem module resolution reads.
// The default is the OS; tests substitute an in-memory tree
// (testing/fstest.MapFS satisfies it).
type ModuleFS interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

type osModuleFS struct{}

func (osModuleFS) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (osModuleFS) Stat(name string) (fs.FileInfo, error) { return moduleFS.Stat(name) }

var moduleFS ModuleFS = osModuleFS{}

// SetModuleFS replaces the filesystem used for use-statement module
// resolution and returns the previous one.
func SetModuleFS(f ModuleFS) ModuleFS {
	prev := moduleFS
	moduleFS = f
	return prev
}

// componentInfo pairs a snake_case component name with its params.
type componentInfo struct {
	Name   string
	Params []Param
}

type useStmt struct {
	moduleSegments []string
	symbols        []string
}

// PascalToSnake converts `MyComponent` to `my_component`.
func PascalToSnake(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c + ('a' - 'A'))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CollectFragmentComponents gathers every Fragment function visible
// from a file, both local and imported through use statements.
func CollectFragmentComponents(source, file string, functions []ScannedFunc) []componentInfo {
	var components []componentInfo

	for _, f := range functions {
		if f.ReturnType == ReturnFragment && f.Name != "" {
			components = append(components, componentInfo{Name: f.Name, Params: f.Params})
		}
	}

	for _, stmt := range parseUseStatements(source) {
		moduleFile, ok := resolveModuleFile(file, stmt.moduleSegments)
		if !ok {
			continue
		}
		data, err := moduleFS.ReadFile(moduleFile)
		if err != nil {
			continue
		}
		moduleSrc := string(data)
		for _, mf := range ScanFunctions(moduleSrc) {
			if mf.ReturnType != ReturnFragment || mf.Name == "" {
				continue
			}
			if !containsStr(stmt.symbols, mf.Name) {
				continue
			}
			exists := false
			for _, c := range components {
				if c.Name == mf.Name {
					exists = true
					break
				}
			}
			if !exists {
				components = append(components, componentInfo{Name: mf.Name, Params: mf.Params})
			}
		}
	}
	return components
}

// ValidateComponentResolution enforces strict component usage: every
// custom component tag must resolve to a Fragment function, props must
// match its parameters, and event bindings must point at Client
// functions.
func ValidateComponentResolution(source, file string, functions []ScannedFunc, parsedBodies [][]*Node, componentMap []componentInfo, rsxComponentNames []string) error {
	localSymbols := collectLocalSymbols(functions)
	importedSymbols := collectImportedSymbols(source, file)
	clientSymbols := collectClientSymbols(functions)

	for idx, fn := range functions {
		if fn.ReturnType != ReturnHtml && fn.ReturnType != ReturnFragment {
			continue
		}
		if idx >= len(parsedBodies) || parsedBodies[idx] == nil {
			continue
		}
		nodes := parsedBodies[idx]

		if err := validateEventBindings(source, file, fn.BodySpan, nodes, clientSymbols); err != nil {
			return err
		}

		var componentTags []string
		collectComponentTags(nodes, &componentTags)

		for _, tag := range componentTags {
			snake := PascalToSnake(tag)

			inComponentMap := false
			for _, c := range componentMap {
				if c.Name == snake {
					inComponentMap = true
					break
				}
			}
			if inComponentMap || containsStr(rsxComponentNames, snake) {
				continue
			}

			rt, resolved := findSymbolReturnType(localSymbols, snake)
			if !resolved {
				rt, resolved = findSymbolReturnType(importedSymbols, snake)
			}
			if resolved {
				if rt != ReturnFragment {
					line, col := lineColAt(source, findComponentTagOffset(source, fn.BodySpan, tag))
					return &CompileError{Code: "E202", File: file, Line: line, Col: col,
						Message: fmt.Sprintf("component `%s` must return Fragment (found %s)", tag, rt)}
				}
			} else {
				line, col := lineColAt(source, findComponentTagOffset(source, fn.BodySpan, tag))
				return &CompileError{Code: "E201", File: file, Line: line, Col: col,
					Message: fmt.Sprintf("unresolved component `%s`; expected a function returning Fragment", tag)}
			}
		}

		if err := validateComponentProps(source, file, fn.BodySpan, nodes, componentMap); err != nil {
			return err
		}
	}
	return nil
}

func validateComponentProps(source, file string, bodySpan Span, nodes []*Node, componentMap []componentInfo) error {
	for _, node := range nodes {
		switch node.Kind {
		case NodeElement:
			if isCustomComponentTag(node.Tag) && !isSpecialBuiltin(node.Tag) {
				snake := PascalToSnake(node.Tag)
				var params []Param
				found := false
				for _, c := range componentMap {
					if c.Name == snake {
						params = c.Params
						found = true
						break
					}
				}
				if found {
					for _, attr := range node.Attrs {
						if !hasParam(params, attr.Name) {
							line, col := lineColAt(source, findAttrOffset(source, bodySpan, attr.Name))
							return &CompileError{Code: "E203", File: file, Line: line, Col: col,
								Message: fmt.Sprintf("unknown prop `%s` on component `%s`", attr.Name, node.Tag)}
						}
					}
					for _, p := range params {
						if p.Name == "children" {
							continue
						}
						if !hasAttr(node.Attrs, p.Name) {
							line, col := lineColAt(source, findComponentTagOffset(source, bodySpan, node.Tag))
							return &CompileError{Code: "E204", File: file, Line: line, Col: col,
								Message: fmt.Sprintf("missing required prop `%s` on component `%s`", p.Name, node.Tag)}
						}
					}
					if len(node.Children) > 0 && !hasParam(params, "children") {
						line, col := lineColAt(source, findComponentTagOffset(source, bodySpan, node.Tag))
						return &CompileError{Code: "E205", File: file, Line: line, Col: col,
							Message: fmt.Sprintf("component `%s` does not accept children; add a `children: Vec<HtmlNode>` parameter", node.Tag)}
					}
				}
			}
			if err := validateComponentProps(source, file, bodySpan, node.Children, componentMap); err != nil {
				return err
			}
		case NodeCondAnd:
			if err := validateComponentProps(source, file, bodySpan, node.Children, componentMap); err != nil {
				return err
			}
		case NodeTernary:
			if err := validateComponentProps(source, file, bodySpan, node.IfTrue, componentMap); err != nil {
				return err
			}
			if err := validateComponentProps(source, file, bodySpan, node.IfFalse, componentMap); err != nil {
				return err
			}
		}
	}
	return nil
}

type clientSymbol struct {
	name  string
	arity int
}

func collectClientSymbols(functions []ScannedFunc) []clientSymbol {
	var symbols []clientSymbol
	for _, f := range functions {
		if f.ReturnType == ReturnClient && f.Name != "" {
			symbols = append(symbols, clientSymbol{f.Name, len(f.Params)})
		}
	}
	return symbols
}

func validateEventBindings(source, file string, bodySpan Span, nodes []*Node, clientSymbols []clientSymbol) error {
	for _, node := range nodes {
		if err := validateNodeEventBindings(source, file, bodySpan, node, clientSymbols); err != nil {
			return err
		}
	}
	return nil
}

func validateNodeEventBindings(source, file string, bodySpan Span, node *Node, clientSymbols []clientSymbol) error {
	switch node.Kind {
	case NodeElement:
		isComponent := isCustomComponentTag(node.Tag) && !isSpecialBuiltin(node.Tag)
		for _, attr := range node.Attrs {
			isEvent := strings.HasPrefix(attr.Name, "on") && len(attr.Name) > 2
			switch {
			case attr.IsExpr && !isEvent && !isComponent:
				// Expression attrs on component tags are props.
				return attrError(source, file, bodySpan, attr.Name,
					"only event attributes support expression values; use a quoted string for non-event attrs")
			case !attr.IsExpr && isEvent:
				if strings.Contains(attr.Value, "__volki.") || strings.Contains(attr.Value, "window.__volki") {
					return attrError(source, file, bodySpan, attr.Name,
						"legacy __volki inline handlers are removed; use event bindings like onclick={on_click}")
				}
				return attrError(source, file, bodySpan, attr.Name,
					"event attributes must use expression syntax like onclick={on_click}")
			case attr.IsExpr && isEvent && !isComponent:
				if !isIdentifier(attr.Value) {
					return attrError(source, file, bodySpan, attr.Name,
						"event handler expression must be a top-level Client function identifier")
				}
				var sym *clientSymbol
				for i := range clientSymbols {
					if clientSymbols[i].name == attr.Value {
						sym = &clientSymbols[i]
						break
					}
				}
				if sym == nil {
					return attrError(source, file, bodySpan, attr.Name,
						fmt.Sprintf("event handler `%s` not found as a top-level Client function", attr.Value))
				}
				if sym.arity > 1 {
					return attrError(source, file, bodySpan, attr.Name,
						fmt.Sprintf("event handler `%s` has %d params; only 0 or 1 are supported", attr.Value, sym.arity))
				}
			}
		}
		for _, child := range node.Children {
			if err := validateNodeEventBindings(source, file, bodySpan, child, clientSymbols); err != nil {
				return err
			}
		}
	case NodeCondAnd:
		for _, child := range node.Children {
			if err := validateNodeEventBindings(source, file, bodySpan, child, clientSymbols); err != nil {
				return err
			}
		}
	case NodeTernary:
		for _, child := range node.IfTrue {
			if err := validateNodeEventBindings(source, file, bodySpan, child, clientSymbols); err != nil {
				return err
			}
		}
		for _, child := range node.IfFalse {
			if err := validateNodeEventBindings(source, file, bodySpan, child, clientSymbols); err != nil {
				return err
			}
		}
	}
	return nil
}

func attrError(source, file string, bodySpan Span, attrName, message string) error {
	line, col := lineColAt(source, findAttrOffset(source, bodySpan, attrName))
	return &CompileError{Code: "E206", File: file, Line: line, Col: col, Message: message}
}

func findAttrOffset(source string, bodySpan Span, attrName string) int {
	if bodySpan.End <= bodySpan.Start || bodySpan.End > len(source) {
		return 0
	}
	body := source[bodySpan.Start:bodySpan.End]
	if idx := strings.Index(body, attrName+"="); idx >= 0 {
		return bodySpan.Start + idx
	}
	return bodySpan.Start
}

func findComponentTagOffset(source string, bodySpan Span, tag string) int {
	if bodySpan.End <= bodySpan.Start || bodySpan.End > len(source) {
		return 0
	}
	body := source[bodySpan.Start:bodySpan.End]
	if idx := strings.Index(body, "<"+tag); idx >= 0 {
		return bodySpan.Start + idx
	}
	return bodySpan.Start
}

func isIdentifier(expr string) bool {
	s := strings.TrimSpace(expr)
	if s == "" {
		return false
	}
	first := s[0]
	if !(isAlphaByte(first) || first == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

type namedReturn struct {
	name string
	rt   ReturnType
}

func collectLocalSymbols(functions []ScannedFunc) []namedReturn {
	var symbols []namedReturn
	for _, f := range functions {
		if f.Name != "" {
			symbols = append(symbols, namedReturn{f.Name, f.ReturnType})
		}
	}
	return symbols
}

func collectComponentTags(nodes []*Node, out *[]string) {
	for _, node := range nodes {
		switch node.Kind {
		case NodeElement:
			if isCustomComponentTag(node.Tag) && !isSpecialBuiltin(node.Tag) {
				*out = append(*out, node.Tag)
			}
			collectComponentTags(node.Children, out)
		case NodeCondAnd:
			collectComponentTags(node.Children, out)
		case NodeTernary:
			collectComponentTags(node.IfTrue, out)
			collectComponentTags(node.IfFalse, out)
		}
	}
}

func isCustomComponentTag(tag string) bool {
	return len(tag) > 0 && tag[0] >= 'A' && tag[0] <= 'Z'
}

func isSpecialBuiltin(tag string) bool {
	return tag == "Style" || tag == "Head" || tag == "Stylesheet"
}

func findSymbolReturnType(symbols []namedReturn, name string) (ReturnType, bool) {
	for _, s := range symbols {
		if s.name == name {
			return s.rt, true
		}
	}
	return 0, false
}

func parseUseStatements(source string) []useStmt {
	var result []useStmt
	for _, raw := range strings.Split(source, ";") {
		stmt := strings.TrimSpace(raw)
		if !strings.HasPrefix(stmt, "use ") {
			continue
		}
		path := strings.TrimSpace(stmt[4:])
		if path == "" {
			continue
		}
		if open := strings.Index(path, "{"); open >= 0 {
			closeRel := strings.Index(path[open:], "}")
			if closeRel < 0 {
				continue
			}
			closeIdx := open + closeRel
			modulePart := strings.TrimSuffix(strings.TrimSpace(path[:open]), "::")
			var symbols []string
			for _, sym := range strings.Split(path[open+1:closeIdx], ",") {
				sym = strings.TrimSpace(sym)
				if sym == "" || sym == "*" || sym == "self" {
					continue
				}
				symbols = append(symbols, sym)
			}
			if len(symbols) == 0 {
				continue
			}
			var segments []string
			for _, seg := range strings.Split(modulePart, "::") {
				seg = strings.TrimSpace(seg)
				if seg != "" {
					segments = append(segments, seg)
				}
			}
			if len(segments) > 0 {
				result = append(result, useStmt{moduleSegments: segments, symbols: symbols})
			}
			continue
		}

		// Plain import: use a::b::Name
		var parts []string
		for _, seg := range strings.Split(path, "::") {
			seg = strings.TrimSpace(seg)
			if seg != "" {
				parts = append(parts, seg)
			}
		}
		if len(parts) < 2 {
			continue
		}
		symbol := parts[len(parts)-1]
		if symbol == "*" || symbol == "self" {
			continue
		}
		result = append(result, useStmt{moduleSegments: parts[:len(parts)-1], symbols: []string{symbol}})
	}
	return result
}

func collectImportedSymbols(source, sourceFile string) []namedReturn {
	stmts := parseUseStatements(source)
	if len(stmts) == 0 {
		return nil
	}
	var imported []namedReturn
	for _, stmt := range stmts {
		moduleFile, ok := resolveModuleFile(sourceFile, stmt.moduleSegments)
		if !ok {
			continue
		}
		data, err := moduleFS.ReadFile(moduleFile)
		if err != nil {
			continue
		}
		moduleSymbols := collectLocalSymbols(ScanFunctions(string(data)))
		for _, sym := range stmt.symbols {
			if rt, found := findSymbolReturnType(moduleSymbols, sym); found {
				imported = append(imported, namedReturn{sym, rt})
			}
		}
	}
	return imported
}

// resolveModuleFile maps module segments onto a source file relative
// to the src root, honoring crate/self/super prefixes.
func resolveModuleFile(sourceFile string, segments []string) (string, bool) {
	srcRoot, ok := findSrcRoot(sourceFile)
	if !ok {
		return "", false
	}
	start := 0
	if len(segments) > 0 {
		switch segments[0] {
		case "crate":
			start = 1
		case "self":
			srcRoot = filepath.Dir(sourceFile)
			start = 1
		case "super":
			srcRoot = filepath.Dir(filepath.Dir(sourceFile))
			start = 1
		}
	}

	current := srcRoot
	for _, seg := range segments[start:] {
		next, found := resolveSegment(current, seg)
		if !found {
			return "", false
		}
		current = next
	}

	if info, err := moduleFS.Stat(current); err == nil && !info.IsDir() {
		return current, true
	}
	for _, name := range []string{"mod.rs", "mod.volki"} {
		candidate := filepath.Join(current, name)
		if _, err := moduleFS.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func resolveSegment(parent, segment string) (string, bool) {
	dir := parent
	if info, err := moduleFS.Stat(parent); err != nil || !info.IsDir() {
		dir = filepath.Dir(parent)
	}

	for _, ext := range []string{".volki", ".rs"} {
		direct := filepath.Join(dir, segment+ext)
		if _, err := moduleFS.Stat(direct); err == nil {
			return direct, true
		}
	}
	nested := filepath.Join(dir, segment)
	if info, err := moduleFS.Stat(nested); err == nil && info.IsDir() {
		for _, name := range []string{"mod.rs", "mod.volki"} {
			mod := filepath.Join(nested, name)
			if _, err := moduleFS.Stat(mod); err == nil {
				return mod, true
			}
		}
		return nested, true
	}
	return "", false
}

func findSrcRoot(path string) (string, bool) {
	current := path
	if info, err := moduleFS.Stat(path); err != nil || !info.IsDir() {
		current = filepath.Dir(path)
	}
	for {
		if filepath.Base(current) == "src" {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func containsStr(list []string, needle string) bool {
	for _, s := range list {
		if s == needle {
			return true
		}
	}
	return false
}

func hasParam(params []Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func hasAttr(attrs []Attr, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}
