package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RouteKind classifies a discovered route file.
type RouteKind int

const (
	// RoutePage is a page.volki or page.rs file rendered as a document.
	RoutePage RouteKind = iota
	// RouteNotFound is a not_found.volki or not_found.rs 404 handler.
	RouteNotFound
	// RouteApi is a route.volki or route.rs file with per-method handlers.
	RouteApi
)

// DiscoveredRoute is one route found in the app directory tree.
type DiscoveredRoute struct {
	Kind        RouteKind
	URLPath     string
	ModulePath  string
	Methods     []string
	HasMetadata bool
}

var httpMethods = []string{"get", "post", "put", "delete", "patch", "head"}

var sourceExts = []string{".volki", ".rs"}

func findRouteFile(dir, stem string) (string, bool) {
	for _, ext := range sourceExts {
		p := filepath.Join(dir, stem+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// DiscoverRoutes walks root/app recursively collecting page,
// not-found, and API route files. A missing app directory yields an
// empty route list.
func DiscoverRoutes(root string) ([]DiscoveredRoute, error) {
	appDir := filepath.Join(root, "app")
	if _, err := os.Stat(appDir); err != nil {
		return nil, nil
	}
	var routes []DiscoveredRoute
	if err := scanRouteDir(appDir, root, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func scanRouteDir(dir, root string, routes *[]DiscoveredRoute) error {
	if path, ok := findRouteFile(dir, "page"); ok {
		data, _ := os.ReadFile(path)
		*routes = append(*routes, DiscoveredRoute{
			Kind:        RoutePage,
			URLPath:     dirToURL(dir, root),
			ModulePath:  dirToModule(dir, root) + "::page",
			HasMetadata: strings.Contains(string(data), "pub fn metadata"),
		})
	}

	if _, ok := findRouteFile(dir, "not_found"); ok {
		*routes = append(*routes, DiscoveredRoute{
			Kind:       RouteNotFound,
			ModulePath: dirToModule(dir, root) + "::not_found",
		})
	}

	if path, ok := findRouteFile(dir, "route"); ok {
		data, _ := os.ReadFile(path)
		source := string(data)
		var methods []string
		for _, method := range httpMethods {
			if strings.Contains(source, fmt.Sprintf("pub fn %s(", method)) {
				methods = append(methods, method)
			}
		}
		if len(methods) > 0 {
			*routes = append(*routes, DiscoveredRoute{
				Kind:       RouteApi,
				URLPath:    dirToURL(dir, root),
				ModulePath: dirToModule(dir, root) + "::route",
				Methods:    methods,
			})
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &CompileError{File: dir, Message: fmt.Sprintf("failed to read directory: %v", err)}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := scanRouteDir(filepath.Join(dir, entry.Name()), root, routes); err != nil {
				return err
			}
		}
	}
	return nil
}

const generatedHeader = "//! @generated by volki compiler — do not edit.\n\n"

// GenerateModFile produces mod.rs content declaring every submodule
// in a directory. Hidden directories and public/ are skipped.
func GenerateModFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &CompileError{File: dir, Message: fmt.Sprintf("failed to read directory: %v", err)}
	}

	var moduleNames []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if !strings.HasPrefix(name, ".") && name != "public" {
				moduleNames = appendUnique(moduleNames, name)
			}
			continue
		}
		if name == "mod.rs" {
			continue
		}
		ext := filepath.Ext(name)
		if ext == ".rs" || ext == ".volki" {
			moduleNames = appendUnique(moduleNames, strings.TrimSuffix(name, ext))
		}
	}
	sort.Strings(moduleNames)

	var out strings.Builder
	out.WriteString(generatedHeader)
	for _, m := range moduleNames {
		out.WriteString("pub mod ")
		out.WriteString(m)
		out.WriteString(";\n")
	}
	return out.String(), nil
}

// wasmAsset is one embeddable client asset under public/wasm.
type wasmAsset struct {
	filename  string
	constName string
	fnName    string
	isWasm    bool
}

func discoverWasmAssets(root string) []wasmAsset {
	wasmDir := filepath.Join(root, "public", "wasm")
	entries, err := os.ReadDir(wasmDir)
	if err != nil {
		return nil
	}
	var assets []wasmAsset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".js" && ext != ".wasm" {
			continue
		}
		assets = append(assets, wasmAsset{
			filename:  name,
			constName: filenameToConst(name),
			fnName:    filenameToFn(name),
			isWasm:    ext == ".wasm",
		})
	}
	return assets
}

// filenameToConst converts `page_glue.js` to `PAGE_GLUE_JS`.
func filenameToConst(name string) string {
	var out strings.Builder
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b == '.' || b == '-':
			out.WriteByte('_')
		case b >= 'a' && b <= 'z':
			out.WriteByte(b - 'a' + 'A')
		default:
			out.WriteByte(b)
		}
	}
	return out.String()
}

// filenameToFn converts `page_glue.js` to `__serve_page_glue_js`.
func filenameToFn(name string) string {
	var out strings.Builder
	out.WriteString("__serve_")
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b == '.' || b == '-':
			out.WriteByte('_')
		case b >= 'A' && b <= 'Z':
			out.WriteByte(b - 'A' + 'a')
		default:
			out.WriteByte(b)
		}
	}
	return out.String()
}

// GenerateRootMod produces the root mod.rs: module declarations,
// embedded asset constants and handlers, and a start() that registers
// every discovered route (pages, then APIs, not-found last).
func GenerateRootMod(root string, routes []DiscoveredRoute, publicDir string) (string, error) {
	modContent, err := GenerateModFile(root)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(modContent)
	out.WriteString("\nuse crate::libs::web::server::Server;\n")

	hasAPI := false
	for _, r := range routes {
		if r.Kind == RouteApi {
			hasAPI = true
			break
		}
	}
	if hasAPI {
		out.WriteString("use crate::libs::web::router::file_route::FileRoute;\n")
	}

	assets := discoverWasmAssets(root)
	if len(assets) > 0 {
		out.WriteString("use crate::libs::web::http::request::Request;\n")
		out.WriteString("use crate::libs::web::http::response::Response;\n\n")

		for _, asset := range assets {
			if asset.isWasm {
				fmt.Fprintf(&out, "const %s: &[u8] = include_bytes!(\"public/wasm/%s\");\n", asset.constName, asset.filename)
			} else {
				fmt.Fprintf(&out, "const %s: &str = include_str!(\"public/wasm/%s\");\n", asset.constName, asset.filename)
			}
		}
		out.WriteString("\n")

		for _, asset := range assets {
			fmt.Fprintf(&out, "fn %s(_req: &Request) -> Response {\n", asset.fnName)
			out.WriteString("    Response::new(crate::libs::web::http::status::StatusCode::OK)\n")
			if asset.isWasm {
				fmt.Fprintf(&out, "        .body_bytes(%s)\n", asset.constName)
				out.WriteString("        .header(\"Content-Type\", \"application/wasm\")\n")
			} else {
				fmt.Fprintf(&out, "        .body_bytes(%s.as_bytes())\n", asset.constName)
				out.WriteString("        .header(\"Content-Type\", \"application/javascript; charset=utf-8\")\n")
			}
			out.WriteString("        .header(\"Cache-Control\", \"public, max-age=3600\")\n")
			out.WriteString("}\n\n")
		}
	}

	out.WriteString("pub fn start(host: &str, port: u16) -> ! {\n")
	out.WriteString("    Server::new()\n")
	out.WriteString("        .host(host)\n")
	out.WriteString("        .port(port)\n")

	if publicDir != "" {
		fmt.Fprintf(&out, "        .public_dir(\"%s\")\n", publicDir)
	}

	for _, asset := range assets {
		fmt.Fprintf(&out, "        .api(\"/wasm/%s\", %s)\n", asset.filename, asset.fnName)
	}

	for _, route := range routes {
		if route.Kind != RoutePage {
			continue
		}
		if route.HasMetadata {
			fmt.Fprintf(&out, "        .page_with_metadata(\"%s\", %s::page, %s::metadata)\n",
				route.URLPath, route.ModulePath, route.ModulePath)
		} else {
			fmt.Fprintf(&out, "        .page(\"%s\", %s::page)\n", route.URLPath, route.ModulePath)
		}
	}

	for _, route := range routes {
		if route.Kind != RouteApi {
			continue
		}
		fmt.Fprintf(&out, "        .file_route(\n            \"%s\",\n            FileRoute::new()", route.URLPath)
		for _, method := range route.Methods {
			fmt.Fprintf(&out, ".%s(%s::%s)", method, route.ModulePath, method)
		}
		out.WriteString(",\n        )\n")
	}

	for _, route := range routes {
		if route.Kind == RouteNotFound {
			fmt.Fprintf(&out, "        .not_found_page(%s::page)\n", route.ModulePath)
		}
	}

	out.WriteString("        .listen()\n}\n")
	return out.String(), nil
}

func dirToURL(dir, root string) string {
	appPath := filepath.Join(root, "app")
	rel, err := filepath.Rel(appPath, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "/"
	}
	if rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

func dirToModule(dir, root string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "::")
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
