package compiler

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestModuleResolutionThroughInjectedFS(t *testing.T) {
	fsys := fstest.MapFS{
		"src/page.volki": &fstest.MapFile{Data: []byte(pageSource)},
		"src/components.volki": &fstest.MapFile{Data: []byte(`pub fn card(title: &str) -> Fragment {
    <div class="card">"x"</div>
}
`)},
	}
	prev := SetModuleFS(fsys)
	defer SetModuleFS(prev)

	out, err := CompileSourceFull(pageSource, "src/page.volki")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !strings.Contains(out.ServerRs, "card(") {
		t.Fatalf("imported component not resolved:\n%s", out.ServerRs)
	}
}

const pageSource = `use crate::components::{card};

pub fn page(_req: &Request) -> Html {
    <Card title="hi" />
}
`

func TestModuleResolutionMissingModule(t *testing.T) {
	// Same source against an FS without the module file: the tag no
	// longer resolves.
	fsys := fstest.MapFS{
		"src/page.volki": &fstest.MapFile{Data: []byte(pageSource)},
	}
	prev := SetModuleFS(fsys)
	defer SetModuleFS(prev)

	_, err := CompileSourceFull(pageSource, "src/page.volki")
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Code != "E201" {
		t.Fatalf("want unresolved component, got %v", err)
	}
}

func TestModuleResolutionNestedModuleFile(t *testing.T) {
	source := `use crate::widgets::button::{button};

pub fn page(_req: &Request) -> Html {
    <Button label="go" />
}
`
	fsys := fstest.MapFS{
		"src/page.volki": &fstest.MapFile{Data: []byte(source)},
		"src/widgets/button.volki": &fstest.MapFile{Data: []byte(`pub fn button(label: &str) -> Fragment {
    <button>"x"</button>
}
`)},
	}
	prev := SetModuleFS(fsys)
	defer SetModuleFS(prev)

	out, err := CompileSourceFull(source, "src/page.volki")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !strings.Contains(out.ServerRs, "button(") {
		t.Fatalf("nested module not resolved:\n%s", out.ServerRs)
	}
}
