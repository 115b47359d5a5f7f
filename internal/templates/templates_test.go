package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/volki-dev/volki/internal/errors"
)

func TestGetUnknown(t *testing.T) {
	_, err := Get("nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCategory(err, errors.CategoryCLI) {
		t.Fatalf("category: %v", err)
	}
}

func TestList(t *testing.T) {
	got := List()
	want := []string{"api", "full", "minimal"}
	if len(got) != len(want) {
		t.Fatalf("List = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %v, want %v", got, want)
		}
	}
}

func TestCreateFull(t *testing.T) {
	tmpl, err := Get("full")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	cfg := Config{ProjectName: "acme", Description: "An acme site"}
	if err := tmpl.Create(dir, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, f := range []string{
		"volki.toml",
		"src/page.volki",
		"src/not_found.volki",
		"src/about/page.volki",
		"src/api/health/route.volki",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Fatalf("missing %s: %v", f, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(dir, "src", "page.volki"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `"acme"`) {
		t.Fatalf("project name not rendered:\n%s", page)
	}

	toml, err := os.ReadFile(filepath.Join(dir, "volki.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(toml), "[server]") || !strings.Contains(string(toml), "An acme site") {
		t.Fatalf("config not rendered:\n%s", toml)
	}
}

func TestCreateAPIHasNoPages(t *testing.T) {
	tmpl, err := Get("api")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := tmpl.Create(dir, Config{ProjectName: "svc"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "page.volki")); !os.IsNotExist(err) {
		t.Fatal("api template must not contain pages")
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "api", "health", "route.volki")); err != nil {
		t.Fatalf("missing health route: %v", err)
	}
}
