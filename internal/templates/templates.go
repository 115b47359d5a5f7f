// Package templates holds the project scaffolds behind `volki new`.
package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/volki-dev/volki/internal/errors"
)

// Config is the data a scaffold is rendered with.
type Config struct {
	ProjectName string
	Description string
}

// Template is a named set of files to render into a new project.
type Template struct {
	Name        string
	Description string

	// Files maps slash-separated relative paths to file contents,
	// parsed as text/template with Config as the data.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
	"api":     apiTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E602").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, full, api")
	}
	return tmpl, nil
}

// List returns the available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create renders the template into dir, creating directories as needed.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

const configToml = `# {{.ProjectName}} — {{.Description}}

[server]
host = "127.0.0.1"
port = 8080
public_dir = "public"
dist = "dist"

[style]
unknown_class_policy = "warn"
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A single page and nothing else",
		Files: map[string]string{
			"volki.toml": configToml,
			"src/page.volki": `use crate::prelude::*;

pub fn page(_req: &Request) -> Html {
    <div class="p-8">
        <h1 class="text-2xl font-bold">"{{.ProjectName}}"</h1>
        <p>"{{.Description}}"</p>
    </div>
}
`,
			"public/robots.txt": "User-agent: *\nAllow: /\n",
		},
	}
}

func fullTemplate() *Template {
	t := minimalTemplate()
	t.Name = "full"
	t.Description = "Pages, a 404 handler, and an API route"
	t.Files["src/not_found.volki"] = `use crate::prelude::*;

pub fn page(_req: &Request) -> Html {
    <div class="p-8">
        <h1 class="text-2xl font-bold">"Not Found"</h1>
        <a href="/">"back home"</a>
    </div>
}
`
	t.Files["src/about/page.volki"] = `use crate::prelude::*;

pub fn page(_req: &Request) -> Html {
    <div class="p-8">
        <h1 class="text-2xl font-bold">"About"</h1>
        <p>"{{.Description}}"</p>
    </div>
}
`
	t.Files["src/api/health/route.volki"] = apiHealthRoute
	return t
}

const apiHealthRoute = `use crate::prelude::*;

pub fn get(_req: &Request) -> Response {
    Response::ok().json("{\"status\":\"ok\"}")
}
`

func apiTemplate() *Template {
	return &Template{
		Name:        "api",
		Description: "API routes only, no pages",
		Files: map[string]string{
			"volki.toml":                  configToml,
			"src/api/health/route.volki":  apiHealthRoute,
			"src/api/version/route.volki": apiVersionRoute,
		},
	}
}

const apiVersionRoute = `use crate::prelude::*;

pub fn get(_req: &Request) -> Response {
    Response::ok().json("{\"name\":\"{{.ProjectName}}\"}")
}
`
