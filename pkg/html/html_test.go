package html

import (
	"strings"
	"testing"
)

func TestDocumentRender(t *testing.T) {
	doc := NewDocument().
		Title("Home <1>").
		Meta("description", "the \"front\" page").
		Stylesheet("/styles.css").
		BodyClass("dark").
		Write("<h1>hi</h1>").
		ModuleScript("/wasm/app.js")

	out := doc.Render()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %q", out[:40])
	}
	if !strings.Contains(out, "<title>Home &lt;1&gt;</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, `content="the &quot;front&quot; page"`) {
		t.Error("meta content not escaped")
	}
	if !strings.Contains(out, `<link rel="stylesheet" href="/styles.css">`) {
		t.Error("stylesheet link missing")
	}
	if !strings.Contains(out, `<body class="dark">`) {
		t.Error("body class missing")
	}
	if !strings.Contains(out, `<script type="module" src="/wasm/app.js"></script>`) {
		t.Error("module script missing")
	}
	if !strings.Contains(out, "<h1>hi</h1>") {
		t.Error("body content missing")
	}
}

func TestMetadataRenderHeadTags(t *testing.T) {
	m := Metadata{
		Title:       "Post",
		Description: "A post",
		OgTitle:     "Post",
		OgType:      "article",
		OgImage:     "/img.png",
	}
	tags := m.RenderHeadTags()
	if !strings.Contains(tags, "<title>Post</title>") {
		t.Error("missing title")
	}
	if !strings.Contains(tags, `<meta name="description" content="A post">`) {
		t.Error("missing description")
	}
	if !strings.Contains(tags, `<meta property="og:type" content="article">`) {
		t.Error("missing og:type")
	}
}

func TestMetadataRobots(t *testing.T) {
	r := NewRobots()
	r.Index = false
	r.NoArchive = true
	m := Metadata{Robots: &r}
	tags := m.RenderHeadTags()
	if !strings.Contains(tags, `content="noindex, follow, noarchive"`) {
		t.Errorf("robots content wrong: %q", tags)
	}
}

func TestMetadataValidate(t *testing.T) {
	m := Metadata{OgType: "blogpost"}
	warnings := m.Validate()
	if len(warnings) != 1 || warnings[0].Field != "og_type" {
		t.Errorf("warnings = %+v", warnings)
	}

	ok := Metadata{OgType: "article", OgTitle: "t", OgImage: "/i.png"}
	if len(ok.Validate()) != 0 {
		t.Errorf("valid metadata should not warn: %+v", ok.Validate())
	}
}

func TestInjectMetadata(t *testing.T) {
	body := []byte("<html><head><meta charset=\"utf-8\"></head><body></body></html>")
	out := InjectMetadata(body, Metadata{Title: "X"})
	s := string(out)
	if !strings.Contains(s, "<title>X</title>\n</head>") {
		t.Errorf("tags not injected before </head>: %q", s)
	}

	noHead := []byte("plain text")
	if string(InjectMetadata(noHead, Metadata{Title: "X"})) != "plain text" {
		t.Error("bodies without </head> must pass through")
	}

	if string(InjectMetadata(body, Metadata{})) != string(body) {
		t.Error("empty metadata must not modify the body")
	}
}

func TestIsHTMLContentType(t *testing.T) {
	if !IsHTMLContentType("text/html; charset=utf-8") {
		t.Error("text/html should match")
	}
	if IsHTMLContentType("application/json") {
		t.Error("json should not match")
	}
}
