// Package html builds server-rendered HTML documents and page metadata.
package html

import "strings"

// Document is a full HTML page under construction. Page handlers return
// one of these; the worker pool serializes it into the response body.
type Document struct {
	title       string
	lang        string
	charset     string
	metas       []metaTag
	links       []linkTag
	styles      []string
	scripts     []scriptTag
	bodyClasses []string
	body        strings.Builder
}

type metaTag struct {
	name    string
	content string
}

type linkTag struct {
	rel  string
	href string
}

type scriptTag struct {
	src    string
	inline string
	module bool
}

// NewDocument starts an empty document with sensible defaults.
func NewDocument() *Document {
	return &Document{lang: "en", charset: "utf-8"}
}

// Title sets the document title.
func (d *Document) Title(t string) *Document {
	d.title = t
	return d
}

// Lang sets the <html lang> attribute.
func (d *Document) Lang(lang string) *Document {
	d.lang = lang
	return d
}

// Meta appends a <meta name content> tag.
func (d *Document) Meta(name, content string) *Document {
	d.metas = append(d.metas, metaTag{name: name, content: content})
	return d
}

// Link appends a <link rel href> tag.
func (d *Document) Link(rel, href string) *Document {
	d.links = append(d.links, linkTag{rel: rel, href: href})
	return d
}

// Stylesheet links an external stylesheet.
func (d *Document) Stylesheet(href string) *Document {
	return d.Link("stylesheet", href)
}

// Style embeds an inline <style> block.
func (d *Document) Style(css string) *Document {
	d.styles = append(d.styles, css)
	return d
}

// Script references an external script.
func (d *Document) Script(src string) *Document {
	d.scripts = append(d.scripts, scriptTag{src: src})
	return d
}

// ModuleScript references an external ES module script.
func (d *Document) ModuleScript(src string) *Document {
	d.scripts = append(d.scripts, scriptTag{src: src, module: true})
	return d
}

// InlineScript embeds script source directly.
func (d *Document) InlineScript(js string) *Document {
	d.scripts = append(d.scripts, scriptTag{inline: js})
	return d
}

// BodyClass adds a class to the <body> tag.
func (d *Document) BodyClass(class string) *Document {
	d.bodyClasses = append(d.bodyClasses, class)
	return d
}

// Write appends raw HTML to the body.
func (d *Document) Write(html string) *Document {
	d.body.WriteString(html)
	return d
}

// Render serializes the document to a complete HTML page.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"")
	b.WriteString(d.lang)
	b.WriteString("\">\n<head>\n<meta charset=\"")
	b.WriteString(d.charset)
	b.WriteString("\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	if d.title != "" {
		b.WriteString("<title>")
		b.WriteString(EscapeText(d.title))
		b.WriteString("</title>\n")
	}
	for _, m := range d.metas {
		b.WriteString("<meta name=\"")
		b.WriteString(EscapeAttr(m.name))
		b.WriteString("\" content=\"")
		b.WriteString(EscapeAttr(m.content))
		b.WriteString("\">\n")
	}
	for _, l := range d.links {
		b.WriteString("<link rel=\"")
		b.WriteString(EscapeAttr(l.rel))
		b.WriteString("\" href=\"")
		b.WriteString(EscapeAttr(l.href))
		b.WriteString("\">\n")
	}
	for _, css := range d.styles {
		b.WriteString("<style>")
		b.WriteString(css)
		b.WriteString("</style>\n")
	}
	b.WriteString("</head>\n<body")
	if len(d.bodyClasses) > 0 {
		b.WriteString(" class=\"")
		b.WriteString(EscapeAttr(strings.Join(d.bodyClasses, " ")))
		b.WriteString("\"")
	}
	b.WriteString(">\n")
	b.WriteString(d.body.String())
	for _, s := range d.scripts {
		if s.inline != "" {
			b.WriteString("<script>")
			b.WriteString(s.inline)
			b.WriteString("</script>\n")
			continue
		}
		b.WriteString("<script")
		if s.module {
			b.WriteString(" type=\"module\"")
		}
		b.WriteString(" src=\"")
		b.WriteString(EscapeAttr(s.src))
		b.WriteString("\"></script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// EscapeText escapes HTML text content.
func EscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// EscapeAttr escapes attribute values.
func EscapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
