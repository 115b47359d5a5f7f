package html

import (
	"bytes"
	"strings"
)

// Robots holds crawler directives.
type Robots struct {
	Index     bool
	Follow    bool
	NoArchive bool
	NoSnippet bool
}

// NewRobots returns the permissive default (index, follow).
func NewRobots() Robots {
	return Robots{Index: true, Follow: true}
}

func (r Robots) content() string {
	parts := make([]string, 0, 4)
	if r.Index {
		parts = append(parts, "index")
	} else {
		parts = append(parts, "noindex")
	}
	if r.Follow {
		parts = append(parts, "follow")
	} else {
		parts = append(parts, "nofollow")
	}
	if r.NoArchive {
		parts = append(parts, "noarchive")
	}
	if r.NoSnippet {
		parts = append(parts, "nosnippet")
	}
	return strings.Join(parts, ", ")
}

// MetadataWarning is a non-fatal validation finding.
type MetadataWarning struct {
	Field   string
	Message string
}

// Metadata describes the head tags injected into an HTML response.
// Zero-value string fields are omitted from the output.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string

	Canonical string
	Robots    *Robots

	OgTitle       string
	OgDescription string
	OgType        string
	OgURL         string
	OgImage       string
	OgSiteName    string

	TwitterCard        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string

	Favicon string
	Author  string

	CustomMeta [][2]string
}

var knownOgTypes = map[string]bool{
	"website": true, "article": true, "profile": true, "book": true,
	"music.song": true, "music.album": true, "music.playlist": true,
	"video.movie": true, "video.episode": true, "video.tv_show": true,
	"video.other": true,
}

var knownTwitterCards = map[string]bool{
	"summary": true, "summary_large_image": true, "app": true, "player": true,
}

// Validate reports questionable metadata. Warnings are advisory; the
// response is served either way.
func (m Metadata) Validate() []MetadataWarning {
	var warnings []MetadataWarning
	if m.OgType != "" && !knownOgTypes[m.OgType] {
		warnings = append(warnings, MetadataWarning{
			Field:   "og_type",
			Message: "unknown Open Graph type " + m.OgType,
		})
	}
	if m.TwitterCard != "" && !knownTwitterCards[m.TwitterCard] {
		warnings = append(warnings, MetadataWarning{
			Field:   "twitter_card",
			Message: "unknown Twitter card type " + m.TwitterCard,
		})
	}
	if m.OgTitle != "" && m.OgImage == "" {
		warnings = append(warnings, MetadataWarning{
			Field:   "og_image",
			Message: "Open Graph tags present without og:image",
		})
	}
	return warnings
}

// RenderHeadTags serializes the metadata as head tags.
func (m Metadata) RenderHeadTags() string {
	var b strings.Builder
	writeMeta := func(name, content string) {
		if content == "" {
			return
		}
		b.WriteString(`<meta name="`)
		b.WriteString(EscapeAttr(name))
		b.WriteString(`" content="`)
		b.WriteString(EscapeAttr(content))
		b.WriteString("\">\n")
	}
	writeProperty := func(prop, content string) {
		if content == "" {
			return
		}
		b.WriteString(`<meta property="`)
		b.WriteString(EscapeAttr(prop))
		b.WriteString(`" content="`)
		b.WriteString(EscapeAttr(content))
		b.WriteString("\">\n")
	}

	if m.Title != "" {
		b.WriteString("<title>")
		b.WriteString(EscapeText(m.Title))
		b.WriteString("</title>\n")
	}
	writeMeta("description", m.Description)
	if len(m.Keywords) > 0 {
		writeMeta("keywords", strings.Join(m.Keywords, ", "))
	}
	if m.Canonical != "" {
		b.WriteString(`<link rel="canonical" href="`)
		b.WriteString(EscapeAttr(m.Canonical))
		b.WriteString("\">\n")
	}
	if m.Robots != nil {
		writeMeta("robots", m.Robots.content())
	}

	writeProperty("og:title", m.OgTitle)
	writeProperty("og:description", m.OgDescription)
	writeProperty("og:type", m.OgType)
	writeProperty("og:url", m.OgURL)
	writeProperty("og:image", m.OgImage)
	writeProperty("og:site_name", m.OgSiteName)

	writeMeta("twitter:card", m.TwitterCard)
	writeMeta("twitter:title", m.TwitterTitle)
	writeMeta("twitter:description", m.TwitterDescription)
	writeMeta("twitter:image", m.TwitterImage)

	if m.Favicon != "" {
		b.WriteString(`<link rel="icon" href="`)
		b.WriteString(EscapeAttr(m.Favicon))
		b.WriteString("\">\n")
	}
	writeMeta("author", m.Author)

	for _, kv := range m.CustomMeta {
		writeMeta(kv[0], kv[1])
	}
	return b.String()
}

// InjectMetadata splices the rendered head tags in front of </head>. The
// body is returned unchanged when no tags render or no head is found.
func InjectMetadata(body []byte, m Metadata) []byte {
	tags := m.RenderHeadTags()
	if tags == "" {
		return body
	}
	idx := bytes.Index(body, []byte("</head>"))
	if idx < 0 {
		return body
	}
	out := make([]byte, 0, len(body)+len(tags))
	out = append(out, body[:idx]...)
	out = append(out, tags...)
	out = append(out, body[idx:]...)
	return out
}

// IsHTMLContentType reports whether a Content-Type header denotes HTML.
func IsHTMLContentType(contentType string) bool {
	return strings.Contains(contentType, "text/html")
}
