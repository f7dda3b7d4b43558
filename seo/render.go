package seo

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape HTML-escapes s for use in attribute values and text nodes.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Render returns the head markup for an effective configuration, one tag per
// line in synthesis order. Attribute values and the title text are escaped;
// structured-data JSON is written verbatim inside its script element, so
// callers must not put untrusted "</script>" sequences into structured data.
func Render(cfg Config) string {
	return RenderTags(Synthesize(cfg))
}

// RenderTags serializes already synthesized tags.
func RenderTags(tags []Tag) string {
	var b strings.Builder
	for i, t := range tags {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeTag(&b, t)
	}
	return b.String()
}

func writeTag(b *strings.Builder, t Tag) {
	el := t.Kind.Element()
	b.WriteByte('<')
	b.WriteString(el)
	for _, a := range t.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(Escape(a.Val))
		b.WriteByte('"')
	}
	switch t.Kind {
	case KindTitle:
		b.WriteByte('>')
		b.WriteString(Escape(t.Content))
	case KindScript:
		b.WriteByte('>')
		b.WriteString(t.Content)
	default:
		b.WriteString(" />")
		return
	}
	b.WriteString("</")
	b.WriteString(el)
	b.WriteByte('>')
}

// Component renders cfg's head markup as a templ component, for use inside
// a layout's <head>.
func Component(cfg Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(cfg))
		return err
	})
}
