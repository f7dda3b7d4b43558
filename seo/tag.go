package seo

import (
	"encoding/json"
	"strings"
)

// Kind is the element type of a Tag.
type Kind int

const (
	KindTitle Kind = iota
	KindMeta
	KindLink
	KindScript
)

// Element returns the HTML element name for k.
func (k Kind) Element() string {
	switch k {
	case KindTitle:
		return "title"
	case KindMeta:
		return "meta"
	case KindLink:
		return "link"
	case KindScript:
		return "script"
	}
	return ""
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Element()), nil
}

// Groups of tags that are replaced wholesale on every pass instead of being
// upserted by identity.
const (
	GroupOGImage        = "og-image"
	GroupOGNested       = "og-nested"
	GroupExtraMeta      = "extra-meta"
	GroupExtraLink      = "extra-link"
	GroupStructuredData = "structured-data"
)

// Attr is a single attribute.
type Attr struct {
	Key string `json:"key"`
	Val string `json:"val"`
}

// Tag describes one desired head element. Two tags with the same Kind and
// Identity designate the same logical element across renders.
type Tag struct {
	Kind     Kind   `json:"kind"`
	Identity []Attr `json:"identity,omitempty"`
	Attrs    []Attr `json:"attrs,omitempty"`
	Content  string `json:"content,omitempty"`
	Group    string `json:"group,omitempty"`
}

// Selector returns a CSS selector matching elements with t's identity,
// e.g. meta[name="description"] or link[rel="alternate"][hreflang="en"].
func (t Tag) Selector() string {
	var b strings.Builder
	b.WriteString(t.Kind.Element())
	for _, a := range t.Identity {
		b.WriteByte('[')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(cssQuote(a.Val))
		b.WriteByte(']')
	}
	return b.String()
}

// CategorySelector returns the selector of the elements a grouped tag's
// category replaces: every og:image* meta for images, the tag's own identity
// for the other groups. Ungrouped tags return "".
func (t Tag) CategorySelector() string {
	switch t.Group {
	case "":
		return ""
	case GroupOGImage:
		return `meta[property^="og:image"]`
	}
	return t.Selector()
}

// Attr returns the value of the named attribute.
func (t Tag) Attr(key string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func cssQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\a `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func metaName(name, content string) Tag {
	return Tag{
		Kind:     KindMeta,
		Identity: []Attr{{"name", name}},
		Attrs:    []Attr{{"name", name}, {"content", content}},
	}
}

func metaProperty(property, content string) Tag {
	return Tag{
		Kind:     KindMeta,
		Identity: []Attr{{"property", property}},
		Attrs:    []Attr{{"property", property}, {"content", content}},
	}
}

func link(rel, href string) Tag {
	return Tag{
		Kind:     KindLink,
		Identity: []Attr{{"rel", rel}},
		Attrs:    []Attr{{"rel", rel}, {"href", href}},
	}
}

func grouped(t Tag, group string) Tag {
	t.Group = group
	return t
}

// marshalJSONLD serializes a structured-data object without HTML escaping,
// so the output is the literal JSON a JSON-LD consumer expects.
func marshalJSONLD(v any) (string, bool) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimSuffix(b.String(), "\n"), true
}
