package seo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Alternate is one language variant of the page.
type Alternate struct {
	Lang string
	Href string
}

// Alternates maps hreflang values to URLs in insertion order. It encodes as
// a JSON/YAML object and decodes keeping the document's key order, which is
// the order the alternate links are emitted in.
type Alternates []Alternate

// Get returns the href registered for lang.
func (a Alternates) Get(lang string) (string, bool) {
	for _, alt := range a {
		if alt.Lang == lang {
			return alt.Href, true
		}
	}
	return "", false
}

// Set replaces the href for lang in place, or appends a new entry.
func (a Alternates) Set(lang, href string) Alternates {
	for i := range a {
		if a[i].Lang == lang {
			a[i].Href = href
			return a
		}
	}
	return append(a, Alternate{Lang: lang, Href: href})
}

func (a Alternates) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, alt := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(alt.Lang)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(alt.Href)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Alternates) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*a = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("alternates: expected object, got %v", tok)
	}
	out := Alternates{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		lang, _ := tok.(string)
		var href string
		if err := dec.Decode(&href); err != nil {
			return fmt.Errorf("alternates[%s]: %w", lang, err)
		}
		out = out.Set(lang, href)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

func (a Alternates) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, alt := range a {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: alt.Lang},
			&yaml.Node{Kind: yaml.ScalarNode, Value: alt.Href},
		)
	}
	return n, nil
}

func (a *Alternates) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("alternates: line %d: expected mapping", n.Line)
	}
	out := Alternates{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var href string
		if err := n.Content[i+1].Decode(&href); err != nil {
			return err
		}
		out = out.Set(n.Content[i].Value, href)
	}
	*a = out
	return nil
}
