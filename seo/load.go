package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a Config from a .json, .yaml or .yml file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("seo: load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a Config in the given format ("json", "yaml", with or without
// a leading dot). Unknown formats are treated as YAML, which also accepts JSON.
func Decode(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, err
		}
	}
	return cfg, nil
}

// UnmarshalJSON keeps structured-data objects as raw JSON so their key order
// survives a decode/encode round trip.
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	aux := struct {
		*plain
		StructuredData []json.RawMessage `json:"structuredData"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.StructuredData = nil
	if aux.StructuredData != nil {
		c.StructuredData = make([]any, 0, len(aux.StructuredData))
	}
	for _, raw := range aux.StructuredData {
		c.StructuredData = append(c.StructuredData, raw)
	}
	return nil
}

// UnmarshalYAML converts structuredData entries to raw JSON in document
// key order.
func (c *Config) UnmarshalYAML(n *yaml.Node) error {
	type plain Config
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "structuredData" {
			continue
		}
		items := n.Content[i+1]
		if items.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: structuredData must be a list", items.Line)
		}
		c.StructuredData = make([]any, 0, len(items.Content))
		for _, item := range items.Content {
			var buf bytes.Buffer
			if err := writeYAMLAsJSON(&buf, item); err != nil {
				return err
			}
			c.StructuredData = append(c.StructuredData, json.RawMessage(buf.Bytes()))
		}
	}
	return nil
}

func writeYAMLAsJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeYAMLAsJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeYAMLAsJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeYAMLAsJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeYAMLAsJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return err
		}
		return writeJSONValue(buf, v)
	}
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
