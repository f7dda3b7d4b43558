package head

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory HTML document whose <head> implements Head.
// Selectors are evaluated with goquery.
type Document struct {
	doc  *goquery.Document
	head *html.Node
}

// NewDocument returns an empty HTML document.
func NewDocument() *Document {
	d, err := ParseString(emptyDocument)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads an HTML document. The parser always synthesizes a <head>.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	sel := doc.Find("head")
	if sel.Length() == 0 {
		return nil, errors.New("head: document has no <head>")
	}
	return &Document{doc: doc, head: sel.Get(0)}, nil
}

// ParseString reads an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Selection returns the goquery selection of the document root.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

func (d *Document) Query(selector string) []Element {
	var out []Element
	goquery.NewDocumentFromNode(d.head).Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Node{n: s.Get(0)})
	})
	return out
}

func (d *Document) Create(tag string) Element {
	return Node{n: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

func (d *Document) Append(el Element) {
	n := el.(Node).n
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	d.head.AppendChild(n)
}

func (d *Document) Remove(el Element) {
	n := el.(Node).n
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// String returns the rendered document.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// HeadHTML returns the rendered children of <head>, one element per line.
func (d *Document) HeadHTML() string {
	var lines []string
	for c := d.head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		var buf bytes.Buffer
		if err := html.Render(&buf, c); err != nil {
			continue
		}
		lines = append(lines, buf.String())
	}
	return strings.Join(lines, "\n")
}

// Node is an Element backed by an *html.Node. Two Nodes are equal when they
// wrap the same node.
type Node struct {
	n *html.Node
}

func (e Node) Attr(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e Node) SetAttr(key, val string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = val
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
}

func (e Node) Text() string {
	var b strings.Builder
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func (e Node) SetText(s string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if s != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}
