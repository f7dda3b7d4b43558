// Package markdown renders the small Markdown dialect used for page bodies
// and derives plain-text excerpts from it.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reOrderedList = regexp.MustCompile(`^\d+\.\s`)
	reHeading     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// block is the kind of the currently open block element.
type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockTable
	blockCode
)

type renderer struct {
	buf       *bytes.Buffer
	open      block
	tableBody bool
	images    int
}

// close ends the open block, if any.
func (r *renderer) close() {
	switch r.open {
	case blockPara:
		r.buf.WriteString("</p>")
	case blockList:
		r.buf.WriteString("</ul>")
	case blockOrdered:
		r.buf.WriteString("</ol>")
	case blockQuote:
		r.buf.WriteString("</blockquote>")
	case blockTable:
		if r.tableBody {
			r.buf.WriteString("</tbody>")
		}
		r.buf.WriteString("</table>")
		r.tableBody = false
	case blockCode:
		r.buf.WriteString("</code></pre>")
	}
	r.open = blockNone
}

// enter opens b with tag unless b is already open. It reports whether b
// was already open.
func (r *renderer) enter(b block, tag string) bool {
	if r.open == b {
		return true
	}
	r.close()
	r.buf.WriteString(tag)
	r.open = b
	return false
}

func (r *renderer) inline(s string) {
	r.buf.WriteString(FormatInline(strings.TrimSpace(s), &r.images))
}

func (r *renderer) tableRow(line, cell string) {
	r.buf.WriteString("<tr>")
	for _, c := range parseTableCells(line) {
		r.buf.WriteString("<" + cell + ">")
		r.inline(c)
		r.buf.WriteString("</" + cell + ">")
	}
	r.buf.WriteString("</tr>")
}

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf}
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if r.open == blockCode {
				r.close()
				continue
			}
			r.close()
			if lang := strings.TrimSpace(line[3:]); lang != "" {
				buf.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
			} else {
				buf.WriteString("<pre><code>")
			}
			r.open = blockCode
			continue
		}
		if r.open == blockCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			r.close()
		case strings.HasPrefix(line, "---"):
			r.close()
			buf.WriteString("<hr/>")
		case reHeading.MatchString(line):
			r.close()
			m := reHeading.FindStringSubmatch(line)
			level := string(rune('0' + len(m[1])))
			buf.WriteString("<h" + level + ">")
			r.inline(m[2])
			buf.WriteString("</h" + level + ">")
		case strings.HasPrefix(line, "|"):
			switch {
			case !r.enter(blockTable, "<table>"):
				buf.WriteString("<thead>")
				r.tableRow(line, "th")
				buf.WriteString("</thead>")
			case isTableSeparator(line):
				if !r.tableBody {
					buf.WriteString("<tbody>")
					r.tableBody = true
				}
			default:
				if !r.tableBody {
					buf.WriteString("<tbody>")
					r.tableBody = true
				}
				r.tableRow(line, "td")
			}
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			r.enter(blockList, "<ul>")
			buf.WriteString("<li>")
			r.inline(line[2:])
			buf.WriteString("</li>")
		case reOrderedList.MatchString(line):
			r.enter(blockOrdered, "<ol>")
			buf.WriteString("<li>")
			r.inline(reOrderedList.ReplaceAllString(line, ""))
			buf.WriteString("</li>")
		case strings.HasPrefix(line, "> "):
			if r.enter(blockQuote, "<blockquote>") {
				buf.WriteByte(' ')
			}
			r.inline(line[2:])
		default:
			if r.enter(blockPara, "<p>") {
				buf.WriteByte('\n')
			}
			r.inline(line)
		}
	}
	r.close()
}

func parseTableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	for _, cell := range parseTableCells(line) {
		if strings.Trim(cell, "-:") != "" {
			return false
		}
	}
	return true
}
