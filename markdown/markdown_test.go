package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFormatInlineBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineItalic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text *italic* more", "text <em>italic</em> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineNested(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"__bold _italic_ text__", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineBoldNotMatchedAsItalic(t *testing.T) {
	input := "**bold**"
	got := FormatInline(input, new(int))
	if strings.Contains(got, "<em>") {
		t.Errorf("FormatInline(%q) = %q, should not contain <em>", input, got)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	input := "```\ncode here\n```"
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "<code>") {
		t.Errorf("Render code block failed: %q", got)
	}
	if !strings.Contains(got, "code here") {
		t.Errorf("Render code block missing content: %q", got)
	}
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	input := "```go\nfmt.Println(\"<hi>\")\n```"
	var buf bytes.Buffer
	Render(&buf, input)
	want := "<pre><code class=\"language-go\">fmt.Println(&#34;&lt;hi&gt;&#34;)\n</code></pre>"
	if got := buf.String(); got != want {
		t.Errorf("Render(%q) = %q, want %q", input, got, want)
	}
}

func TestRenderUnterminatedCodeBlockIsClosed(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, "```\nopen")
	if got := buf.String(); got != "<pre><code>open\n</code></pre>" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "<h1>Heading 1</h1>"},
		{"## Heading 2", "<h2>Heading 2</h2>"},
		{"### Heading 3", "<h3>Heading 3</h3>"},
		{"###### Heading 6", "<h6>Heading 6</h6>"},
		{"#hashtag", "<p>#hashtag</p>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Render(&buf, tt.input)
		got := buf.String()
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinkWithUnderscoresInURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title">Wikipedia</a>`,
		},
		{
			"Visit [link](https://example.com/my_page/sub_path) for info",
			`Visit <a href="https://example.com/my_page/sub_path">link</a> for info`,
		},
		{
			"[link](https://example.com/a_b_c/d_e)",
			`<a href="https://example.com/a_b_c/d_e">link</a>`,
		},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinkNewTab(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Google](https://google.com)^",
			`<a href="https://google.com" target="_blank" rel="noopener noreferrer">Google</a>`,
		},
		{
			"[Google](https://google.com)",
			`<a href="https://google.com">Google</a>`,
		},
		{
			"Check [this](https://example.com)^ out",
			`Check <a href="https://example.com" target="_blank" rel="noopener noreferrer">this</a> out`,
		},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"`code`", "<code>code</code>"},
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`a` and `b`", "<code>a</code> and <code>b</code>"},
		// bold inside backticks should not be formatted
		{"`**not bold**`", "<code>**not bold**</code>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input, new(int))
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderInlineCodeInParagraph(t *testing.T) {
	input := "Run `go test` to verify."
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<code>go test</code>") {
		t.Errorf("Render(%q) = %q, want inline code tags", input, got)
	}
}

func TestRenderList(t *testing.T) {
	input := "- item 1\n- item 2"
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	expected := "<ul><li>item 1</li><li>item 2</li></ul>"
	if got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderOrderedList(t *testing.T) {
	input := "1. first\n2. second\n3. third"
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	expected := "<ol><li>first</li><li>second</li><li>third</li></ol>"
	if got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderOrderedListWithInline(t *testing.T) {
	input := "1. **bold** item\n2. *italic* item"
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	expected := "<ol><li><strong>bold</strong> item</li><li><em>italic</em> item</li></ol>"
	if got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderOrderedListFollowedByParagraph(t *testing.T) {
	input := "1. item one\n2. item two\n\nsome text"
	var buf bytes.Buffer
	Render(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<ol>") || !strings.Contains(got, "</ol>") {
		t.Errorf("expected <ol> tags: %q", got)
	}
	if !strings.Contains(got, "<p>") {
		t.Errorf("expected paragraph after list: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	input := "| a | b |\n|---|:-:|\n| 1 | **2** |"
	var buf bytes.Buffer
	Render(&buf, input)
	want := "<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td><strong>2</strong></td></tr></tbody></table>"
	if got := buf.String(); got != want {
		t.Errorf("Render(%q) = %q, want %q", input, got, want)
	}
}

func TestFormatInlineImages(t *testing.T) {
	count := 0
	got := FormatInline("![one](/a.png) ![two](/b.png) ![bad](javascript:x)", &count)
	want := `<img fetchpriority="high" alt="one" src="/a.png" decoding="async"/> ` +
		`<img loading="lazy" alt="two" src="/b.png" decoding="async"/> bad`
	if got != want {
		t.Errorf("FormatInline images\n  got:  %q\n  want: %q", got, want)
	}
	if count != 2 {
		t.Errorf("image count = %d, want 2", count)
	}
}

func TestFormatInlineEscapesHTML(t *testing.T) {
	got := FormatInline(`<script>alert("x")</script>`, new(int))
	if strings.Contains(got, "<script>") {
		t.Errorf("FormatInline must escape raw HTML: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("para one\nstill one\n\n> quoted").Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	want := "<p>para one\nstill one</p><blockquote>quoted</blockquote>"
	if got := buf.String(); got != want {
		t.Errorf("Markdown = %q, want %q", got, want)
	}
}
