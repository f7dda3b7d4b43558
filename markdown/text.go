package markdown

import (
	"html"
	"strings"
	"unicode/utf8"
)

// PlainText strips Markdown syntax from md and returns its prose as a single
// line. Code blocks, rules and table separators are dropped.
func PlainText(md string) string {
	var words []string
	inCode := false
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode || line == "" || strings.HasPrefix(line, "---") {
			continue
		}
		switch {
		case reHeading.MatchString(line):
			line = reHeading.FindStringSubmatch(line)[2]
		case strings.HasPrefix(line, "|"):
			if isTableSeparator(line) {
				continue
			}
			line = strings.Join(parseTableCells(line), " ")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "), strings.HasPrefix(line, "> "):
			line = line[2:]
		case reOrderedList.MatchString(line):
			line = reOrderedList.ReplaceAllString(line, "")
		}
		words = append(words, strings.Fields(stripInline(line))...)
	}
	return strings.Join(words, " ")
}

func stripInline(s string) string {
	s = reInlineCode.ReplaceAllString(s, "$1")
	s = reImg.ReplaceAllString(s, "$1")
	s = reLink.ReplaceAllString(s, "$1")
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnderscore.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnderscore.ReplaceAllString(s, "$1")
	return html.UnescapeString(s)
}

// Excerpt returns the plain text of md cut to at most max runes at a word
// boundary. An ellipsis marks a cut.
func Excerpt(md string, max int) string {
	text := PlainText(md)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
