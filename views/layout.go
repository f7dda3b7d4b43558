// Package views holds the default page layouts. Each layout is a templ
// component; the <head> contents are passed in already rendered.
package views

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/headkit/markdown"
)

// document writes a complete HTML document around head and body.
func document(ctx context.Context, w io.Writer, lang string, head, body templ.Component) error {
	if lang == "" {
		lang = "en"
	}
	if _, err := io.WriteString(w, `<!DOCTYPE html>`+"\n"+`<html lang="`+html.EscapeString(lang)+`">`+"\n<head>\n"+`<meta charset="utf-8" />`+"\n"); err != nil {
		return err
	}
	if head != nil {
		if err := head.Render(ctx, w); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n</head>\n<body>\n<main>\n"); err != nil {
		return err
	}
	if err := body.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n</main>\n</body>\n</html>\n")
	return err
}

// Page renders a stored page: head markup plus the Markdown body.
func Page(head templ.Component, lang, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(ctx, w, lang, head, markdown.Markdown(body))
	})
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(head templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(ctx, w, "", head, text(`<h1>Page not found</h1>`+"\n"+`<p><a href="/">Back to the home page</a></p>`))
	})
}

// ServerError renders the 500 page. It carries no SEO head since it must
// render even when configuration lookups fail.
func ServerError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return document(ctx, w, "", text(`<title>Server error</title>`+"\n"+`<meta name="robots" content="noindex" />`), text(`<h1>Something went wrong</h1>`))
	})
}
