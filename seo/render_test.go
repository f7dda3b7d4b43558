package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderEscapesAttributes(t *testing.T) {
	got := Render(Config{Description: `He said "hi" & <left>`})
	want := `<meta name="description" content="He said &quot;hi&quot; &amp; &lt;left&gt;" />`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEscapesTitle(t *testing.T) {
	got := Render(Config{Title: "Tom's <b>"})
	want := "<title>Tom&#39;s &lt;b&gt;</title>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderStructuredDataVerbatim(t *testing.T) {
	got := Render(Config{StructuredData: []any{map[string]any{"@type": "Thing"}}})
	want := `<script type="application/ld+json">{"@type":"Thing"}</script>`
	if !strings.Contains(got, want) {
		t.Errorf("Render = %q, want substring %q", got, want)
	}

	got = Render(Config{StructuredData: []any{map[string]any{"name": "a<b & c"}}})
	if !strings.Contains(got, `{"name":"a<b & c"}`) {
		t.Errorf("structured data was HTML-escaped: %q", got)
	}
}

func TestRenderStructuredDataKeepsKeyOrder(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{"structuredData":[{"@context":"https://schema.org","@type":"Article","headline":"H"}]}`), &cfg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := `{"@context":"https://schema.org","@type":"Article","headline":"H"}`
	if got := Render(cfg); !strings.Contains(got, want) {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderLines(t *testing.T) {
	got := Render(Config{
		Title:     "About",
		Canonical: "https://x.test/about?a=1&b=2",
		OpenGraph: &OpenGraph{Images: []OGImage{{URL: "https://x.test/a.png", Width: 1200}}},
	})
	want := strings.Join([]string{
		"<title>About</title>",
		`<link rel="canonical" href="https://x.test/about?a=1&amp;b=2" />`,
		`<meta property="og:image" content="https://x.test/a.png" />`,
		`<meta property="og:image:width" content="1200" />`,
	}, "\n")
	if got != want {
		t.Errorf("Render =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(Config{}); got != "" {
		t.Errorf("Render(empty) = %q, want empty", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	cfg := Config{
		Title:      "X",
		Alternates: Alternates{{"fr", "/fr"}, {"en", "/en"}, {"de", "/de"}},
	}
	first := Render(cfg)
	for i := 0; i < 10; i++ {
		if got := Render(cfg); got != first {
			t.Fatalf("Render not deterministic:\n%s\n%s", first, got)
		}
	}
	if strings.Index(first, `hreflang="fr"`) > strings.Index(first, `hreflang="en"`) {
		t.Errorf("alternates out of insertion order: %s", first)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Title: "T", Description: "D"}
	if err := Component(cfg).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != Render(cfg) {
		t.Errorf("Component output = %q, want %q", buf.String(), Render(cfg))
	}
}

func TestProviderRender(t *testing.T) {
	p := NewProvider(Config{TitleTemplate: String("%s | Site"), Twitter: &Twitter{Site: "@site"}})
	got := p.Render(Config{Title: "Home", Twitter: &Twitter{Card: "summary"}})
	for _, want := range []string{
		"<title>Home | Site</title>",
		`<meta name="twitter:card" content="summary" />`,
		`<meta name="twitter:site" content="@site" />`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render missing %q in:\n%s", want, got)
		}
	}
}
