package head

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/eringen/headkit/seo"
)

// countingHead wraps a Head and counts every DOM mutation.
type countingHead struct {
	inner     Head
	mutations int
}

type countingElement struct {
	Element
	h *countingHead
}

func (e countingElement) SetAttr(key, val string) {
	e.h.mutations++
	e.Element.SetAttr(key, val)
}

func (e countingElement) SetText(s string) {
	e.h.mutations++
	e.Element.SetText(s)
}

func (c *countingHead) Query(selector string) []Element {
	found := c.inner.Query(selector)
	for i, el := range found {
		found[i] = countingElement{Element: el, h: c}
	}
	return found
}

func (c *countingHead) Create(tag string) Element {
	c.mutations++
	return countingElement{Element: c.inner.Create(tag), h: c}
}

func (c *countingHead) Append(el Element) {
	c.mutations++
	c.inner.Append(el.(countingElement).Element)
}

func (c *countingHead) Remove(el Element) {
	c.mutations++
	c.inner.Remove(el.(countingElement).Element)
}

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	d, err := ParseString(s)
	require.NoError(t, err)
	return d
}

func find(d *Document, sel string) *goquery.Selection {
	return d.Selection().Find("head").Find(sel)
}

func fullConfig() seo.Config {
	return seo.Config{
		Title:       "About",
		Description: "About us",
		Canonical:   "https://x.test/about",
		Alternates:  seo.Alternates{{Lang: "en", Href: "https://x.test/en/about"}},
		OpenGraph: &seo.OpenGraph{
			Type:   "website",
			Images: []seo.OGImage{{URL: "https://x.test/a.png", Width: 1200}},
		},
		Twitter:        &seo.Twitter{Card: "summary"},
		ExtraMeta:      []seo.MetaTag{{Name: "keywords", Content: "a,b"}},
		StructuredData: []any{map[string]any{"@type": "Thing"}},
	}
}

func TestApplyIdempotent(t *testing.T) {
	h := &countingHead{inner: NewDocument()}
	r := New(h)

	require.True(t, r.Apply(fullConfig()))
	require.NotZero(t, h.mutations)

	h.mutations = 0
	require.False(t, r.Apply(fullConfig()), "identical config must skip the pass")
	require.Zero(t, h.mutations)
}

func TestUpdateWritesOnlyDifferences(t *testing.T) {
	doc := NewDocument()
	cfg := seo.Config{Title: "T", Description: "D", Canonical: "https://x.test/"}
	require.True(t, New(doc).Apply(cfg))

	h := &countingHead{inner: doc}
	require.True(t, New(h).Apply(cfg))
	require.Zero(t, h.mutations, "a converged head needs no writes")
}

func TestApplyCreatesTags(t *testing.T) {
	doc := NewDocument()
	New(doc).Apply(fullConfig())

	require.Equal(t, "About", find(doc, "title").Text())
	require.Equal(t, "About us", find(doc, `meta[name="description"]`).AttrOr("content", ""))
	require.Equal(t, "https://x.test/about", find(doc, `link[rel="canonical"]`).AttrOr("href", ""))
	require.Equal(t, "https://x.test/en/about", find(doc, `link[rel="alternate"][hreflang="en"]`).AttrOr("href", ""))
	require.Equal(t, "1200", find(doc, `meta[property="og:image:width"]`).AttrOr("content", ""))
	require.Equal(t, `{"@type":"Thing"}`, find(doc, `script[type="application/ld+json"]`).Text())
}

func TestDetachRemovesOnlyOwned(t *testing.T) {
	doc := mustParse(t, `<html><head><title>Static</title><meta name="description" content="old"><link rel="stylesheet" href="/app.css"></head><body></body></html>`)
	r := New(doc)
	r.Apply(fullConfig())

	require.Equal(t, "About", find(doc, "title").Text(), "pre-existing title updated in place")
	require.Equal(t, 1, find(doc, "title").Length())
	require.Equal(t, "About us", find(doc, `meta[name="description"]`).AttrOr("content", ""))

	r.Detach()
	require.True(t, r.Detached())
	require.Empty(t, r.Owned())

	require.Equal(t, 1, find(doc, "title").Length(), "pre-existing title survives detach")
	require.Equal(t, 1, find(doc, `meta[name="description"]`).Length())
	require.Equal(t, 1, find(doc, `link[rel="stylesheet"]`).Length())
	for _, sel := range []string{
		`link[rel="canonical"]`,
		`link[rel="alternate"]`,
		`meta[property^="og:"]`,
		`meta[name^="twitter:"]`,
		`meta[name="keywords"]`,
		`script`,
	} {
		require.Equal(t, 0, find(doc, sel).Length(), "%s should be removed on detach", sel)
	}
}

func TestApplyAfterDetachIsNoop(t *testing.T) {
	doc := NewDocument()
	r := New(doc)
	r.Apply(seo.Config{Title: "A"})
	r.Detach()

	require.False(t, r.Apply(seo.Config{Title: "B"}))
	require.Equal(t, 0, find(doc, "title").Length())
	r.Detach()
}

func TestOGImageReplacement(t *testing.T) {
	doc := NewDocument()
	r := New(doc)
	r.Apply(seo.Config{OpenGraph: &seo.OpenGraph{Images: []seo.OGImage{{URL: "a"}}}})
	r.Apply(seo.Config{OpenGraph: &seo.OpenGraph{Images: []seo.OGImage{{URL: "b"}}}})

	imgs := find(doc, `meta[property="og:image"]`)
	require.Equal(t, 1, imgs.Length())
	require.Equal(t, "b", imgs.AttrOr("content", ""))
}

func TestGroupedReplacementRemovesForeignElements(t *testing.T) {
	doc := mustParse(t, `<html><head><script type="application/ld+json">{"pre":1}</script></head></html>`)
	r := New(doc)
	r.Apply(seo.Config{StructuredData: []any{map[string]any{"n": 1}}})
	r.Apply(seo.Config{StructuredData: []any{map[string]any{"n": 2}, map[string]any{"n": 3}}})

	var bodies []string
	find(doc, "script").Each(func(_ int, s *goquery.Selection) {
		bodies = append(bodies, s.Text())
	})
	require.Equal(t, []string{`{"n":2}`, `{"n":3}`}, bodies)
}

func TestGroupsReplaceRenderedBaseline(t *testing.T) {
	published := seo.Config{
		Title:          "Published",
		OpenGraph:      &seo.OpenGraph{Images: []seo.OGImage{{URL: "https://x.test/a.png", Width: 1200, Alt: "a"}}},
		StructuredData: []any{map[string]any{"n": 1}},
	}
	doc := mustParse(t, "<html><head>"+seo.Render(published)+"</head></html>")

	r := New(doc)
	require.True(t, r.Apply(seo.Config{
		Title:          "Draft",
		OpenGraph:      &seo.OpenGraph{Images: []seo.OGImage{{URL: "https://x.test/b.png"}}},
		StructuredData: []any{map[string]any{"n": 2}},
	}))

	imgs := find(doc, `meta[property="og:image"]`)
	require.Equal(t, 1, imgs.Length())
	require.Equal(t, "https://x.test/b.png", imgs.AttrOr("content", ""))
	require.Equal(t, 0, find(doc, `meta[property="og:image:width"]`).Length())
	require.Equal(t, 0, find(doc, `meta[property="og:image:alt"]`).Length())

	scripts := find(doc, `script[type="application/ld+json"]`)
	require.Equal(t, 1, scripts.Length())
	require.Equal(t, `{"n":2}`, scripts.Text())
	require.Equal(t, "Draft", find(doc, "title").Text())
}

func TestUnchangedGroupsAreNotRebuilt(t *testing.T) {
	h := &countingHead{inner: NewDocument()}
	r := New(h)
	cfg := seo.Config{
		Title:          "T",
		Robots:         "index",
		NoIndex:        seo.Bool(true),
		OpenGraph:      &seo.OpenGraph{Images: []seo.OGImage{{URL: "a"}, {URL: "b"}}},
		ExtraMeta:      []seo.MetaTag{{Name: "keywords", Content: "k"}},
		StructuredData: []any{map[string]any{"n": 1}},
	}
	require.True(t, r.Apply(cfg))
	owned := len(r.Owned())

	// The effective config differs but synthesizes the same tags.
	cfg.Robots = ""
	h.mutations = 0
	require.True(t, r.Apply(cfg))
	require.Zero(t, h.mutations)
	require.Len(t, r.Owned(), owned)
}

func TestRemovedGroupElementIsRecreated(t *testing.T) {
	doc := NewDocument()
	r := New(doc)
	cfg := seo.Config{StructuredData: []any{map[string]any{"n": 1}}}
	r.Apply(cfg)
	for _, el := range doc.Query(`script[type="application/ld+json"]`) {
		doc.Remove(el)
	}

	cfg.Title = "T"
	r.Apply(cfg)
	require.Equal(t, `{"n":1}`, find(doc, `script[type="application/ld+json"]`).Text())
}

func TestRemovesOwnedTagsNoLongerDesired(t *testing.T) {
	doc := mustParse(t, `<html><head><meta name="robots" content="all"></head></html>`)
	r := New(doc)
	r.Apply(seo.Config{Canonical: "https://x.test/", NoIndex: seo.Bool(true)})
	require.Equal(t, "noindex", find(doc, `meta[name="robots"]`).AttrOr("content", ""))

	r.Apply(seo.Config{Title: "Only title"})
	require.Equal(t, 0, find(doc, `link[rel="canonical"]`).Length(), "owned canonical removed")
	require.Equal(t, 1, find(doc, `meta[name="robots"]`).Length(), "pre-existing robots kept")
}

func TestUpsertKeepsElementIdentity(t *testing.T) {
	doc := NewDocument()
	r := New(doc)
	r.Apply(seo.Config{Description: "a"})
	before := doc.Query(`meta[name="description"]`)
	require.Len(t, before, 1)

	r.Apply(seo.Config{Description: "b"})
	after := doc.Query(`meta[name="description"]`)
	require.Len(t, after, 1)
	require.Equal(t, before[0], after[0], "same logical tag must be updated in place")
	v, _ := after[0].Attr("content")
	require.Equal(t, "b", v)
	require.Len(t, r.Owned(), 1)
}

func TestIdentityCollisionLastWriterWins(t *testing.T) {
	doc := NewDocument()
	New(doc).Apply(seo.Config{Alternates: seo.Alternates{
		{Lang: "en", Href: "/first"},
		{Lang: "en", Href: "/second"},
	}})
	links := find(doc, `link[hreflang="en"]`)
	require.Equal(t, 1, links.Length())
	require.Equal(t, "/second", links.AttrOr("href", ""))
}

func TestWithProviderMergesDefaults(t *testing.T) {
	doc := NewDocument()
	p := seo.NewProvider(seo.Config{
		TitleTemplate: seo.String("%s | Site"),
		Twitter:       &seo.Twitter{Site: "@site"},
	})
	New(doc, WithProvider(p)).Apply(seo.Config{Title: "Home", Twitter: &seo.Twitter{Card: "summary"}})

	require.Equal(t, "Home | Site", find(doc, "title").Text())
	require.Equal(t, "@site", find(doc, `meta[name="twitter:site"]`).AttrOr("content", ""))
	require.Equal(t, "summary", find(doc, `meta[name="twitter:card"]`).AttrOr("content", ""))
}

func TestNilHeadIsNoop(t *testing.T) {
	r := New(nil)
	require.False(t, r.Apply(fullConfig()))
	r.Detach()
	require.False(t, r.Detached())
	require.Empty(t, r.Owned())

	var doc *Document
	require.NotPanics(t, func() {
		r := New(doc)
		require.False(t, r.Apply(fullConfig()))
		r.Detach()
	})

	var nilReconciler *Reconciler
	require.False(t, nilReconciler.Apply(fullConfig()))
	nilReconciler.Detach()
}

func TestReconciledHeadMatchesStaticRender(t *testing.T) {
	doc := NewDocument()
	cfg := fullConfig()
	New(doc).Apply(cfg)

	static := mustParse(t, "<html><head>"+seo.Render(cfg)+"</head></html>")
	require.Equal(t, static.HeadHTML(), doc.HeadHTML())
	require.True(t, strings.Contains(doc.String(), "<title>About</title>"))
}
