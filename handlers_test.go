package headkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/headkit/metadata"
	"github.com/eringen/headkit/seo"
)

type testServer struct {
	app    *App
	srv    *httptest.Server
	client *http.Client
	csrf   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	a := New(SiteConfig{
		Name:          "Acme",
		URL:           "https://acme.test",
		DatabasePath:  filepath.Join(dir, "pages.db"),
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	}, WithStaticDir(dir))
	require.NoError(t, a.Init())

	srv := httptest.NewServer(a.Echo)
	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testServer{app: a, srv: srv, client: client}
}

func (ts *testServer) seed(t *testing.T, pages ...Page) []Page {
	t.Helper()
	var saved []Page
	for _, p := range pages {
		s, err := ts.app.Store.SavePage(p)
		require.NoError(t, err)
		saved = append(saved, s)
	}
	ts.app.Cache.Invalidate()
	return saved
}

func (ts *testServer) do(t *testing.T, method, path string, body any, header ...string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.csrf != "" {
		req.Header.Set("X-CSRF-Token", ts.csrf)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func (ts *testServer) get(t *testing.T, path string, header ...string) (*http.Response, string) {
	t.Helper()
	return ts.do(t, http.MethodGet, path, nil, header...)
}

// login fetches a CSRF token and opens an admin session.
func (ts *testServer) login(t *testing.T) {
	t.Helper()
	resp, body := ts.get(t, "/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st adminStatus
	require.NoError(t, json.Unmarshal([]byte(body), &st))
	require.NotEmpty(t, st.CSRFToken)
	ts.csrf = st.CSRFToken

	resp, _ = ts.do(t, http.MethodPost, "/admin/login", loginRequest{Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func aboutPage() Page {
	return Page{
		Path:      "/about",
		Published: true,
		Body:      "# About\n\nWho we are.",
		Config: seo.Config{
			Title:       "About",
			Description: "About Acme",
			Alternates: seo.Alternates{
				{Lang: "en", Href: "https://acme.test/about"},
				{Lang: "de", Href: "https://acme.test/de/about"},
			},
		},
	}
}

func TestPageServesMergedHead(t *testing.T) {
	ts := newTestServer(t)
	saved := ts.seed(t, aboutPage())

	resp, body := ts.get(t, "/about")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>About | Acme</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://acme.test/about" />`)
	assert.Contains(t, body, `<meta property="og:site_name" content="Acme" />`)
	assert.Contains(t, body, "<h1>About</h1>")
	assert.Equal(t, `"`+saved[0].Revision+`"`, resp.Header.Get("ETag"))
	assert.Equal(t, "public, no-cache", resp.Header.Get("Cache-Control"))

	resp, _ = ts.get(t, "/about", "If-None-Match", resp.Header.Get("ETag"))
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestTrailingSlashRedirects(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage())

	resp, _ := ts.get(t, "/about/")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/about", resp.Header.Get("Location"))
}

func TestMissingAndDraftPagesAre404(t *testing.T) {
	ts := newTestServer(t)
	draft := aboutPage()
	draft.Published = false
	ts.seed(t, draft)

	for _, path := range []string{"/about", "/nope"} {
		resp, body := ts.get(t, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, "<title>Not Found | Acme</title>", path)
		assert.Contains(t, body, `<meta name="robots" content="noindex" />`, path)
	}
}

func TestAPIHead(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage())

	resp, body := ts.get(t, "/api/head?path=/about")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "<title>About | Acme</title>\n"), body)
	assert.Contains(t, body, `<link rel="alternate" hreflang="de" href="https://acme.test/de/about" />`)

	resp, _ = ts.get(t, "/api/head")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = ts.get(t, "/api/head?path=/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPITags(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage())

	resp, body := ts.get(t, "/api/tags?path=/about")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tags []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &tags))
	require.NotEmpty(t, tags)
	assert.Equal(t, "title", tags[0]["kind"])
	assert.Equal(t, "About | Acme", tags[0]["content"])
}

func TestAPIMetadata(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage())

	resp, body := ts.get(t, "/api/metadata?path=/about")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var md metadata.Metadata
	require.NoError(t, json.Unmarshal([]byte(body), &md))
	assert.Equal(t, "About | Acme", md.Title)
	assert.Equal(t, "Acme", md.ApplicationName)
	require.NotNil(t, md.Alternates)
	assert.Equal(t, "https://acme.test/about", md.Alternates.Canonical)
	assert.Equal(t, "https://acme.test/de/about", md.Alternates.Languages["de"])
}

func hiddenPage() Page {
	return Page{Path: "/secret", Published: true, Config: seo.Config{Title: "Secret", NoIndex: seo.Bool(true)}}
}

func TestSitemapListsIndexablePages(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, Page{Path: "/", Published: true}, aboutPage(), hiddenPage())

	resp, body := ts.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<loc>https://acme.test/</loc>")
	assert.Contains(t, body, "<loc>https://acme.test/about</loc>")
	assert.Contains(t, body, `hreflang="de"`)
	assert.Contains(t, body, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	assert.NotContains(t, body, "secret")
}

func TestRobotsDisallowsNoindexPages(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage(), hiddenPage())

	resp, body := ts.get(t, "/robots.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Disallow: /admin/\n")
	assert.Contains(t, body, "Disallow: /secret\n")
	assert.NotContains(t, body, "Disallow: /about")
	assert.Contains(t, body, "Sitemap: https://acme.test/sitemap.xml\n")
}

func TestFeedListsArticles(t *testing.T) {
	ts := newTestServer(t)
	older := Page{Path: "/blog/one", Published: true, Config: seo.Config{
		Title:     "One",
		OpenGraph: &seo.OpenGraph{Type: "article", Article: &seo.Article{PublishedTime: "2024-01-01", Tags: []string{"go"}}},
	}}
	newer := Page{Path: "/blog/two", Published: true, Config: seo.Config{
		Title:     "Two",
		OpenGraph: &seo.OpenGraph{Type: "article", Article: &seo.Article{PublishedTime: "2024-02-01T10:00:00Z"}},
	}}
	ts.seed(t, older, newer, aboutPage())

	resp, body := ts.get(t, "/feed.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, strings.Count(body, "<item>"))
	assert.Less(t, strings.Index(body, "<title>Two</title>"), strings.Index(body, "<title>One</title>"))
	assert.Contains(t, body, "<category>go</category>")
	assert.NotContains(t, body, "<title>About</title>")
}

func TestAdminRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.get(t, "/admin/pages")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, body := ts.get(t, "/admin")
	var st adminStatus
	require.NoError(t, json.Unmarshal([]byte(body), &st))
	assert.False(t, st.Authenticated)

	resp, _ = ts.do(t, http.MethodPost, "/admin/login", loginRequest{Password: "secret"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "login without a csrf token")

	ts.csrf = st.CSRFToken
	resp, _ = ts.do(t, http.MethodPost, "/admin/login", loginRequest{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminSaveAndDelete(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	page := Page{
		Path:      "news/",
		Published: true,
		Body:      "Hello <script>alert(1)</script>world",
		Config:    seo.Config{Title: "News"},
	}
	resp, body := ts.do(t, http.MethodPut, "/admin/pages", page)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var saved Page
	require.NoError(t, json.Unmarshal([]byte(body), &saved))
	assert.Equal(t, "/news", saved.Path)
	assert.NotEmpty(t, saved.Revision)
	assert.NotContains(t, saved.Body, "<script>")

	resp, body = ts.get(t, "/news")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>News | Acme</title>")

	resp, body = ts.get(t, "/admin/pages")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pages []Page
	require.NoError(t, json.Unmarshal([]byte(body), &pages))
	assert.Len(t, pages, 1)

	resp, _ = ts.do(t, http.MethodDelete, "/admin/pages?path=/news", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = ts.get(t, "/news")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminSaveValidates(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp, _ := ts.do(t, http.MethodPut, "/admin/pages", Page{Path: "/" + strings.Repeat("a", 2048)})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPreviewLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, aboutPage())
	ts.login(t)

	req := previewRequest{Path: "/about", Config: seo.Config{
		Title:     "About (draft)",
		ExtraMeta: []seo.MetaTag{{Name: "keywords", Content: "draft"}},
	}}
	resp, body := ts.do(t, http.MethodPost, "/admin/preview", req)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var res PreviewResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.True(t, res.Changed)
	assert.Contains(t, res.Head, "<title>About (draft) | Acme</title>")
	assert.Contains(t, res.Head, `<meta name="keywords" content="draft"/>`)
	assert.Equal(t, 1, strings.Count(res.Head, "<title>"))
	assert.Equal(t, 1, strings.Count(res.Head, `rel="canonical"`))

	resp, body = ts.do(t, http.MethodPost, "/admin/preview", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.False(t, res.Changed, "identical config is skipped")

	resp, body = ts.do(t, http.MethodDelete, "/admin/preview?path=/about", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.NotContains(t, res.Head, "keywords", "preview-created tags are removed")
	assert.Contains(t, res.Head, `rel="canonical"`, "published tags stay")

	resp, _ = ts.do(t, http.MethodDelete, "/admin/preview?path=/about", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreviewOfUnsavedPage(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp, body := ts.do(t, http.MethodPost, "/admin/preview", previewRequest{Path: "/fresh", Config: seo.Config{Title: "Fresh"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var res PreviewResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Contains(t, res.Head, `<link rel="canonical" href="https://acme.test/fresh"/>`)
	assert.Positive(t, res.Owned)
	assert.Equal(t, 1, ts.app.Previews.Len())

	_, body = ts.do(t, http.MethodDelete, "/admin/preview?path=/fresh", nil)
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Empty(t, res.Head)
	assert.Zero(t, ts.app.Previews.Len())
}
