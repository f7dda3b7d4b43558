package headkit

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/headkit/metadata"
	"github.com/eringen/headkit/seo"
)

func (a *App) handlePage(c echo.Context) error {
	page, err := a.Cache.GetPage(NormalizePath(c.Request().URL.Path))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	etag := `"` + page.Revision + `"`
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return Render(c, a.Views.Page(a.headFor(page), page))
}

// apiPage resolves the ?path= query of the head API endpoints.
func (a *App) apiPage(c echo.Context) (Page, error) {
	path := c.QueryParam("path")
	if path == "" {
		return Page{}, echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	page, err := a.Cache.GetPage(NormalizePath(path))
	if errors.Is(err, ErrNotFound) {
		return Page{}, echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	return page, err
}

// handleAPIHead returns the static head markup of a page.
func (a *App) handleAPIHead(c echo.Context) error {
	page, err := a.apiPage(c)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, seo.Render(a.effective(page)))
}

// handleAPITags returns the tag descriptors of a page, for clients that
// reconcile a live document themselves.
func (a *App) handleAPITags(c echo.Context) error {
	page, err := a.apiPage(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seo.Synthesize(a.effective(page)))
}

func (a *App) handleAPIMetadata(c echo.Context) error {
	page, err := a.apiPage(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metadata.FromConfig(a.effective(page)))
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return a.renderRSS(c, pages)
}

func (a *App) handleRobots(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("User-agent: *\nDisallow: /admin/\n")
	for _, p := range pages {
		if a.indexable(p) {
			continue
		}
		if p.Path == "/" {
			// A bare "/" would disallow the whole site.
			b.WriteString("Disallow: /$\n")
			continue
		}
		fmt.Fprintf(&b, "Disallow: %s\n", p.Path)
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}

// indexable reports whether search engines may index page once the site
// defaults are applied.
func (a *App) indexable(page Page) bool {
	return !strings.Contains(seo.ResolveRobots(a.effective(page)), "noindex")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin") {
		if code := errorCode(err); code >= 500 {
			c.Logger().Errorf("server error: %v", err)
		}
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	code := errorCode(err)
	if code == http.StatusNotFound {
		head := seo.Component(a.Provider.Merge(seo.Config{Title: "Not Found", NoIndex: seo.Bool(true)}))
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(head))
		return
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func errorCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
