package headkit

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/headkit/seo"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// effective returns the configuration served for page: the page config
// merged onto the site defaults, with the canonical URL derived from the
// page path when neither sets one.
func (a *App) effective(page Page) seo.Config {
	cfg := a.Provider.Merge(page.Config)
	if cfg.Canonical == "" {
		cfg.Canonical = PageURL(a.Config.URL, page.Path)
	}
	return cfg
}

// headFor returns the <head> contents for page.
func (a *App) headFor(page Page) templ.Component {
	return seo.Component(a.effective(page))
}
