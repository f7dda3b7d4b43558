package headkit

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/headkit/seo"
)

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return nil
}

// bodyPolicy sanitizes page bodies submitted through the admin API.
var bodyPolicy = bluemonday.UGCPolicy()

type adminStatus struct {
	Authenticated bool   `json:"authenticated"`
	CSRFToken     string `json:"csrfToken"`
}

func (a *App) handleAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, adminStatus{
		Authenticated: IsAdmin(c),
		CSRFToken:     CsrfToken(c),
	})
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatus{Authenticated: true, CSRFToken: CsrfToken(c)})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleAdminPages lists every page, or returns one when ?path= is given.
func (a *App) handleAdminPages(c echo.Context) error {
	if path := c.QueryParam("path"); path != "" {
		page, err := a.Store.GetPageAny(NormalizePath(path))
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "page not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}
	pages, err := a.Store.ListAllPages()
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []Page{}
	}
	return c.JSON(http.StatusOK, pages)
}

func (a *App) handleAdminSave(c echo.Context) error {
	var page Page
	if err := c.Bind(&page); err != nil {
		return err
	}
	page.Path = NormalizePath(page.Path)
	if err := c.Validate(&page); err != nil {
		return err
	}
	page.Body = bodyPolicy.Sanitize(page.Body)
	saved, err := a.Store.SavePage(page)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, saved)
}

func (a *App) handleAdminDelete(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	path = NormalizePath(path)
	if err := a.Store.DeletePage(path); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.Previews.Discard(path)
	return c.NoContent(http.StatusNoContent)
}

type previewRequest struct {
	Path   string     `json:"path" validate:"required,startswith=/,max=2048"`
	Config seo.Config `json:"config"`
}

// handlePreview applies an unsaved config to the live preview of a page and
// returns the resulting head.
func (a *App) handlePreview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	req.Path = NormalizePath(req.Path)
	if err := c.Validate(&req); err != nil {
		return err
	}
	baseline := ""
	if page, err := a.Store.GetPageAny(req.Path); err == nil {
		baseline = seo.Render(a.effective(page))
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	cfg := req.Config
	if cfg.Canonical == "" {
		cfg.Canonical = PageURL(a.Config.URL, req.Path)
	}
	res, err := a.Previews.Apply(req.Path, baseline, cfg)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) handlePreviewDiscard(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	res, ok := a.Previews.Discard(NormalizePath(path))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no preview for path")
	}
	return c.JSON(http.StatusOK, res)
}

// requireAdmin rejects requests without an authenticated admin session.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}
