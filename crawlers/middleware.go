package crawlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const maxUserAgentLen = 512

// Middleware records successful GET requests made by crawlers. Requests for
// which skipper returns true are never recorded.
func Middleware(store *Store, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			req := c.Request()
			if skipper(c) || req.Method != http.MethodGet {
				return err
			}
			if err != nil || c.Response().Status >= http.StatusBadRequest {
				return err
			}
			ua := req.UserAgent()
			name := BotName(ua)
			if name == "" {
				return nil
			}
			if len(ua) > maxUserAgentLen {
				ua = ua[:maxUserAgentLen]
			}
			if serr := store.SaveVisit(&Visit{
				BotName:   name,
				IPHash:    store.HashIP(c.RealIP()),
				UserAgent: ua,
				Path:      req.URL.Path,
				Timestamp: time.Now(),
			}); serr != nil {
				c.Logger().Errorf("crawlers: %v", serr)
			}
			return nil
		}
	}
}
