// Package headkit serves pages whose <head> is generated from stored SEO
// configurations. It is built with Go, Echo, and templ.
//
// Each page record holds a seo.Config that is merged onto the site-wide
// defaults and rendered as static head markup. Around that the server
// provides an admin API, live head previews, sitemap, robots.txt, an
// article feed and crawler tracking.
package headkit

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/headkit/crawlers"
	"github.com/eringen/headkit/seo"
	"github.com/eringen/headkit/views"
)

// ViewFuncs holds the templ components used to render full pages. Any nil
// field falls back to the default layout from the views package.
type ViewFuncs struct {
	Page        func(head templ.Component, page Page) templ.Component
	NotFound    func(head templ.Component) templ.Component
	ServerError func() templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Page == nil {
		v.Page = func(head templ.Component, page Page) templ.Component {
			return views.Page(head, page.Config.Language, page.Body)
		}
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central headkit application. It wires together the store,
// cache, SEO provider, handlers, middleware and views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *PageCache
	Provider *seo.Provider
	Previews *Previews
	Views    ViewFuncs

	loginLimiter *LoginLimiter
	crawlerStore *crawlers.Store
	stopCleanup  func()
	customRoutes []func(*App)
	staticDir    string
}

// New creates a headkit App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}
	a.Views.setDefaults()

	return a
}

// Init opens the stores and registers middleware and routes. Start calls it;
// tests call it directly and serve a.Echo themselves.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("headkit: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("headkit: SessionSecret is required")
	}

	if a.Provider == nil {
		p, err := a.loadProvider()
		if err != nil {
			return err
		}
		a.Provider = p
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("headkit: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)
	a.Previews = NewPreviews(a.Provider)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.CrawlersEnabled {
		cs, err := crawlers.NewStore(a.Config.CrawlersDatabasePath)
		if err != nil {
			return fmt.Errorf("headkit: init crawlers: %w", err)
		}
		if err := cs.InitSalt(); err != nil {
			return fmt.Errorf("headkit: init crawler salt: %w", err)
		}
		a.crawlerStore = cs
		a.stopCleanup = cs.StartCleanupScheduler(a.Echo.Logger, a.Config.CrawlersRetention, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// loadProvider builds the site-wide defaults. A defaults file, when
// configured, is merged over the built-in baseline.
func (a *App) loadProvider() (*seo.Provider, error) {
	defaults := a.Config.siteDefaults()
	if a.Config.DefaultsPath != "" {
		fromFile, err := seo.LoadFile(a.Config.DefaultsPath)
		if err != nil {
			return nil, fmt.Errorf("headkit: %w", err)
		}
		defaults = seo.Merge(defaults, fromFile)
	}
	return seo.NewProvider(defaults), nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	api := e.Group("/api")
	api.GET("/head", a.handleAPIHead)
	api.GET("/tags", a.handleAPITags)
	api.GET("/metadata", a.handleAPIMetadata)

	e.GET("/admin", a.handleAdmin)
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)

	admin := e.Group("/admin")
	admin.GET("/pages", a.handleAdminPages, requireAdmin)
	admin.PUT("/pages", a.handleAdminSave, requireAdmin)
	admin.DELETE("/pages", a.handleAdminDelete, requireAdmin)
	admin.POST("/preview", a.handlePreview, requireAdmin)
	admin.DELETE("/preview", a.handlePreviewDiscard, requireAdmin)
	admin.GET("/images", a.handleImageList, requireAdmin)
	admin.POST("/images", a.handleImageUpload, requireAdmin)
	admin.DELETE("/images/:filename", a.handleImageDelete, requireAdmin)
	if a.crawlerStore != nil {
		admin.GET("/crawlers", crawlers.NewHandler(a.crawlerStore).Stats, requireAdmin)
	}

	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	if a.crawlerStore != nil {
		a.crawlerStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("headkit: required environment variable %s is not set", key)
	}
	return v
}
