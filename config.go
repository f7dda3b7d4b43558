package headkit

import (
	"time"

	"github.com/eringen/headkit/seo"
)

// SiteConfig holds all configuration for a headkit server.
type SiteConfig struct {
	Name string // Site name (default "Site")
	URL  string // Canonical base URL (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/pages.db")
	DefaultsPath string // Optional YAML/JSON file with site-wide SEO defaults

	CrawlersEnabled      bool   // Record crawler visits
	CrawlersDatabasePath string // Crawler SQLite path (default "data/crawlers.db")
	CrawlersRetention    int    // Days of crawler history to keep (default 90)

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PageCacheTTL time.Duration // Page cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pages.db"
	}
	if c.CrawlersDatabasePath == "" {
		c.CrawlersDatabasePath = "data/crawlers.db"
	}
	if c.CrawlersRetention == 0 {
		c.CrawlersRetention = 90
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
}

// siteDefaults is the baseline every page inherits when no defaults file
// is configured.
func (c SiteConfig) siteDefaults() seo.Config {
	return seo.Config{
		TitleTemplate: seo.String("%s | " + c.Name),
		DefaultTitle:  c.Name,
		Viewport:      "width=device-width, initial-scale=1",
		OpenGraph: &seo.OpenGraph{
			Type:     "website",
			SiteName: c.Name,
		},
		Twitter: &seo.Twitter{Card: "summary"},
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithProvider replaces the SEO defaults provider.
func WithProvider(p *seo.Provider) Option {
	return func(a *App) {
		a.Provider = p
	}
}

// WithViews overrides the page layouts.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
