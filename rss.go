package headkit

import (
	"encoding/xml"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/headkit/seo"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

type feedEntry struct {
	item      rssItem
	published time.Time
}

// renderRSS lists pages that describe an article, newest first.
func (a *App) renderRSS(c echo.Context, pages []Page) error {
	var entries []feedEntry
	for _, p := range pages {
		cfg := a.effective(p)
		if cfg.OpenGraph == nil || cfg.OpenGraph.Article == nil {
			continue
		}
		art := cfg.OpenGraph.Article
		published := parseFeedTime(art.PublishedTime)
		item := rssItem{
			Title:       feedTitle(cfg),
			Link:        cfg.Canonical,
			Description: cfg.Description,
			GUID:        cfg.Canonical,
			Categories:  art.Tags,
		}
		if !published.IsZero() {
			item.PubDate = published.Format(time.RFC1123Z)
		}
		entries = append(entries, feedEntry{item: item, published: published})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].published.After(entries[j].published)
	})

	items := make([]rssItem, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	defaults := a.Provider.Defaults()
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(a.Config.URL),
			Description: defaults.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// feedTitle prefers the bare page title over the templated <title>.
func feedTitle(cfg seo.Config) string {
	if cfg.OpenGraph != nil && cfg.OpenGraph.Title != "" {
		return cfg.OpenGraph.Title
	}
	if cfg.Title != "" {
		return cfg.Title
	}
	return seo.ResolveTitle(cfg)
}

func parseFeedTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
