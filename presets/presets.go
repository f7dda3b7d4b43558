// Package presets maps common kinds of pages (blog posts, products, plain
// pages and social cards) to seo.Config values. Every preset is a pure
// function of its input.
package presets

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/headkit/markdown"
	"github.com/eringen/headkit/seo"
)

// DescriptionLimit is the length descriptions derived from content are cut to.
const DescriptionLimit = 160

// Preset is anything that can describe its page as a seo.Config.
type Preset interface {
	Config() seo.Config
}

var strict = bluemonday.StrictPolicy()

// plain strips markup from s and collapses whitespace.
func plain(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}

// describe returns the sanitized description, falling back to an excerpt of
// the Markdown content.
func describe(description, content string) string {
	if d := plain(description); d != "" {
		return d
	}
	if content == "" {
		return ""
	}
	return plain(markdown.Excerpt(content, DescriptionLimit))
}

func card(image string) string {
	if image != "" {
		return "summary_large_image"
	}
	return "summary"
}

func images(url, alt string, width, height int) []seo.OGImage {
	if url == "" {
		return nil
	}
	return []seo.OGImage{{URL: url, Alt: plain(alt), Width: width, Height: height}}
}

func handle(h string) string {
	h = strings.TrimSpace(h)
	if h == "" || strings.HasPrefix(h, "@") {
		return h
	}
	return "@" + h
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// BlogPost describes an article.
type BlogPost struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	Image       string    `json:"image" yaml:"image"`
	ImageAlt    string    `json:"imageAlt" yaml:"imageAlt"`
	Author      string    `json:"author" yaml:"author"`
	Publisher   string    `json:"publisher" yaml:"publisher"`
	PublishedAt time.Time `json:"publishedAt" yaml:"publishedAt"`
	ModifiedAt  time.Time `json:"modifiedAt" yaml:"modifiedAt"`
	Section     string    `json:"section" yaml:"section"`
	Tags        []string  `json:"tags" yaml:"tags"`
	// Content is the Markdown body. It supplies the description when
	// Description is empty.
	Content string `json:"content" yaml:"content"`
}

// Config returns an article config with a BlogPosting JSON-LD object.
func (p BlogPost) Config() seo.Config {
	title := plain(p.Title)
	desc := describe(p.Description, p.Content)

	cfg := seo.Config{
		Title:       title,
		Description: desc,
		Canonical:   p.URL,
		Author:      plain(p.Author),
		Publisher:   plain(p.Publisher),
		OpenGraph: &seo.OpenGraph{
			Type:        "article",
			Title:       title,
			Description: desc,
			URL:         p.URL,
			Images:      images(p.Image, p.ImageAlt, 0, 0),
			Article: &seo.Article{
				PublishedTime: timestamp(p.PublishedAt),
				ModifiedTime:  timestamp(p.ModifiedAt),
				Section:       plain(p.Section),
				Tags:          p.Tags,
			},
		},
		Twitter: &seo.Twitter{
			Card:        card(p.Image),
			Title:       title,
			Description: desc,
			Image:       p.Image,
			ImageAlt:    plain(p.ImageAlt),
		},
		StructuredData: []any{p.JSONLD()},
	}
	if cfg.Author != "" {
		cfg.OpenGraph.Article.Authors = []string{cfg.Author}
	}
	if len(p.Tags) > 0 {
		cfg.ExtraMeta = []seo.MetaTag{{Name: "keywords", Content: strings.Join(p.Tags, ", ")}}
	}
	return cfg
}

// JSONLD returns the BlogPosting schema for p.
func (p BlogPost) JSONLD() map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": plain(p.Title),
	}
	set(m, "description", describe(p.Description, p.Content))
	set(m, "url", p.URL)
	set(m, "image", p.Image)
	set(m, "datePublished", timestamp(p.PublishedAt))
	set(m, "dateModified", timestamp(p.ModifiedAt))
	set(m, "articleSection", plain(p.Section))
	if a := plain(p.Author); a != "" {
		m["author"] = person(a)
	}
	if pub := plain(p.Publisher); pub != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": pub}
	}
	if p.URL != "" {
		m["mainEntityOfPage"] = map[string]any{"@type": "WebPage", "@id": p.URL}
	}
	if len(p.Tags) > 0 {
		m["keywords"] = strings.Join(p.Tags, ", ")
	}
	return m
}

// Availability values follow the schema.org ItemAvailability names.
const (
	InStock    = "InStock"
	OutOfStock = "OutOfStock"
	PreOrder   = "PreOrder"
)

// ogAvailability maps schema.org availability to Open Graph product values.
var ogAvailability = map[string]string{
	InStock:    "in stock",
	OutOfStock: "out of stock",
	PreOrder:   "preorder",
}

// Product describes an item for sale.
type Product struct {
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	URL          string  `json:"url" yaml:"url"`
	Image        string  `json:"image" yaml:"image"`
	SKU          string  `json:"sku" yaml:"sku"`
	Brand        string  `json:"brand" yaml:"brand"`
	Price        float64 `json:"price" yaml:"price"`
	Currency     string  `json:"currency" yaml:"currency"`
	Availability string  `json:"availability" yaml:"availability"`
}

func (p Product) price() string {
	if p.Price <= 0 {
		return ""
	}
	return strconv.FormatFloat(p.Price, 'f', 2, 64)
}

// Config returns a product config with price metas and a Product JSON-LD
// object.
func (p Product) Config() seo.Config {
	name := plain(p.Name)
	desc := plain(p.Description)
	cfg := seo.Config{
		Title:       name,
		Description: desc,
		Canonical:   p.URL,
		OpenGraph: &seo.OpenGraph{
			Type:        "product",
			Title:       name,
			Description: desc,
			URL:         p.URL,
			Images:      images(p.Image, name, 0, 0),
		},
		Twitter: &seo.Twitter{
			Card:        card(p.Image),
			Title:       name,
			Description: desc,
			Image:       p.Image,
		},
		StructuredData: []any{p.JSONLD()},
	}
	if price := p.price(); price != "" {
		cfg.ExtraMeta = append(cfg.ExtraMeta,
			seo.MetaTag{Property: "product:price:amount", Content: price},
			seo.MetaTag{Property: "product:price:currency", Content: p.Currency},
		)
	}
	if av, ok := ogAvailability[p.Availability]; ok {
		cfg.ExtraMeta = append(cfg.ExtraMeta, seo.MetaTag{Property: "product:availability", Content: av})
	}
	if brand := plain(p.Brand); brand != "" {
		cfg.ExtraMeta = append(cfg.ExtraMeta, seo.MetaTag{Property: "product:brand", Content: brand})
	}
	return cfg
}

// JSONLD returns the Product schema for p, with an Offer when priced.
func (p Product) JSONLD() map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     plain(p.Name),
	}
	set(m, "description", plain(p.Description))
	set(m, "url", p.URL)
	set(m, "image", p.Image)
	set(m, "sku", p.SKU)
	if brand := plain(p.Brand); brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": brand}
	}
	if price := p.price(); price != "" {
		offer := map[string]any{
			"@type": "Offer",
			"price": price,
		}
		set(offer, "priceCurrency", p.Currency)
		set(offer, "url", p.URL)
		if p.Availability != "" {
			offer["availability"] = "https://schema.org/" + p.Availability
		}
		m["offers"] = offer
	}
	return m
}

// Page describes a generic page.
type Page struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
	Image       string `json:"image" yaml:"image"`
	NoIndex     bool   `json:"noindex" yaml:"noindex"`
}

// Config returns a website config.
func (p Page) Config() seo.Config {
	title := plain(p.Title)
	desc := plain(p.Description)
	cfg := seo.Config{
		Title:       title,
		Description: desc,
		Canonical:   p.URL,
		OpenGraph: &seo.OpenGraph{
			Type:        "website",
			Title:       title,
			Description: desc,
			URL:         p.URL,
			Images:      images(p.Image, "", 0, 0),
		},
		Twitter: &seo.Twitter{Card: card(p.Image)},
	}
	if p.NoIndex {
		cfg.NoIndex = seo.Bool(true)
	}
	return cfg
}

// Social describes a share card. Only Open Graph and Twitter fields are set,
// so it composes with a page config through seo.Merge.
type Social struct {
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	URL           string `json:"url" yaml:"url"`
	Image         string `json:"image" yaml:"image"`
	ImageAlt      string `json:"imageAlt" yaml:"imageAlt"`
	ImageWidth    int    `json:"imageWidth" yaml:"imageWidth"`
	ImageHeight   int    `json:"imageHeight" yaml:"imageHeight"`
	TwitterHandle string `json:"twitterHandle" yaml:"twitterHandle"`
	SiteName      string `json:"siteName" yaml:"siteName"`
}

// Config returns the Open Graph and Twitter sections for the card.
func (s Social) Config() seo.Config {
	title := plain(s.Title)
	desc := plain(s.Description)
	h := handle(s.TwitterHandle)
	return seo.Config{
		OpenGraph: &seo.OpenGraph{
			Type:        "website",
			Title:       title,
			Description: desc,
			URL:         s.URL,
			SiteName:    plain(s.SiteName),
			Images:      images(s.Image, s.ImageAlt, s.ImageWidth, s.ImageHeight),
		},
		Twitter: &seo.Twitter{
			Card:        card(s.Image),
			Site:        h,
			Creator:     h,
			Title:       title,
			Description: desc,
			Image:       s.Image,
			ImageAlt:    plain(s.ImageAlt),
		},
	}
}
