// Package metadata maps a seo.Config onto a Next.js-style metadata object.
//
// The mapping is one-way and stateless. It reads the configuration fields
// directly rather than the synthesized tags, so field names follow the target
// schema (openGraph.siteName, robots.index, alternates.languages).
package metadata

import (
	"strings"

	"github.com/eringen/headkit/seo"
)

type Metadata struct {
	Title           string            `json:"title,omitempty"`
	Description     string            `json:"description,omitempty"`
	ApplicationName string            `json:"applicationName,omitempty"`
	Authors         []Author          `json:"authors,omitempty"`
	Publisher       string            `json:"publisher,omitempty"`
	Viewport        string            `json:"viewport,omitempty"`
	ThemeColor      string            `json:"themeColor,omitempty"`
	Robots          *Robots           `json:"robots,omitempty"`
	Alternates      *Alternates       `json:"alternates,omitempty"`
	OpenGraph       *OpenGraph        `json:"openGraph,omitempty"`
	Twitter         *Twitter          `json:"twitter,omitempty"`
	Verification    *Verification     `json:"verification,omitempty"`
	Icons           *Icons            `json:"icons,omitempty"`
	Other           map[string]string `json:"other,omitempty"`
}

type Author struct {
	Name string `json:"name"`
}

// Robots is the parsed robots directive. Index and Follow default to true.
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
	// Directives holds any other comma-separated robots tokens verbatim.
	Directives []string `json:"directives,omitempty"`
}

type Alternates struct {
	Canonical string            `json:"canonical,omitempty"`
	Languages map[string]string `json:"languages,omitempty"`
}

type OpenGraph struct {
	Type          string   `json:"type,omitempty"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	URL           string   `json:"url,omitempty"`
	SiteName      string   `json:"siteName,omitempty"`
	Locale        string   `json:"locale,omitempty"`
	Images        []Image  `json:"images,omitempty"`
	PublishedTime string   `json:"publishedTime,omitempty"`
	ModifiedTime  string   `json:"modifiedTime,omitempty"`
	Section       string   `json:"section,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Type   string `json:"type,omitempty"`
}

type Twitter struct {
	Card        string   `json:"card,omitempty"`
	Site        string   `json:"site,omitempty"`
	Creator     string   `json:"creator,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Verification carries google and yandex natively; every other console
// goes under Other, keyed by its meta name.
type Verification struct {
	Google string            `json:"google,omitempty"`
	Yandex string            `json:"yandex,omitempty"`
	Other  map[string]string `json:"other,omitempty"`
}

type Icons struct {
	Icon     string `json:"icon,omitempty"`
	Apple    string `json:"apple,omitempty"`
	Manifest string `json:"manifest,omitempty"`
	Other    []Icon `json:"other,omitempty"`
}

type Icon struct {
	Rel   string `json:"rel"`
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// FromConfig converts cfg. The title is resolved through TitleTemplate, so
// the result is what a browser tab would show.
func FromConfig(cfg seo.Config) Metadata {
	md := Metadata{
		Title:       seo.ResolveTitle(cfg),
		Description: cfg.Description,
		Publisher:   cfg.Publisher,
		Viewport:    cfg.Viewport,
		ThemeColor:  cfg.ThemeColor,
		Robots:      robots(seo.ResolveRobots(cfg)),
		Alternates:  alternates(cfg),
		OpenGraph:   openGraph(cfg.OpenGraph),
		Twitter:     twitter(cfg.Twitter),
		Icons:       icons(cfg.Icons),
	}
	if cfg.OpenGraph != nil {
		md.ApplicationName = cfg.OpenGraph.SiteName
	}
	if cfg.Author != "" {
		md.Authors = []Author{{Name: cfg.Author}}
	}
	md.Verification = verification(cfg.Verification)
	if cfg.Facebook != nil && cfg.Facebook.AppID != "" {
		md.Other = put(md.Other, "fb:app_id", cfg.Facebook.AppID)
	}
	for _, m := range cfg.ExtraMeta {
		key := m.Name
		if key == "" {
			key = m.Property
		}
		if key == "" || m.Content == "" {
			continue
		}
		md.Other = put(md.Other, key, m.Content)
	}
	return md
}

func put(m map[string]string, k, v string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[k] = v
	return m
}

func robots(content string) *Robots {
	if content == "" {
		return nil
	}
	r := &Robots{Index: true, Follow: true}
	for _, tok := range strings.Split(content, ",") {
		switch tok = strings.ToLower(strings.TrimSpace(tok)); tok {
		case "":
		case "noindex":
			r.Index = false
		case "nofollow":
			r.Follow = false
		case "none":
			r.Index, r.Follow = false, false
		case "index", "follow", "all":
		default:
			r.Directives = append(r.Directives, tok)
		}
	}
	return r
}

func alternates(cfg seo.Config) *Alternates {
	if cfg.Canonical == "" && len(cfg.Alternates) == 0 {
		return nil
	}
	a := &Alternates{Canonical: cfg.Canonical}
	for _, alt := range cfg.Alternates {
		if alt.Lang == "" || alt.Href == "" {
			continue
		}
		a.Languages = put(a.Languages, alt.Lang, alt.Href)
	}
	return a
}

func openGraph(og *seo.OpenGraph) *OpenGraph {
	if og == nil {
		return nil
	}
	out := &OpenGraph{
		Type:        og.Type,
		Title:       og.Title,
		Description: og.Description,
		URL:         og.URL,
		SiteName:    og.SiteName,
		Locale:      og.Locale,
	}
	for _, img := range og.Images {
		if img.URL == "" {
			continue
		}
		out.Images = append(out.Images, Image(img))
	}
	if a := og.Article; a != nil {
		out.PublishedTime = a.PublishedTime
		out.ModifiedTime = a.ModifiedTime
		out.Section = a.Section
		out.Authors = a.Authors
		out.Tags = a.Tags
	}
	return out
}

func twitter(tw *seo.Twitter) *Twitter {
	if tw == nil {
		return nil
	}
	out := &Twitter{
		Card:        tw.Card,
		Site:        tw.Site,
		Creator:     tw.Creator,
		Title:       tw.Title,
		Description: tw.Description,
	}
	if tw.Image != "" {
		out.Images = []string{tw.Image}
	}
	return out
}

func verification(v *seo.Verification) *Verification {
	if v == nil {
		return nil
	}
	out := &Verification{Google: v.Google, Yandex: v.Yandex}
	if v.Bing != "" {
		out.Other = put(out.Other, "msvalidate.01", v.Bing)
	}
	if v.Pinterest != "" {
		out.Other = put(out.Other, "p:domain_verify", v.Pinterest)
	}
	if out.Google == "" && out.Yandex == "" && out.Other == nil {
		return nil
	}
	return out
}

func icons(ic *seo.Icons) *Icons {
	if ic == nil {
		return nil
	}
	out := &Icons{Icon: ic.Favicon, Apple: ic.AppleTouchIcon, Manifest: ic.Manifest}
	if m := ic.MaskIcon; m != nil && m.URL != "" {
		color := m.Color
		if color == "" {
			color = "#000000"
		}
		out.Other = []Icon{{Rel: "mask-icon", URL: m.URL, Color: color}}
	}
	return out
}
