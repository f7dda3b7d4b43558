package seo

import (
	"strconv"
	"strings"
)

// Synthesize turns an effective configuration into the ordered list of head
// tags. The order is fixed: title, core metas, canonical, verification,
// facebook, alternates, icons, Open Graph, Twitter, extra metas and links,
// structured data. Empty values are never emitted.
func Synthesize(cfg Config) []Tag {
	var s synth

	if title := ResolveTitle(cfg); title != "" {
		s.add(Tag{Kind: KindTitle, Content: title})
	}

	s.name("description", cfg.Description)
	s.name("robots", ResolveRobots(cfg))
	s.name("viewport", cfg.Viewport)
	s.name("theme-color", cfg.ThemeColor)
	s.name("author", cfg.Author)
	s.name("publisher", cfg.Publisher)
	s.name("language", cfg.Language)

	if cfg.Canonical != "" {
		s.add(link("canonical", cfg.Canonical))
	}

	if v := cfg.Verification; v != nil {
		s.name("google-site-verification", v.Google)
		s.name("msvalidate.01", v.Bing)
		s.name("yandex-verification", v.Yandex)
		s.name("p:domain_verify", v.Pinterest)
	}

	if cfg.Facebook != nil {
		s.property("fb:app_id", cfg.Facebook.AppID, "")
	}

	for _, alt := range cfg.Alternates {
		if alt.Lang == "" || alt.Href == "" {
			continue
		}
		s.add(Tag{
			Kind:     KindLink,
			Identity: []Attr{{"rel", "alternate"}, {"hreflang", alt.Lang}},
			Attrs:    []Attr{{"rel", "alternate"}, {"hreflang", alt.Lang}, {"href", alt.Href}},
		})
	}

	if ic := cfg.Icons; ic != nil {
		s.link("icon", ic.Favicon)
		s.link("apple-touch-icon", ic.AppleTouchIcon)
		s.link("manifest", ic.Manifest)
		if m := ic.MaskIcon; m != nil && m.URL != "" {
			color := m.Color
			if color == "" {
				color = "#000000"
			}
			t := link("mask-icon", m.URL)
			t.Attrs = append(t.Attrs, Attr{"color", color})
			s.add(t)
		}
	}

	if og := cfg.OpenGraph; og != nil {
		s.openGraph(og)
	}

	if tw := cfg.Twitter; tw != nil {
		s.name("twitter:card", tw.Card)
		s.name("twitter:site", tw.Site)
		s.name("twitter:creator", tw.Creator)
		s.name("twitter:title", tw.Title)
		s.name("twitter:description", tw.Description)
		s.name("twitter:image", tw.Image)
		s.name("twitter:image:alt", tw.ImageAlt)
	}

	for _, m := range cfg.ExtraMeta {
		if t, ok := extraMeta(m); ok {
			s.add(grouped(t, GroupExtraMeta))
		}
	}
	for _, l := range cfg.ExtraLinks {
		if t, ok := extraLink(l); ok {
			s.add(grouped(t, GroupExtraLink))
		}
	}

	for _, obj := range cfg.StructuredData {
		if obj == nil {
			continue
		}
		body, ok := marshalJSONLD(obj)
		if !ok {
			continue
		}
		s.add(Tag{
			Kind:     KindScript,
			Identity: []Attr{{"type", "application/ld+json"}},
			Attrs:    []Attr{{"type", "application/ld+json"}},
			Content:  body,
			Group:    GroupStructuredData,
		})
	}

	return s.tags
}

// ResolveTitle returns the text of the <title> element: Title run through
// TitleTemplate (first %s replaced), else the untemplated DefaultTitle.
func ResolveTitle(cfg Config) string {
	if cfg.Title == "" {
		return cfg.DefaultTitle
	}
	if cfg.TitleTemplate != nil && *cfg.TitleTemplate != "" {
		return strings.Replace(*cfg.TitleTemplate, "%s", cfg.Title, 1)
	}
	return cfg.Title
}

// ResolveRobots returns the robots meta content. The noindex/nofollow flags
// take precedence over the Robots string whenever either is true.
func ResolveRobots(cfg Config) string {
	noindex := cfg.NoIndex != nil && *cfg.NoIndex
	nofollow := cfg.NoFollow != nil && *cfg.NoFollow
	switch {
	case noindex && nofollow:
		return "noindex,nofollow"
	case noindex:
		return "noindex"
	case nofollow:
		return "nofollow"
	}
	return cfg.Robots
}

type synth struct {
	tags []Tag
}

func (s *synth) add(t Tag) {
	s.tags = append(s.tags, t)
}

func (s *synth) name(name, content string) {
	if content != "" {
		s.add(metaName(name, content))
	}
}

func (s *synth) property(property, content, group string) {
	if content != "" {
		s.add(grouped(metaProperty(property, content), group))
	}
}

func (s *synth) link(rel, href string) {
	if href != "" {
		s.add(link(rel, href))
	}
}

func (s *synth) list(property string, values []string) {
	for _, v := range values {
		s.property(property, v, GroupOGNested)
	}
}

func (s *synth) openGraph(og *OpenGraph) {
	s.property("og:type", og.Type, "")
	s.property("og:title", og.Title, "")
	s.property("og:description", og.Description, "")
	s.property("og:url", og.URL, "")
	s.property("og:site_name", og.SiteName, "")
	s.property("og:locale", og.Locale, "")

	for _, img := range og.Images {
		if img.URL == "" {
			continue
		}
		s.property("og:image", img.URL, GroupOGImage)
		s.property("og:image:alt", img.Alt, GroupOGImage)
		s.property("og:image:width", itoa(img.Width), GroupOGImage)
		s.property("og:image:height", itoa(img.Height), GroupOGImage)
		s.property("og:image:type", img.Type, GroupOGImage)
	}

	if a := og.Article; a != nil {
		s.property("og:article:published_time", a.PublishedTime, "")
		s.property("og:article:modified_time", a.ModifiedTime, "")
		s.property("og:article:expiration_time", a.ExpirationTime, "")
		s.property("og:article:section", a.Section, "")
		s.list("og:article:author", a.Authors)
		s.list("og:article:tag", a.Tags)
	}
	if b := og.Book; b != nil {
		s.property("og:book:isbn", b.ISBN, "")
		s.property("og:book:release_date", b.ReleaseDate, "")
		s.list("og:book:author", b.Authors)
		s.list("og:book:tag", b.Tags)
	}
	if p := og.Profile; p != nil {
		s.property("og:profile:first_name", p.FirstName, "")
		s.property("og:profile:last_name", p.LastName, "")
		s.property("og:profile:username", p.Username, "")
		s.property("og:profile:gender", p.Gender, "")
	}
	if v := og.Video; v != nil {
		s.property("og:video:duration", itoa(v.Duration), "")
		s.property("og:video:release_date", v.ReleaseDate, "")
		s.property("og:video:series", v.Series, "")
		for _, a := range v.Actors {
			if a.Actor == "" {
				continue
			}
			s.property("og:video:actor", a.Actor, GroupOGNested)
			s.property("og:video:actor:role", a.Role, GroupOGNested)
		}
		s.list("og:video:director", v.Directors)
		s.list("og:video:writer", v.Writers)
		s.list("og:video:tag", v.Tags)
	}
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func extraMeta(m MetaTag) (Tag, bool) {
	if m.Content == "" {
		return Tag{}, false
	}
	var key, val string
	switch {
	case m.Name != "":
		key, val = "name", m.Name
	case m.Property != "":
		key, val = "property", m.Property
	case m.HTTPEquiv != "":
		key, val = "http-equiv", m.HTTPEquiv
	default:
		return Tag{}, false
	}
	return Tag{
		Kind:     KindMeta,
		Identity: []Attr{{key, val}},
		Attrs:    []Attr{{key, val}, {"content", m.Content}},
	}, true
}

func extraLink(l LinkTag) (Tag, bool) {
	if l.Rel == "" {
		return Tag{}, false
	}
	t := Tag{Kind: KindLink, Identity: []Attr{{"rel", l.Rel}}}
	for _, a := range []Attr{
		{"rel", l.Rel},
		{"href", l.Href},
		{"hreflang", l.Hreflang},
		{"type", l.Type},
		{"sizes", l.Sizes},
		{"media", l.Media},
		{"as", l.As},
		{"crossorigin", l.CrossOrigin},
		{"title", l.Title},
	} {
		if a.Val != "" {
			t.Attrs = append(t.Attrs, a)
		}
	}
	return t, true
}
