// Package seo models the SEO intent of a page and turns it into head markup.
//
// A Config is merged with site-wide defaults (see Provider and Merge),
// synthesized into an ordered list of Tag descriptors, and either rendered to
// a string (Render) or applied to a live document head by package head.
package seo

// Config describes one page's SEO intent. Every field is optional; an empty
// string, nil pointer or nil slice means "do not emit".
//
// A nil slice is undefined and inherits the default; a non-nil empty slice is
// defined and clears it. Slices are tagged omitzero so the JSON encoding
// keeps that distinction.
type Config struct {
	Title         string  `json:"title,omitempty" yaml:"title,omitempty"`
	TitleTemplate *string `json:"titleTemplate,omitempty" yaml:"titleTemplate,omitempty"`
	DefaultTitle  string  `json:"defaultTitle,omitempty" yaml:"defaultTitle,omitempty"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	Canonical     string  `json:"canonical,omitempty" yaml:"canonical,omitempty"`

	Robots   string `json:"robots,omitempty" yaml:"robots,omitempty"`
	NoIndex  *bool  `json:"noindex,omitempty" yaml:"noindex,omitempty"`
	NoFollow *bool  `json:"nofollow,omitempty" yaml:"nofollow,omitempty"`

	Viewport   string `json:"viewport,omitempty" yaml:"viewport,omitempty"`
	ThemeColor string `json:"themeColor,omitempty" yaml:"themeColor,omitempty"`
	Author     string `json:"author,omitempty" yaml:"author,omitempty"`
	Publisher  string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Language   string `json:"language,omitempty" yaml:"language,omitempty"`

	Verification *Verification `json:"verification,omitempty" yaml:"verification,omitempty"`
	Facebook     *Facebook     `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Alternates   Alternates    `json:"alternates,omitzero" yaml:"alternates,omitempty"`
	Icons        *Icons        `json:"icons,omitempty" yaml:"icons,omitempty"`
	OpenGraph    *OpenGraph    `json:"openGraph,omitempty" yaml:"openGraph,omitempty"`
	Twitter      *Twitter      `json:"twitter,omitempty" yaml:"twitter,omitempty"`

	ExtraMeta      []MetaTag `json:"extraMeta,omitzero" yaml:"extraMeta,omitempty"`
	ExtraLinks     []LinkTag `json:"extraLinks,omitzero" yaml:"extraLinks,omitempty"`
	StructuredData []any     `json:"structuredData,omitzero" yaml:"structuredData,omitempty"`
}

// Verification holds site-ownership tokens for search consoles.
type Verification struct {
	Google    string `json:"google,omitempty" yaml:"google,omitempty"`
	Bing      string `json:"bing,omitempty" yaml:"bing,omitempty"`
	Yandex    string `json:"yandex,omitempty" yaml:"yandex,omitempty"`
	Pinterest string `json:"pinterest,omitempty" yaml:"pinterest,omitempty"`
}

// Facebook holds Facebook platform settings.
type Facebook struct {
	AppID string `json:"appId,omitempty" yaml:"appId,omitempty"`
}

// Icons lists the icon links of a site.
type Icons struct {
	Favicon        string    `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	AppleTouchIcon string    `json:"appleTouchIcon,omitempty" yaml:"appleTouchIcon,omitempty"`
	Manifest       string    `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	MaskIcon       *MaskIcon `json:"maskIcon,omitempty" yaml:"maskIcon,omitempty"`
}

// MaskIcon is a Safari pinned-tab icon. Color defaults to #000000.
type MaskIcon struct {
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// OpenGraph is the og:* section. At most one of Article, Book, Profile and
// Video is normally set, matching Type.
type OpenGraph struct {
	Type        string    `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	SiteName    string    `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	Locale      string    `json:"locale,omitempty" yaml:"locale,omitempty"`
	Images      []OGImage `json:"images,omitzero" yaml:"images,omitempty"`

	Article *Article `json:"article,omitempty" yaml:"article,omitempty"`
	Book    *Book    `json:"book,omitempty" yaml:"book,omitempty"`
	Profile *Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Video   *Video   `json:"video,omitempty" yaml:"video,omitempty"`
}

// OGImage is one og:image entry.
type OGImage struct {
	URL    string `json:"url" yaml:"url"`
	Alt    string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

type Article struct {
	PublishedTime  string   `json:"publishedTime,omitempty" yaml:"publishedTime,omitempty"`
	ModifiedTime   string   `json:"modifiedTime,omitempty" yaml:"modifiedTime,omitempty"`
	ExpirationTime string   `json:"expirationTime,omitempty" yaml:"expirationTime,omitempty"`
	Section        string   `json:"section,omitempty" yaml:"section,omitempty"`
	Authors        []string `json:"authors,omitzero" yaml:"authors,omitempty"`
	Tags           []string `json:"tags,omitzero" yaml:"tags,omitempty"`
}

type Book struct {
	ISBN        string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Authors     []string `json:"authors,omitzero" yaml:"authors,omitempty"`
	Tags        []string `json:"tags,omitzero" yaml:"tags,omitempty"`
}

type Profile struct {
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	Gender    string `json:"gender,omitempty" yaml:"gender,omitempty"`
}

type Video struct {
	Duration    int          `json:"duration,omitempty" yaml:"duration,omitempty"`
	ReleaseDate string       `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Series      string       `json:"series,omitempty" yaml:"series,omitempty"`
	Actors      []VideoActor `json:"actors,omitzero" yaml:"actors,omitempty"`
	Directors   []string     `json:"directors,omitzero" yaml:"directors,omitempty"`
	Writers     []string     `json:"writers,omitzero" yaml:"writers,omitempty"`
	Tags        []string     `json:"tags,omitzero" yaml:"tags,omitempty"`
}

// VideoActor renders as og:video:actor with an optional og:video:actor:role.
type VideoActor struct {
	Actor string `json:"actor" yaml:"actor"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Twitter is the twitter:* card section.
type Twitter struct {
	Card        string `json:"card,omitempty" yaml:"card,omitempty"`
	Site        string `json:"site,omitempty" yaml:"site,omitempty"`
	Creator     string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty" yaml:"imageAlt,omitempty"`
}

// MetaTag is an extra <meta>. Name wins over Property when both are set.
type MetaTag struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Property  string `json:"property,omitempty" yaml:"property,omitempty"`
	HTTPEquiv string `json:"httpEquiv,omitempty" yaml:"httpEquiv,omitempty"`
	Content   string `json:"content" yaml:"content"`
}

// LinkTag is an extra <link>; every non-empty field is passed through.
type LinkTag struct {
	Rel         string `json:"rel" yaml:"rel"`
	Href        string `json:"href,omitempty" yaml:"href,omitempty"`
	Hreflang    string `json:"hreflang,omitempty" yaml:"hreflang,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Sizes       string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Media       string `json:"media,omitempty" yaml:"media,omitempty"`
	As          string `json:"as,omitempty" yaml:"as,omitempty"`
	CrossOrigin string `json:"crossOrigin,omitempty" yaml:"crossOrigin,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
}

// String returns a pointer to v, for optional fields such as TitleTemplate.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for NoIndex and NoFollow.
func Bool(v bool) *bool { return &v }
