package seo

// Merge combines site defaults with a per-page override.
//
// Scalars take the override when present. Nested sections merge field by
// field, so a default twitter.site survives an override that only sets
// twitter.card. Slices are replaced wholesale when the override's slice is
// non-nil. Alternates merge per language: default order first, overridden
// hrefs in place, new languages appended.
//
// TitleTemplate is only inherited when the override leaves it nil; an
// override of String("") is kept and disables the default template.
func Merge(defaults, override Config) Config {
	return Config{
		Title:         pick(override.Title, defaults.Title),
		TitleTemplate: pickPtr(override.TitleTemplate, defaults.TitleTemplate),
		DefaultTitle:  pick(override.DefaultTitle, defaults.DefaultTitle),
		Description:   pick(override.Description, defaults.Description),
		Canonical:     pick(override.Canonical, defaults.Canonical),

		Robots:   pick(override.Robots, defaults.Robots),
		NoIndex:  pickPtr(override.NoIndex, defaults.NoIndex),
		NoFollow: pickPtr(override.NoFollow, defaults.NoFollow),

		Viewport:   pick(override.Viewport, defaults.Viewport),
		ThemeColor: pick(override.ThemeColor, defaults.ThemeColor),
		Author:     pick(override.Author, defaults.Author),
		Publisher:  pick(override.Publisher, defaults.Publisher),
		Language:   pick(override.Language, defaults.Language),

		Verification: mergeVerification(defaults.Verification, override.Verification),
		Facebook:     mergeFacebook(defaults.Facebook, override.Facebook),
		Alternates:   mergeAlternates(defaults.Alternates, override.Alternates),
		Icons:        mergeIcons(defaults.Icons, override.Icons),
		OpenGraph:    mergeOpenGraph(defaults.OpenGraph, override.OpenGraph),
		Twitter:      mergeTwitter(defaults.Twitter, override.Twitter),

		ExtraMeta:      pickSlice(override.ExtraMeta, defaults.ExtraMeta),
		ExtraLinks:     pickSlice(override.ExtraLinks, defaults.ExtraLinks),
		StructuredData: pickSlice(override.StructuredData, defaults.StructuredData),
	}
}

func pick(o, d string) string {
	if o != "" {
		return o
	}
	return d
}

func pickInt(o, d int) int {
	if o != 0 {
		return o
	}
	return d
}

func pickPtr[T any](o, d *T) *T {
	if o != nil {
		return o
	}
	return d
}

func pickSlice[T any](o, d []T) []T {
	if o != nil {
		return o
	}
	return d
}

func mergeVerification(d, o *Verification) *Verification {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Verification{
		Google:    pick(o.Google, d.Google),
		Bing:      pick(o.Bing, d.Bing),
		Yandex:    pick(o.Yandex, d.Yandex),
		Pinterest: pick(o.Pinterest, d.Pinterest),
	}
}

func mergeFacebook(d, o *Facebook) *Facebook {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Facebook{AppID: pick(o.AppID, d.AppID)}
}

func mergeAlternates(d, o Alternates) Alternates {
	if d == nil || o == nil {
		return pickSlice(o, d)
	}
	out := make(Alternates, len(d), len(d)+len(o))
	copy(out, d)
	for _, alt := range o {
		out = out.Set(alt.Lang, alt.Href)
	}
	return out
}

func mergeIcons(d, o *Icons) *Icons {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	out := &Icons{
		Favicon:        pick(o.Favicon, d.Favicon),
		AppleTouchIcon: pick(o.AppleTouchIcon, d.AppleTouchIcon),
		Manifest:       pick(o.Manifest, d.Manifest),
		MaskIcon:       pickPtr(o.MaskIcon, d.MaskIcon),
	}
	if d.MaskIcon != nil && o.MaskIcon != nil {
		out.MaskIcon = &MaskIcon{
			URL:   pick(o.MaskIcon.URL, d.MaskIcon.URL),
			Color: pick(o.MaskIcon.Color, d.MaskIcon.Color),
		}
	}
	return out
}

func mergeTwitter(d, o *Twitter) *Twitter {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Twitter{
		Card:        pick(o.Card, d.Card),
		Site:        pick(o.Site, d.Site),
		Creator:     pick(o.Creator, d.Creator),
		Title:       pick(o.Title, d.Title),
		Description: pick(o.Description, d.Description),
		Image:       pick(o.Image, d.Image),
		ImageAlt:    pick(o.ImageAlt, d.ImageAlt),
	}
}

func mergeOpenGraph(d, o *OpenGraph) *OpenGraph {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &OpenGraph{
		Type:        pick(o.Type, d.Type),
		Title:       pick(o.Title, d.Title),
		Description: pick(o.Description, d.Description),
		URL:         pick(o.URL, d.URL),
		SiteName:    pick(o.SiteName, d.SiteName),
		Locale:      pick(o.Locale, d.Locale),
		Images:      pickSlice(o.Images, d.Images),
		Article:     mergeArticle(d.Article, o.Article),
		Book:        mergeBook(d.Book, o.Book),
		Profile:     mergeProfile(d.Profile, o.Profile),
		Video:       mergeVideo(d.Video, o.Video),
	}
}

func mergeArticle(d, o *Article) *Article {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Article{
		PublishedTime:  pick(o.PublishedTime, d.PublishedTime),
		ModifiedTime:   pick(o.ModifiedTime, d.ModifiedTime),
		ExpirationTime: pick(o.ExpirationTime, d.ExpirationTime),
		Section:        pick(o.Section, d.Section),
		Authors:        pickSlice(o.Authors, d.Authors),
		Tags:           pickSlice(o.Tags, d.Tags),
	}
}

func mergeBook(d, o *Book) *Book {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Book{
		ISBN:        pick(o.ISBN, d.ISBN),
		ReleaseDate: pick(o.ReleaseDate, d.ReleaseDate),
		Authors:     pickSlice(o.Authors, d.Authors),
		Tags:        pickSlice(o.Tags, d.Tags),
	}
}

func mergeProfile(d, o *Profile) *Profile {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Profile{
		FirstName: pick(o.FirstName, d.FirstName),
		LastName:  pick(o.LastName, d.LastName),
		Username:  pick(o.Username, d.Username),
		Gender:    pick(o.Gender, d.Gender),
	}
}

func mergeVideo(d, o *Video) *Video {
	if d == nil || o == nil {
		return pickPtr(o, d)
	}
	return &Video{
		Duration:    pickInt(o.Duration, d.Duration),
		ReleaseDate: pick(o.ReleaseDate, d.ReleaseDate),
		Series:      pick(o.Series, d.Series),
		Actors:      pickSlice(o.Actors, d.Actors),
		Directors:   pickSlice(o.Directors, d.Directors),
		Writers:     pickSlice(o.Writers, d.Writers),
		Tags:        pickSlice(o.Tags, d.Tags),
	}
}
