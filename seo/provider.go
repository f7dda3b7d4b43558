package seo

// Provider holds site-wide defaults that every page config is merged onto.
// A nil *Provider behaves as an empty set of defaults.
type Provider struct {
	defaults Config
}

// NewProvider creates a Provider with the given baseline configuration.
func NewProvider(defaults Config) *Provider {
	return &Provider{defaults: defaults}
}

// Defaults returns the baseline configuration.
func (p *Provider) Defaults() Config {
	if p == nil {
		return Config{}
	}
	return p.defaults
}

// Merge returns the effective configuration for a page.
func (p *Provider) Merge(override Config) Config {
	if p == nil {
		return override
	}
	return Merge(p.defaults, override)
}

// Tags merges override with the defaults and synthesizes its descriptors.
func (p *Provider) Tags(override Config) []Tag {
	return Synthesize(p.Merge(override))
}

// Render merges override with the defaults and renders the head markup.
func (p *Provider) Render(override Config) string {
	return Render(p.Merge(override))
}
