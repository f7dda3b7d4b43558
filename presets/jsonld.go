package presets

// Builders for schema.org JSON-LD objects. Each returns a map ready to be
// placed in seo.Config.StructuredData; empty inputs are left out.

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	set(m, "url", url)
	set(m, "logo", logoURL)
	return m
}

// WebSite returns a WebSite schema with an optional SearchAction. The search
// URL is completed with the {search_term_string} placeholder.
func WebSite(name, url, searchURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	set(m, "url", url)
	if searchURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// BreadcrumbList builds a BreadcrumbList schema.
func BreadcrumbList(crumbs []Crumb) map[string]any {
	items := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func person(name string) map[string]any {
	return map[string]any{"@type": "Person", "name": name}
}

func set(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}
