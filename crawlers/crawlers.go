// Package crawlers records visits from search engine and social crawlers, so
// site owners can see which pages are being fetched for indexing and link
// previews.
package crawlers

import (
	"strings"
	"time"
)

// Visit is a single crawler page view.
type Visit struct {
	ID        int64     `json:"-"`
	BotName   string    `json:"bot_name"`
	IPHash    string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats holds aggregated crawler activity for a period.
type Stats struct {
	Period      string          `json:"period"`
	TotalVisits int             `json:"total_visits"`
	TopBots     []DimensionStat `json:"top_bots"`
	TopPages    []PageStat      `json:"top_pages"`
	DailyVisits []DailyVisit    `json:"daily_visits"`
}

// PageStat is the visit count of one path.
type PageStat struct {
	Path   string `json:"path"`
	Visits int    `json:"visits"`
}

// DimensionStat is the visit count of one crawler.
type DimensionStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DailyVisit is the visit count of one day (YYYY-MM-DD, UTC).
type DailyVisit struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

// knownBots maps User-Agent substrings to crawler names. Order matters: the
// first match wins, so specific names precede generic ones.
var knownBots = []struct{ pattern, name string }{
	{"googlebot", "Googlebot"},
	{"google-inspectiontool", "Google Inspection Tool"},
	{"bingbot", "Bingbot"},
	{"yandex", "Yandex"},
	{"baiduspider", "Baidu"},
	{"duckduckbot", "DuckDuckBot"},
	{"applebot", "Applebot"},
	{"facebookexternalhit", "Facebook"},
	{"facebookcatalog", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"slackbot", "Slack"},
	{"discordbot", "Discord"},
	{"telegrambot", "Telegram"},
	{"whatsapp", "WhatsApp"},
	{"pinterest", "Pinterest"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"mj12bot", "Majestic"},
	{"dotbot", "Moz"},
	{"slurp", "Yahoo Slurp"},
	{"gptbot", "GPTBot"},
	{"claudebot", "ClaudeBot"},
	{"ccbot", "Common Crawl"},
	{"crawler", "Generic Crawler"},
	{"spider", "Generic Spider"},
}

// genericMarkers flag a User-Agent as automated when no known name matches.
var genericMarkers = []string{"bot", "crawl", "scrape", "preview", "fetch"}

// IsBot reports whether the User-Agent is likely a crawler.
func IsBot(ua string) bool {
	return BotName(ua) != ""
}

// BotName returns the crawler name for a User-Agent, "Other Bot" for
// unrecognized automated agents, or "" for browsers.
func BotName(ua string) string {
	ua = strings.ToLower(ua)
	if ua == "" {
		return ""
	}
	for _, b := range knownBots {
		if strings.Contains(ua, b.pattern) {
			return b.name
		}
	}
	for _, m := range genericMarkers {
		if strings.Contains(ua, m) {
			return "Other Bot"
		}
	}
	return ""
}
