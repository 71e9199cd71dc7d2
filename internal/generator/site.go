// Package generator derives sitemap entries and feeds from a catalog and
// serializes them to XML.
package generator

import "strings"

// Change frequencies accepted by sitemap consumers.
const (
	ChangeDaily   = "daily"
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
)

// Site describes the public site the blog is served from.
type Site struct {
	BaseURL     string
	Title       string
	Description string
	Language    string
}

// StaticPage is a non-post page listed in the sitemap.
type StaticPage struct {
	Path       string  `json:"path" mapstructure:"path"`
	ChangeFreq string  `json:"changefreq" mapstructure:"changefreq"`
	Priority   float64 `json:"priority" mapstructure:"priority"`
}

// DefaultStaticPages lists the portfolio pages published next to the blog.
func DefaultStaticPages() []StaticPage {
	return []StaticPage{
		{Path: "/", ChangeFreq: ChangeDaily, Priority: 1.0},
		{Path: "/about", ChangeFreq: ChangeMonthly, Priority: 0.8},
		{Path: "/projects", ChangeFreq: ChangeWeekly, Priority: 0.9},
		{Path: "/blog", ChangeFreq: ChangeDaily, Priority: 0.9},
		{Path: "/certifications", ChangeFreq: ChangeMonthly, Priority: 0.7},
		{Path: "/workflows", ChangeFreq: ChangeWeekly, Priority: 0.8},
		{Path: "/contact", ChangeFreq: ChangeMonthly, Priority: 0.7},
	}
}

// Sitemap defaults for posts and category listings.
const (
	PostChangeFreq     = ChangeMonthly
	PostPriority       = 0.8
	CategoryChangeFreq = ChangeWeekly
	CategoryPriority   = 0.7
)

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	target := baseURLWithFallback(base)
	route = strings.TrimSpace(route)
	if route == "" || route == "/" {
		return target + "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return target + route
}
