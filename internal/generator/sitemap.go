package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SitemapBuilder lists the sitemap entries for static pages, every post and
// every category that has posts.
type SitemapBuilder struct {
	urls   *URLBuilder
	static []StaticPage
	now    func() time.Time
}

// NewSitemapBuilder wires the URL builder and the static page list. A nil
// static slice uses DefaultStaticPages; an empty one lists no static pages.
func NewSitemapBuilder(urls *URLBuilder, static []StaticPage, now func() time.Time) *SitemapBuilder {
	if static == nil {
		static = DefaultStaticPages()
	}
	if now == nil {
		now = time.Now
	}
	return &SitemapBuilder{urls: urls, static: static, now: now}
}

// Entries derives the entries from c. Static pages are stamped with today's
// date, posts with their own date and categories with their newest post.
func (b *SitemapBuilder) Entries(c *catalog.Catalog) ([]interfaces.SitemapEntry, error) {
	today := b.now().UTC().Format("2006-01-02")
	entries := make([]interfaces.SitemapEntry, 0, len(b.static)+c.Len())

	for _, page := range b.static {
		entries = append(entries, interfaces.SitemapEntry{
			URL:        b.urls.PageURL(page.Path),
			LastMod:    today,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		})
	}

	for _, post := range c.All() {
		loc, err := b.urls.PostURL(post.Slug)
		if err != nil {
			return nil, fmt.Errorf("sitemap post %s: %w", post.Slug, err)
		}
		lastMod := post.Date
		if lastMod == "" {
			lastMod = today
		}
		entries = append(entries, interfaces.SitemapEntry{
			URL:        loc,
			LastMod:    lastMod,
			ChangeFreq: PostChangeFreq,
			Priority:   PostPriority,
		})
	}

	for _, id := range c.Categories() {
		loc, err := b.urls.CategoryURL(id)
		if err != nil {
			return nil, fmt.Errorf("sitemap category %s: %w", id, err)
		}
		entries = append(entries, interfaces.SitemapEntry{
			URL:        loc,
			LastMod:    c.Latest(id),
			ChangeFreq: CategoryChangeFreq,
			Priority:   CategoryPriority,
		})
	}
	return entries, nil
}

// BuildSitemapXML serializes entries into a sitemaps.org urlset. Repeated
// URLs are written once.
func BuildSitemapXML(entries []interfaces.SitemapEntry) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.URL]; dup {
			continue
		}
		seen[entry.URL] = struct{}{}

		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.URL)))
		if entry.LastMod != "" {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", escapeXML(entry.LastMod)))
		}
		if entry.ChangeFreq != "" {
			builder.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", escapeXML(entry.ChangeFreq)))
		}
		if entry.Priority > 0 {
			builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", strconv.FormatFloat(entry.Priority, 'f', 1, 64)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString("</urlset>\n")
	return builder.String()
}
