package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultFeedLimit caps the number of items written to a feed.
const DefaultFeedLimit = 20

// BuildRSSFeed renders the newest posts as an RSS 2.0 document. posts must
// already be ordered newest first. A limit below one uses DefaultFeedLimit.
func BuildRSSFeed(site Site, urls *URLBuilder, posts []interfaces.Post, generatedAt time.Time, limit int) (string, error) {
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(siteTitle(site))))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(urls.BaseURL()+"/blog")))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(siteDescription(site))))
	if lang := strings.TrimSpace(site.Language); lang != "" {
		builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", escapeXML(lang)))
	}
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))

	for _, post := range posts {
		link, err := urls.PostURL(post.Slug)
		if err != nil {
			return "", fmt.Errorf("feed post %s: %w", post.Slug, err)
		}
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(post.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(link)))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"true\">%s</guid>\n", escapeXML(link)))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", post.PublishedAt.UTC().Format(time.RFC1123Z)))
		builder.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(post.CategoryLabel)))
		if post.Excerpt != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(post.Excerpt)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String(), nil
}

func siteTitle(site Site) string {
	if title := strings.TrimSpace(site.Title); title != "" {
		return title
	}
	return baseURLWithFallback(site.BaseURL)
}

func siteDescription(site Site) string {
	if desc := strings.TrimSpace(site.Description); desc != "" {
		return desc
	}
	return "Latest posts"
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
