package interfaces

import (
	"context"
	"time"
)

// Post is the canonical, read-only record built from one markdown source file.
// Date always holds an ISO calendar date (YYYY-MM-DD); PublishedAt carries the
// same instant for ordering.
type Post struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	Date          string    `json:"date"`
	PublishedAt   time.Time `json:"-"`
	Tags          []string  `json:"tags"`
	ReadTime      int       `json:"readTime"`
	SourceFile    string    `json:"-"`
}

// PostDetail extends a Post with its sanitized HTML body. Degraded reports
// that markdown conversion failed and Body holds the escaped fallback.
type PostDetail struct {
	Post
	Body     string `json:"body"`
	Markdown string `json:"-"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Category is one entry of the fixed category table.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SitemapEntry describes one URL exposed to sitemap serializers.
type SitemapEntry struct {
	URL        string  `json:"url"`
	LastMod    string  `json:"lastmod"`
	ChangeFreq string  `json:"changefreq"`
	Priority   float64 `json:"priority"`
}

// SkippedPost records a source file that was left out of listings.
type SkippedPost struct {
	File string `json:"file"`
	Slug string `json:"slug"`
	Err  error  `json:"-"`
}

// BlogService is the read API consumed by listing, detail and sitemap views.
// GetPostBySlug reports a missing slug through the boolean result, never via
// the error.
type BlogService interface {
	ListAllPosts(ctx context.Context) ([]Post, error)
	ListPostsByCategory(ctx context.Context, categoryID string) ([]Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*PostDetail, bool, error)
	SearchPosts(ctx context.Context, query, categoryID string) ([]Post, error)
	Categories(ctx context.Context) []Category
	SitemapEntries(ctx context.Context) ([]SitemapEntry, error)
	Skipped(ctx context.Context) ([]SkippedPost, error)
}
