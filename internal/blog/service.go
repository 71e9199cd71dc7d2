// Package blog implements the read API over the content pipeline: store,
// front matter, normalizer, catalog and renderer.
package blog

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Option configures a Service.
type Option func(*Service)

// WithLoggerProvider routes service logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.contentLogger = logging.ContentLogger(provider)
		s.catalogLogger = logging.CatalogLogger(provider)
	}
}

// WithClock overrides the clock used for posts without a date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRenderer overrides the markup renderer.
func WithRenderer(renderer *markdown.Renderer) Option {
	return func(s *Service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithSitemap sets the builder used by SitemapEntries.
func WithSitemap(builder *generator.SitemapBuilder) Option {
	return func(s *Service) {
		s.sitemap = builder
	}
}

// WithSnapshotCache enables catalog reuse between requests until the
// content root changes or Invalidate is called.
func WithSnapshotCache(enabled bool) Option {
	return func(s *Service) {
		if enabled {
			s.cache = newSnapshotCache()
		} else {
			s.cache = nil
		}
	}
}

// Service implements interfaces.BlogService. Without the snapshot cache
// every call re-reads the content store.
type Service struct {
	store         *markdown.Store
	renderer      *markdown.Renderer
	sitemap       *generator.SitemapBuilder
	cache         *snapshotCache
	now           func() time.Time
	contentLogger interfaces.Logger
	catalogLogger interfaces.Logger
}

var _ interfaces.BlogService = (*Service)(nil)

// NewService builds the read API over store.
func NewService(store *markdown.Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		now:           time.Now,
		contentLogger: logging.NoOp(),
		catalogLogger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderer == nil {
		s.renderer = markdown.NewRenderer(nil, nil, nil)
	}
	return s
}

// Snapshot returns the catalog for the current content, from the cache when
// enabled and still valid.
func (s *Service) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	modTime, err := s.store.ModTime()
	if err != nil {
		return nil, err
	}
	snapshot, hit, err := s.cache.get(modTime, func() (*catalog.Catalog, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		s.catalogLogger.Trace("blog.catalog.cache_hit", "posts", snapshot.Len())
	}
	return snapshot, nil
}

// Invalidate discards any cached catalog.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.invalidate()
		s.catalogLogger.Debug("blog.catalog.invalidated")
	}
}

func (s *Service) ListAllPosts(ctx context.Context) ([]interfaces.Post, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (s *Service) ListPostsByCategory(ctx context.Context, categoryID string) ([]interfaces.Post, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.ByCategory(categoryID), nil
}

func (s *Service) SearchPosts(ctx context.Context, query, categoryID string) ([]interfaces.Post, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Search(query, categoryID), nil
}

func (s *Service) Categories(context.Context) []interfaces.Category {
	return categories.List()
}

func (s *Service) Skipped(ctx context.Context) ([]interfaces.SkippedPost, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Skipped(), nil
}

// SitemapEntries lists static pages, posts and categories. Without a
// configured builder only post and category entries under localhost are
// produced.
func (s *Service) SitemapEntries(ctx context.Context) ([]interfaces.SitemapEntry, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	builder := s.sitemap
	if builder == nil {
		urls, err := generator.NewURLBuilder("")
		if err != nil {
			return nil, err
		}
		builder = generator.NewSitemapBuilder(urls, []generator.StaticPage{}, s.now)
	}
	return builder.Entries(c)
}

// GetPostBySlug loads and renders a single post. A slug with no matching
// source file reports found=false with a nil error. A malformed source file
// returns its parse or validation error.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*interfaces.PostDetail, bool, error) {
	if !posts.IsPathSafe(slug) {
		return nil, false, nil
	}

	files, err := s.store.List(ctx)
	if err != nil {
		return nil, false, err
	}
	name := ""
	for _, file := range files {
		if s.store.SlugFor(file) == slug {
			name = file
			break
		}
	}
	if name == "" {
		return nil, false, nil
	}

	post, body, err := s.buildPost(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	result := s.renderer.Render(ctx, slug, body)
	return &interfaces.PostDetail{
		Post:     post,
		Body:     result.HTML,
		Markdown: string(body),
		Degraded: result.Degraded,
	}, true, nil
}

func (s *Service) load(ctx context.Context) (*catalog.Catalog, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]interfaces.Post, 0, len(files))
	var skipped []interfaces.SkippedPost
	for _, name := range files {
		post, _, err := s.buildPost(ctx, name)
		switch {
		case err == nil:
			records = append(records, post)
		case errors.Is(err, fs.ErrNotExist):
			s.contentLogger.Debug("blog.content.file_vanished", "file", name)
		case markdown.IsStorageError(err), ctx.Err() != nil:
			return nil, err
		default:
			slug := s.store.SlugFor(name)
			logging.WithPostContext(s.catalogLogger.WithContext(ctx), name, slug).
				Warn("blog.catalog.post_skipped", "error", err)
			skipped = append(skipped, interfaces.SkippedPost{File: name, Slug: slug, Err: err})
		}
	}

	c := catalog.Build(records, skipped...)
	all := c.Skipped()
	for _, dup := range all[len(skipped):] {
		logging.WithPostContext(s.catalogLogger.WithContext(ctx), dup.File, dup.Slug).
			Warn("blog.catalog.duplicate_slug", "error", dup.Err)
	}
	s.catalogLogger.Debug("blog.catalog.built", "posts", c.Len(), "skipped", len(all))
	return c, nil
}

func (s *Service) buildPost(ctx context.Context, name string) (interfaces.Post, []byte, error) {
	raw, err := s.store.Read(ctx, name)
	if err != nil {
		return interfaces.Post{}, nil, err
	}
	meta, body, err := markdown.ParseFrontMatter(name, raw)
	if err != nil {
		return interfaces.Post{}, nil, err
	}
	post, err := posts.Normalize(s.store.SlugFor(name), meta, body, s.now())
	if err != nil {
		return interfaces.Post{}, nil, err
	}
	post.SourceFile = name
	return post, body, nil
}
