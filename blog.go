// Package blog wires the markdown blog runtime: content store, catalog,
// renderer, sitemap and feed generation, and the HTTP read API.
package blog

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	blogsvc "github.com/goliatone/go-blog/internal/blog"
	"github.com/goliatone/go-blog/internal/commands"
	sitecmd "github.com/goliatone/go-blog/internal/commands/site"
	"github.com/goliatone/go-blog/internal/generator"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/watch"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type (
	Post         = interfaces.Post
	PostDetail   = interfaces.PostDetail
	Category     = interfaces.Category
	SitemapEntry = interfaces.SitemapEntry
	SkippedPost  = interfaces.SkippedPost
	BlogService  = interfaces.BlogService
	Logger       = interfaces.Logger

	// ContentReport is the outcome of CheckContent.
	ContentReport = sitecmd.ContentReport
)

// Option customises module construction.
type Option func(*options)

type options struct {
	provider  interfaces.LoggerProvider
	logWriter io.Writer
	now       func() time.Time
}

// WithLoggerProvider bypasses Logging config and uses provider directly.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) { o.provider = provider }
}

// WithLogWriter sends console provider output to w.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) { o.logWriter = w }
}

// WithClock overrides the clock used for undated posts, sitemaps and feeds.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Module represents the top level blog runtime.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	store    *markdown.Store
	service  *blogsvc.Service
	urls     *generator.URLBuilder
	site     generator.Site
	now      func() time.Time
}

// New validates cfg and wires every component.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	provider := o.provider
	if provider == nil {
		built, err := newLoggerProvider(cfg.Logging, o.logWriter)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	urls, err := generator.NewURLBuilder(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}

	store := markdown.NewStore(markdown.StoreConfig{
		Root:      cfg.Content.Dir,
		Extension: cfg.Content.Extension,
	}, logging.ContentLogger(provider))

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
	})
	renderer := markdown.NewRenderer(parser, markdown.NewSanitizer(), logging.RenderLogger(provider))

	service := blogsvc.NewService(store,
		blogsvc.WithLoggerProvider(provider),
		blogsvc.WithClock(o.now),
		blogsvc.WithRenderer(renderer),
		blogsvc.WithSitemap(generator.NewSitemapBuilder(urls, cfg.Site.StaticPages, o.now)),
		blogsvc.WithSnapshotCache(cfg.Cache.Enabled),
	)

	return &Module{
		cfg:      cfg,
		provider: provider,
		store:    store,
		service:  service,
		urls:     urls,
		site: generator.Site{
			BaseURL:     cfg.Site.BaseURL,
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			Language:    cfg.Site.Language,
		},
		now: o.now,
	}, nil
}

func newLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch runtimeconfig.NormalizeProvider(cfg.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "console":
		level, _ := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{Writer: w, MinLevel: &level}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

// Config returns the validated configuration.
func (m *Module) Config() Config { return m.cfg }

// Service returns the read API.
func (m *Module) Service() BlogService { return m.service }

// LoggerProvider returns the provider every component logs through.
func (m *Module) LoggerProvider() interfaces.LoggerProvider { return m.provider }

// Logger returns a module-scoped logger.
func (m *Module) Logger(module string) Logger {
	return logging.ModuleLogger(m.provider, module)
}

// Invalidate drops any cached catalog.
func (m *Module) Invalidate() { m.service.Invalidate() }

// ListContentFiles lists markdown filenames in the content directory.
func (m *Module) ListContentFiles(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Register mounts the HTTP read API on mux.
func (m *Module) Register(mux *nethttp.ServeMux) error {
	api := bloghttp.NewBlogAPI(m.service,
		bloghttp.WithLogger(logging.HTTPLogger(m.provider)),
		bloghttp.WithFeed(m.site, m.urls, m.cfg.Feed.Limit),
		bloghttp.WithClock(m.now),
	)
	return api.Register(mux)
}

// Handler returns a mux serving the HTTP read API.
func (m *Module) Handler() (nethttp.Handler, error) {
	mux := nethttp.NewServeMux()
	if err := m.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Watch invalidates the snapshot cache whenever markdown sources change. It
// blocks until ctx is done and is a no-op unless Cache.Watch is set.
func (m *Module) Watch(ctx context.Context) error {
	if !m.cfg.Cache.Watch {
		return nil
	}
	if _, err := m.store.List(ctx); err != nil {
		return err
	}
	w, err := watch.New(m.store.Root(), m.service.Invalidate,
		watch.WithExtension(m.cfg.Content.Extension),
		watch.WithLogger(logging.WatchLogger(m.provider)),
	)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Start(ctx)
	return nil
}

// GenerateSitemap writes sitemap XML to path, or to Sitemap.OutputPath when
// path is blank.
func (m *Module) GenerateSitemap(ctx context.Context, path string) error {
	if path == "" {
		path = m.cfg.Sitemap.OutputPath
	}
	handler := sitecmd.NewGenerateSitemapHandler(m.service, generator.FileWriter{}, m.commandLogger())
	return handler.Execute(ctx, sitecmd.GenerateSitemapCommand{OutputPath: path})
}

// GenerateFeed writes the RSS feed to path, or to Feed.OutputPath when path
// is blank. A zero limit uses Feed.Limit.
func (m *Module) GenerateFeed(ctx context.Context, path string, limit int) error {
	if path == "" {
		path = m.cfg.Feed.OutputPath
	}
	if limit == 0 {
		limit = m.cfg.Feed.Limit
	}
	handler := sitecmd.NewGenerateFeedHandler(m.service, sitecmd.FeedSource{
		Site: m.site,
		URLs: m.urls,
		Now:  m.now,
	}, generator.FileWriter{}, m.commandLogger())
	return handler.Execute(ctx, sitecmd.GenerateFeedCommand{OutputPath: path, Limit: limit})
}

// CheckContent audits every source file. With strict set, any finding is
// returned as an error alongside the report.
func (m *Module) CheckContent(ctx context.Context, strict bool) (ContentReport, error) {
	var report ContentReport
	handler := sitecmd.NewCheckContentHandler(m.service, func(r ContentReport) { report = r }, m.commandLogger())
	err := handler.Execute(ctx, sitecmd.CheckContentCommand{Strict: strict})
	return report, err
}

func (m *Module) commandLogger() Logger {
	return commands.CommandLogger(m.provider, "site")
}
