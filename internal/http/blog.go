package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// BlogAPI registers the public read endpoints.
type BlogAPI struct {
	basePath string
	service  interfaces.BlogService
	logger   interfaces.Logger
	site     generator.Site
	urls     *generator.URLBuilder
	feedSize int
	now      func() time.Time
}

// BlogOption mutates the BlogAPI configuration.
type BlogOption func(*BlogAPI)

// NewBlogAPI constructs a BlogAPI instance.
func NewBlogAPI(service interfaces.BlogService, opts ...BlogOption) *BlogAPI {
	api := &BlogAPI{
		basePath: "/api/blog",
		service:  service,
		logger:   logging.NoOp(),
		feedSize: generator.DefaultFeedLimit,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the API prefix (defaults to "/api/blog").
func WithBasePath(path string) BlogOption {
	return func(api *BlogAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) BlogOption {
	return func(api *BlogAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithFeed configures the RSS channel served from /feed.xml.
func WithFeed(site generator.Site, urls *generator.URLBuilder, limit int) BlogOption {
	return func(api *BlogAPI) {
		api.site = site
		api.urls = urls
		if limit > 0 {
			api.feedSize = limit
		}
	}
}

// WithClock overrides the feed build clock.
func WithClock(now func() time.Time) BlogOption {
	return func(api *BlogAPI) {
		if now != nil {
			api.now = now
		}
	}
}

// Register attaches the blog endpoints to the provided mux.
func (api *BlogAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil || api.service == nil {
		return fmt.Errorf("http: blog service is required")
	}

	base := joinPath(api.basePath, "")
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, withRequestLogging(api.logger, fn))
	}

	handle("GET "+joinPath(base, "posts"), api.handlePostList)
	handle("GET "+joinPath(base, "posts")+"/{slug}", api.handlePostGet)
	handle("GET "+joinPath(base, "categories"), api.handleCategoryList)
	handle("GET "+joinPath(base, "categories")+"/{category}/posts", api.handleCategoryPosts)
	handle("GET /sitemap.xml", api.handleSitemap)
	handle("GET /feed.xml", api.handleFeed)
	return nil
}

func (api *BlogAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var (
		list []interfaces.Post
		err  error
	)
	if query != "" || category != "" {
		list, err = api.service.SearchPosts(r.Context(), query, category)
	} else {
		list, err = api.service.ListAllPosts(r.Context())
	}
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *BlogAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	detail, found, err := api.service.GetPostBySlug(r.Context(), slug)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	if !found {
		writeNotFound(w, r, fmt.Sprintf("post %q not found", slug))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (api *BlogAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.service.Categories(r.Context()))
}

func (api *BlogAPI) handleCategoryPosts(w http.ResponseWriter, r *http.Request) {
	list, err := api.service.ListPostsByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *BlogAPI) handleSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := api.service.SitemapEntries(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeXML(w, "application/xml; charset=utf-8", generator.BuildSitemapXML(entries))
}

func (api *BlogAPI) handleFeed(w http.ResponseWriter, r *http.Request) {
	urls := api.urls
	if urls == nil {
		built, err := generator.NewURLBuilder(api.site.BaseURL)
		if err != nil {
			api.fail(w, r, err)
			return
		}
		urls = built
	}
	list, err := api.service.ListAllPosts(r.Context())
	if err != nil {
		api.fail(w, r, err)
		return
	}
	feed, err := generator.BuildRSSFeed(api.site, urls, list, api.now(), api.feedSize)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeXML(w, "application/rss+xml; charset=utf-8", feed)
}

func (api *BlogAPI) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := mapError(err)
	if status >= http.StatusInternalServerError {
		api.logger.WithContext(r.Context()).Error("blog.http.failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, r, err)
}
