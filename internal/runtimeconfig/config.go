package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrContentExtensionInvalid = errors.New("blog config: content extension must be a plain file suffix")
var ErrSiteBaseURLInvalid = errors.New("blog config: site base url must be an absolute http(s) url")
var ErrMarkdownExtensionUnknown = errors.New("blog config: markdown extension is unknown")

// ErrWatchRequiresCache keeps the watcher from running without anything to invalidate.
var ErrWatchRequiresCache = errors.New("blog config: content watching requires the snapshot cache")
var ErrHTTPAddrRequired = errors.New("blog config: http address is required")
var ErrHTTPTimeoutInvalid = errors.New("blog config: http timeouts must be zero or positive")
var ErrFeedLimitInvalid = errors.New("blog config: feed limit must be zero or positive")
var ErrStaticPagePathRequired = errors.New("blog config: static page path is required")
var ErrStaticPagePriorityInvalid = errors.New("blog config: static page priority must be between 0 and 1")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates every runtime setting of the blog module. Field tags
// follow the keys used in config files and BLOG_ environment variables.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Site     SiteConfig     `mapstructure:"site"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Cache    CacheConfig    `mapstructure:"cache"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Sitemap  SitemapConfig  `mapstructure:"sitemap"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ContentConfig locates markdown sources.
type ContentConfig struct {
	Dir       string `mapstructure:"dir"`
	Extension string `mapstructure:"extension"`
}

// SiteConfig describes the public site used for absolute URLs.
type SiteConfig struct {
	BaseURL     string                 `mapstructure:"base_url"`
	Title       string                 `mapstructure:"title"`
	Description string                 `mapstructure:"description"`
	Language    string                 `mapstructure:"language"`
	StaticPages []generator.StaticPage `mapstructure:"static_pages"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Watch   bool `mapstructure:"watch"`
}

type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type SitemapConfig struct {
	OutputPath string `mapstructure:"output_path"`
}

type FeedConfig struct {
	OutputPath string `mapstructure:"output_path"`
	Limit      int    `mapstructure:"limit"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns settings that serve ./posts on :8080.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "posts",
			Extension: markdown.DefaultExtension,
		},
		Site: SiteConfig{
			BaseURL:     "http://localhost:8080",
			Title:       "Blog",
			Description: "Latest posts",
			Language:    "en",
			StaticPages: generator.DefaultStaticPages(),
		},
		Markdown: MarkdownConfig{},
		Cache:    CacheConfig{},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Sitemap: SitemapConfig{OutputPath: "public/sitemap.xml"},
		Feed: FeedConfig{
			OutputPath: "public/feed.xml",
			Limit:      generator.DefaultFeedLimit,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if ext := strings.TrimPrefix(strings.TrimSpace(cfg.Content.Extension), "."); ext != "" && strings.ContainsAny(ext, `/\. `) {
		return fmt.Errorf("%w: %s", ErrContentExtensionInvalid, cfg.Content.Extension)
	}
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: %s", ErrSiteBaseURLInvalid, base)
		}
	}
	for _, page := range cfg.Site.StaticPages {
		if strings.TrimSpace(page.Path) == "" {
			return ErrStaticPagePathRequired
		}
		if page.Priority < 0 || page.Priority > 1 {
			return fmt.Errorf("%w: %s", ErrStaticPagePriorityInvalid, page.Path)
		}
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	if cfg.Cache.Watch && !cfg.Cache.Enabled {
		return ErrWatchRequiresCache
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.WriteTimeout < 0 {
		return ErrHTTPTimeoutInvalid
	}
	if cfg.Feed.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrFeedLimitInvalid, cfg.Feed.Limit)
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizeProvider lowercases and trims a logging provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
