package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-blog"
)

// ConfigOption documents one configuration key and its default.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// ConfigOptions lists every key understood by LoadConfig.
func ConfigOptions() []ConfigOption {
	d := blog.DefaultConfig()
	return []ConfigOption{
		{Key: "content.dir", Default: d.Content.Dir, Comment: "Directory holding <slug>.md sources"},
		{Key: "content.extension", Default: d.Content.Extension, Comment: "Suffix of markdown sources"},
		{Key: "site.base_url", Default: d.Site.BaseURL, Comment: "Absolute site URL used by the sitemap and feed"},
		{Key: "site.title", Default: d.Site.Title, Comment: "Feed channel title"},
		{Key: "site.description", Default: d.Site.Description, Comment: "Feed channel description"},
		{Key: "site.language", Default: d.Site.Language, Comment: "Feed language"},
		{Key: "site.static_pages", Default: d.Site.StaticPages, Comment: "Non-post pages listed in the sitemap"},
		{Key: "markdown.extensions", Default: []string{}, Comment: "goldmark extensions (gfm, table, footnote, typographer, ...)"},
		{Key: "markdown.hard_wraps", Default: d.Markdown.HardWraps, Comment: "Render soft line breaks as <br>"},
		{Key: "cache.enabled", Default: d.Cache.Enabled, Comment: "Reuse the catalog until the content changes"},
		{Key: "cache.watch", Default: d.Cache.Watch, Comment: "Watch the content directory and invalidate the cache"},
		{Key: "http.addr", Default: d.HTTP.Addr, Comment: "Listen address for serve"},
		{Key: "http.read_timeout", Default: d.HTTP.ReadTimeout, Comment: "HTTP read timeout"},
		{Key: "http.write_timeout", Default: d.HTTP.WriteTimeout, Comment: "HTTP write timeout"},
		{Key: "sitemap.output_path", Default: d.Sitemap.OutputPath, Comment: "Where the sitemap command writes"},
		{Key: "feed.output_path", Default: d.Feed.OutputPath, Comment: "Where the feed command writes"},
		{Key: "feed.limit", Default: d.Feed.Limit, Comment: "Maximum feed items"},
		{Key: "logging.provider", Default: d.Logging.Provider, Comment: "console or gologger"},
		{Key: "logging.level", Default: d.Logging.Level, Comment: "trace, debug, info, warn, error"},
		{Key: "logging.format", Default: d.Logging.Format, Comment: "gologger format: json, console, pretty"},
		{Key: "logging.add_source", Default: d.Logging.AddSource, Comment: "gologger: include caller"},
		{Key: "logging.focus", Default: []string{}, Comment: "gologger: only log these logger names"},
	}
}

// LoadConfig resolves configuration with precedence defaults < file < env.
// Without an explicit file, blog.{yaml,toml,json} is looked up in the
// working directory. Environment variables use the BLOG_ prefix with
// underscores for dots, e.g. BLOG_CONTENT_DIR.
func LoadConfig(v *viper.Viper) (blog.Config, error) {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("blog")
		v.AddConfigPath(".")
	}
	for _, o := range ConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return blog.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("blog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg blog.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return blog.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return blog.Config{}, err
	}
	return cfg, nil
}
