package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if len(cfg.Site.StaticPages) == 0 {
		t.Fatalf("expected default static pages")
	}
}

func TestConfigValidate_RequiresContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = "  "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_ContentExtension(t *testing.T) {
	for _, ext := range []string{"md", ".md", ".markdown", ""} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Content.Extension = ext
		if err := cfg.Validate(); err != nil {
			t.Fatalf("extension %q: unexpected error %v", ext, err)
		}
	}
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Extension = "md/../x"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrContentExtensionInvalid) {
		t.Fatalf("expected ErrContentExtensionInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsRelativeBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "example.com/blog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSiteBaseURLInvalid) {
		t.Fatalf("expected ErrSiteBaseURLInvalid, got %v", err)
	}
}

func TestConfigValidate_StaticPages(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.StaticPages = []generator.StaticPage{{Path: "", Priority: 0.5}}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStaticPagePathRequired) {
		t.Fatalf("expected ErrStaticPagePathRequired, got %v", err)
	}

	cfg.Site.StaticPages = []generator.StaticPage{{Path: "/about", Priority: 1.5}}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStaticPagePriorityInvalid) {
		t.Fatalf("expected ErrStaticPagePriorityInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownMarkdownExtension(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Extensions = []string{"gfm", "mermaid"}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownExtensionUnknown) {
		t.Fatalf("expected ErrMarkdownExtensionUnknown, got %v", err)
	}
}

func TestConfigValidate_WatchRequiresCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Watch = true

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrWatchRequiresCache) {
		t.Fatalf("expected ErrWatchRequiresCache, got %v", err)
	}
	cfg.Cache.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_HTTPAndFeed(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.HTTP.Addr = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHTTPAddrRequired) {
		t.Fatalf("expected ErrHTTPAddrRequired, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.HTTP.ReadTimeout = -1
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrHTTPTimeoutInvalid) {
		t.Fatalf("expected ErrHTTPTimeoutInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Feed.Limit = -3
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFeedLimitInvalid) {
		t.Fatalf("expected ErrFeedLimitInvalid, got %v", err)
	}
}

func TestConfigValidate_Logging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = " GoLogger "
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
