package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired        = runtimeconfig.ErrContentDirRequired
	ErrContentExtensionInvalid   = runtimeconfig.ErrContentExtensionInvalid
	ErrSiteBaseURLInvalid        = runtimeconfig.ErrSiteBaseURLInvalid
	ErrMarkdownExtensionUnknown  = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrWatchRequiresCache        = runtimeconfig.ErrWatchRequiresCache
	ErrHTTPAddrRequired          = runtimeconfig.ErrHTTPAddrRequired
	ErrHTTPTimeoutInvalid        = runtimeconfig.ErrHTTPTimeoutInvalid
	ErrFeedLimitInvalid          = runtimeconfig.ErrFeedLimitInvalid
	ErrStaticPagePathRequired    = runtimeconfig.ErrStaticPagePathRequired
	ErrStaticPagePriorityInvalid = runtimeconfig.ErrStaticPagePriorityInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	SiteConfig     = runtimeconfig.SiteConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CacheConfig    = runtimeconfig.CacheConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	SitemapConfig  = runtimeconfig.SitemapConfig
	FeedConfig     = runtimeconfig.FeedConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
