// Package sitecmd exposes site maintenance tasks as go-command handlers.
package sitecmd

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	sitemapOperation = "site.generate_sitemap"
	feedOperation    = "site.generate_feed"
	checkOperation   = "site.check_content"

	// TextCodeContentIssues tags a strict check that found problems.
	TextCodeContentIssues = "CONTENT_CHECK_FAILED"
)

var (
	_ command.Commander[GenerateSitemapCommand] = (*GenerateSitemapHandler)(nil)
	_ command.Commander[GenerateFeedCommand]    = (*GenerateFeedHandler)(nil)
	_ command.Commander[CheckContentCommand]    = (*CheckContentHandler)(nil)
)

// GenerateSitemapHandler renders sitemap entries and writes them through an
// ArtifactWriter.
type GenerateSitemapHandler struct {
	inner *commands.Handler[GenerateSitemapCommand]
}

func NewGenerateSitemapHandler(service interfaces.BlogService, writer generator.ArtifactWriter, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateSitemapCommand]) *GenerateSitemapHandler {
	logger = commands.EnsureLogger(logger)
	if writer == nil {
		writer = generator.FileWriter{}
	}

	exec := func(ctx context.Context, msg GenerateSitemapCommand) error {
		entries, err := service.SitemapEntries(ctx)
		if err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, msg.OutputPath, []byte(generator.BuildSitemapXML(entries))); err != nil {
			return err
		}
		logger.Info("blog.site.sitemap_written", "path", msg.OutputPath, "entries", len(entries))
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateSitemapCommand]{
		commands.WithLogger[GenerateSitemapCommand](logger),
		commands.WithOperation[GenerateSitemapCommand](sitemapOperation),
		commands.WithMessageFields(func(msg GenerateSitemapCommand) map[string]any {
			return map[string]any{"output_path": msg.OutputPath}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateSitemapCommand](logger)),
	}
	return &GenerateSitemapHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[GenerateSitemapCommand].
func (h *GenerateSitemapHandler) Execute(ctx context.Context, msg GenerateSitemapCommand) error {
	return h.inner.Execute(ctx, msg)
}

// GenerateFeedHandler writes the newest posts as RSS.
type GenerateFeedHandler struct {
	inner *commands.Handler[GenerateFeedCommand]
}

// FeedSource bundles what the feed needs beyond the post list.
type FeedSource struct {
	Site generator.Site
	URLs *generator.URLBuilder
	Now  func() time.Time
}

func NewGenerateFeedHandler(service interfaces.BlogService, source FeedSource, writer generator.ArtifactWriter, logger interfaces.Logger, opts ...commands.HandlerOption[GenerateFeedCommand]) *GenerateFeedHandler {
	logger = commands.EnsureLogger(logger)
	if writer == nil {
		writer = generator.FileWriter{}
	}
	if source.Now == nil {
		source.Now = time.Now
	}

	exec := func(ctx context.Context, msg GenerateFeedCommand) error {
		urls := source.URLs
		if urls == nil {
			built, err := generator.NewURLBuilder(source.Site.BaseURL)
			if err != nil {
				return err
			}
			urls = built
		}
		all, err := service.ListAllPosts(ctx)
		if err != nil {
			return err
		}
		feed, err := generator.BuildRSSFeed(source.Site, urls, all, source.Now(), msg.Limit)
		if err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, msg.OutputPath, []byte(feed)); err != nil {
			return err
		}
		logger.Info("blog.site.feed_written", "path", msg.OutputPath, "posts", len(all))
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateFeedCommand]{
		commands.WithLogger[GenerateFeedCommand](logger),
		commands.WithOperation[GenerateFeedCommand](feedOperation),
		commands.WithMessageFields(func(msg GenerateFeedCommand) map[string]any {
			fields := map[string]any{"output_path": msg.OutputPath}
			if msg.Limit > 0 {
				fields["limit"] = msg.Limit
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateFeedCommand](logger)),
	}
	return &GenerateFeedHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[GenerateFeedCommand].
func (h *GenerateFeedHandler) Execute(ctx context.Context, msg GenerateFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SlugIssue flags a slug that works but does not match its canonical form.
type SlugIssue struct {
	Slug      string
	Suggested string
}

// ContentReport summarises a content check.
type ContentReport struct {
	Posts        int
	Skipped      []interfaces.SkippedPost
	NonCanonical []SlugIssue
}

// Clean reports whether the check found nothing.
func (r ContentReport) Clean() bool {
	return len(r.Skipped) == 0 && len(r.NonCanonical) == 0
}

// CheckContentHandler audits the content directory and hands the report to
// a sink.
type CheckContentHandler struct {
	inner *commands.Handler[CheckContentCommand]
}

func NewCheckContentHandler(service interfaces.BlogService, sink func(ContentReport), logger interfaces.Logger, opts ...commands.HandlerOption[CheckContentCommand]) *CheckContentHandler {
	logger = commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CheckContentCommand) error {
		report, err := buildReport(ctx, service)
		if err != nil {
			return err
		}
		for _, skipped := range report.Skipped {
			logging.WithPostContext(logger, skipped.File, skipped.Slug).
				Warn("blog.site.check.skipped", "error", skipped.Err)
		}
		for _, issue := range report.NonCanonical {
			logger.Warn("blog.site.check.slug_not_canonical", "slug", issue.Slug, "suggested", issue.Suggested)
		}
		if sink != nil {
			sink(report)
		}
		if msg.Strict && !report.Clean() {
			return goerrors.New("content check found problems", goerrors.CategoryValidation).
				WithTextCode(TextCodeContentIssues).
				WithMetadata(map[string]any{
					"skipped":       len(report.Skipped),
					"non_canonical": len(report.NonCanonical),
				})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckContentCommand]{
		commands.WithLogger[CheckContentCommand](logger),
		commands.WithOperation[CheckContentCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckContentCommand) map[string]any {
			return map[string]any{"strict": msg.Strict}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckContentCommand](logger)),
	}
	return &CheckContentHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[CheckContentCommand].
func (h *CheckContentHandler) Execute(ctx context.Context, msg CheckContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

func buildReport(ctx context.Context, service interfaces.BlogService) (ContentReport, error) {
	all, err := service.ListAllPosts(ctx)
	if err != nil {
		return ContentReport{}, err
	}
	skipped, err := service.Skipped(ctx)
	if err != nil {
		return ContentReport{}, err
	}

	report := ContentReport{Posts: len(all), Skipped: skipped}
	for _, post := range all {
		if !posts.IsCanonicalSlug(post.Slug) {
			report.NonCanonical = append(report.NonCanonical, SlugIssue{
				Slug:      post.Slug,
				Suggested: posts.SuggestSlug(post.Slug),
			})
		}
	}
	return report, nil
}
