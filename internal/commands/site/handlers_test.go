package sitecmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type stubService struct {
	posts   []interfaces.Post
	skipped []interfaces.SkippedPost
	entries []interfaces.SitemapEntry
	err     error
}

func (s *stubService) ListAllPosts(context.Context) ([]interfaces.Post, error) {
	return s.posts, s.err
}

func (s *stubService) ListPostsByCategory(context.Context, string) ([]interfaces.Post, error) {
	return s.posts, s.err
}

func (s *stubService) GetPostBySlug(context.Context, string) (*interfaces.PostDetail, bool, error) {
	return nil, false, s.err
}

func (s *stubService) SearchPosts(context.Context, string, string) ([]interfaces.Post, error) {
	return s.posts, s.err
}

func (s *stubService) Categories(context.Context) []interfaces.Category { return nil }

func (s *stubService) SitemapEntries(context.Context) ([]interfaces.SitemapEntry, error) {
	return s.entries, s.err
}

func (s *stubService) Skipped(context.Context) ([]interfaces.SkippedPost, error) {
	return s.skipped, s.err
}

type memoryWriter struct {
	files map[string]string
}

func (m *memoryWriter) WriteFile(_ context.Context, path string, content []byte) error {
	if m.files == nil {
		m.files = map[string]string{}
	}
	m.files[path] = string(content)
	return nil
}

func samplePost(slug string) interfaces.Post {
	return interfaces.Post{
		Slug:          slug,
		Title:         "Title " + slug,
		Category:      "react",
		CategoryLabel: "React",
		Date:          "2024-01-01",
		PublishedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Tags:          []string{},
		ReadTime:      1,
	}
}

func TestMessagesValidate(t *testing.T) {
	require.Error(t, GenerateSitemapCommand{OutputPath: "  "}.Validate())
	require.NoError(t, GenerateSitemapCommand{OutputPath: "public/sitemap.xml"}.Validate())
	require.Error(t, GenerateFeedCommand{OutputPath: "feed.xml", Limit: -1}.Validate())
	require.NoError(t, GenerateFeedCommand{OutputPath: "feed.xml"}.Validate())
	require.NoError(t, CheckContentCommand{Strict: true}.Validate())
}

func TestGenerateSitemapHandlerWritesXML(t *testing.T) {
	service := &stubService{entries: []interfaces.SitemapEntry{
		{URL: "https://example.com/blog/a", LastMod: "2024-01-01", ChangeFreq: "monthly", Priority: 0.8},
	}}
	writer := &memoryWriter{}
	handler := NewGenerateSitemapHandler(service, writer, nil)

	require.NoError(t, handler.Execute(context.Background(), GenerateSitemapCommand{OutputPath: "out/sitemap.xml"}))
	require.Contains(t, writer.files["out/sitemap.xml"], "<loc>https://example.com/blog/a</loc>")
}

func TestGenerateSitemapHandlerRejectsBlankPath(t *testing.T) {
	handler := NewGenerateSitemapHandler(&stubService{}, &memoryWriter{}, nil)
	err := handler.Execute(context.Background(), GenerateSitemapCommand{})
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation), "got %v", err)
}

func TestGenerateSitemapHandlerPropagatesServiceError(t *testing.T) {
	boom := errors.New("disk gone")
	handler := NewGenerateSitemapHandler(&stubService{err: boom}, &memoryWriter{}, nil)
	err := handler.Execute(context.Background(), GenerateSitemapCommand{OutputPath: "x.xml"})
	require.ErrorIs(t, err, boom)
}

func TestGenerateFeedHandlerAppliesLimit(t *testing.T) {
	service := &stubService{posts: []interfaces.Post{samplePost("a"), samplePost("b"), samplePost("c")}}
	writer := &memoryWriter{}
	urls, err := generator.NewURLBuilder("https://example.com")
	require.NoError(t, err)

	handler := NewGenerateFeedHandler(service, FeedSource{
		Site: generator.Site{BaseURL: "https://example.com", Title: "Blog"},
		URLs: urls,
		Now:  func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) },
	}, writer, nil)

	require.NoError(t, handler.Execute(context.Background(), GenerateFeedCommand{OutputPath: "feed.xml", Limit: 2}))
	feed := writer.files["feed.xml"]
	require.Equal(t, 2, strings.Count(feed, "<item>"))
	require.Contains(t, feed, "<link>https://example.com/blog/a</link>")
}

func TestCheckContentReportsFindings(t *testing.T) {
	service := &stubService{
		posts:   []interfaces.Post{samplePost("good-slug"), samplePost("Bad_Slug")},
		skipped: []interfaces.SkippedPost{{File: "broken.md", Slug: "broken", Err: errors.New("bad yaml")}},
	}
	var report ContentReport
	handler := NewCheckContentHandler(service, func(r ContentReport) { report = r }, nil)

	require.NoError(t, handler.Execute(context.Background(), CheckContentCommand{}))
	require.Equal(t, 2, report.Posts)
	require.Len(t, report.Skipped, 1)
	require.Len(t, report.NonCanonical, 1)
	require.Equal(t, "Bad_Slug", report.NonCanonical[0].Slug)
	require.False(t, report.Clean())

	err := handler.Execute(context.Background(), CheckContentCommand{Strict: true})
	require.Error(t, err)
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestCheckContentStrictPassesOnCleanContent(t *testing.T) {
	service := &stubService{posts: []interfaces.Post{samplePost("hello-world")}}
	handler := NewCheckContentHandler(service, nil, nil)
	require.NoError(t, handler.Execute(context.Background(), CheckContentCommand{Strict: true}))
}
