package blog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var fixedNow = time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestService(t *testing.T, opts ...Option) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	store := markdown.NewStore(markdown.StoreConfig{Root: dir}, nil)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(store, opts...), dir
}

type failingParser struct{}

func (failingParser) Parse([]byte) ([]byte, error) { return nil, os.ErrInvalid }

func (failingParser) ParseWithOptions([]byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, os.ErrInvalid
}

func TestListAllPostsOrdersNewestFirst(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "old.md", "---\ntitle: Old\ndate: 2024-01-01\ncategory: react\n---\nold body")
	writePost(t, dir, "new.md", "---\ntitle: New\ndate: 2024-03-01\ncategory: csharp\n---\nnew body")
	writePost(t, dir, "notes.txt", "ignored")

	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "new", all[0].Slug)
	require.Equal(t, "C# & .NET Core", all[0].CategoryLabel)
	require.Equal(t, "new.md", all[0].SourceFile)
	require.Equal(t, "old", all[1].Slug)
}

func TestListAllPostsEmptyDirectory(t *testing.T) {
	svc, _ := newTestService(t)
	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestListAllPostsCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "posts")
	svc := NewService(markdown.NewStore(markdown.StoreConfig{Root: root}, nil))

	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)

	info, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMalformedPostsAreSkippedFromListings(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "good.md", "---\ntitle: Good\ndate: 2024-01-01\n---\nbody")
	writePost(t, dir, "broken.md", "---\ntitle: [unclosed\n---\nbody")
	writePost(t, dir, "baddate.md", "---\ntitle: Bad\ndate: not-a-date\n---\nbody")

	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "good", all[0].Slug)

	skipped, err := svc.Skipped(context.Background())
	require.NoError(t, err)
	require.Len(t, skipped, 2)
	bySlug := map[string]error{}
	for _, s := range skipped {
		bySlug[s.Slug] = s.Err
	}
	require.True(t, markdown.IsContentParseError(bySlug["broken"]))
	require.True(t, posts.IsDateInvalid(bySlug["baddate"]))
}

func TestListPostsByCategory(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "a.md", "---\ncategory: react\ndate: 2024-01-01\n---\na")
	writePost(t, dir, "b.md", "---\ncategory: csharp\ndate: 2024-01-02\n---\nb")
	writePost(t, dir, "c.md", "---\ndate: 2024-01-03\n---\nc")

	ctx := context.Background()
	react, err := svc.ListPostsByCategory(ctx, "react")
	require.NoError(t, err)
	require.Len(t, react, 1)
	require.Equal(t, "a", react[0].Slug)

	all, err := svc.ListPostsByCategory(ctx, "all")
	require.NoError(t, err)
	require.Len(t, all, 3)

	web, err := svc.ListPostsByCategory(ctx, "web-development")
	require.NoError(t, err)
	require.Len(t, web, 1)
	require.Equal(t, "c", web[0].Slug)

	none, err := svc.ListPostsByCategory(ctx, "rust")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestSearchPosts(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "hooks.md", "---\ntitle: React Hooks\ncategory: react\ntags: [state]\ndate: 2024-01-01\n---\nbody")
	writePost(t, dir, "linq.md", "---\ntitle: LINQ Tricks\ncategory: csharp\ntags: [collections]\ndate: 2024-01-02\n---\nbody")

	ctx := context.Background()
	got, err := svc.SearchPosts(ctx, "HOOKS", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "hooks", got[0].Slug)

	got, err = svc.SearchPosts(ctx, "collections", "react")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = svc.SearchPosts(ctx, "", "all")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestGetPostBySlugRendersBody(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "hello.md", "---\ntitle: Hello\ndate: 2024-05-01\n---\n# Heading\n\n<script>alert(1)</script>\n\nText")

	detail, found, err := svc.GetPostBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Hello", detail.Title)
	require.Equal(t, "2024-05-01", detail.Date)
	require.Contains(t, detail.Body, "<h1")
	require.NotContains(t, detail.Body, "<script>")
	require.False(t, detail.Degraded)
	require.True(t, strings.HasPrefix(strings.TrimSpace(detail.Markdown), "# Heading"))
}

func TestGetPostBySlugMissing(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "hello.md", "hello")

	for _, slug := range []string{"nope", "", "../hello", "hello/x", ".hidden"} {
		detail, found, err := svc.GetPostBySlug(context.Background(), slug)
		require.NoError(t, err, slug)
		require.False(t, found, slug)
		require.Nil(t, detail, slug)
	}
}

func TestGetPostBySlugMalformedReturnsError(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "broken.md", "---\ntitle: [unclosed\n---\nbody")

	detail, found, err := svc.GetPostBySlug(context.Background(), "broken")
	require.Error(t, err)
	require.True(t, markdown.IsContentParseError(err))
	require.False(t, found)
	require.Nil(t, detail)
}

func TestGetPostBySlugDegradesOnRenderFailure(t *testing.T) {
	renderer := markdown.NewRenderer(failingParser{}, nil, nil)
	svc, dir := newTestService(t, WithRenderer(renderer))
	writePost(t, dir, "hello.md", "plain <b>text</b>")

	detail, found, err := svc.GetPostBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, detail.Degraded)
	require.Contains(t, detail.Body, markdown.WarningClass)
	require.Contains(t, detail.Body, "&lt;b&gt;text&lt;/b&gt;")
}

func TestMissingDateUsesClockDate(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "undated.md", "no front matter at all")

	detail, found, err := svc.GetPostBySlug(context.Background(), "undated")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2025-06-15", detail.Date)
	require.Equal(t, "Untitled", detail.Title)
	require.Equal(t, "web-development", detail.Category)
	require.Equal(t, 1, detail.ReadTime)
}

func TestCategories(t *testing.T) {
	svc, _ := newTestService(t)
	cats := svc.Categories(context.Background())
	require.NotEmpty(t, cats)
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	require.Contains(t, ids, "csharp")
	require.Contains(t, ids, "react")
}

func TestSitemapEntries(t *testing.T) {
	urls, err := generator.NewURLBuilder("https://example.com")
	require.NoError(t, err)
	builder := generator.NewSitemapBuilder(urls, []generator.StaticPage{}, func() time.Time { return fixedNow })
	svc, dir := newTestService(t, WithSitemap(builder))
	writePost(t, dir, "a.md", "---\ncategory: react\ndate: 2024-01-01\n---\na")

	entries, err := svc.SitemapEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "https://example.com/blog/a", entries[0].URL)
	require.Equal(t, "https://example.com/blog/category/react", entries[1].URL)
}

func TestStorageErrorIsFatal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	svc, dir := newTestService(t)
	writePost(t, dir, "a.md", "a")
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := svc.ListAllPosts(context.Background())
	require.Error(t, err)
	require.True(t, markdown.IsStorageError(err))
}

func TestPostWithByteOrderMarkKeepsFrontMatter(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "bom.md", "\ufeff---\ntitle: BOM Post\ncategory: react\ndate: 2024-02-01\n---\nhello\n")
	writePost(t, dir, "newer.md", "---\ntitle: Newer\ndate: 2024-03-01\n---\nbody\n")

	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	bom := all[1]
	require.Equal(t, "bom", bom.Slug)
	require.Equal(t, "BOM Post", bom.Title)
	require.Equal(t, "React", bom.CategoryLabel)
	require.Equal(t, "2024-02-01", bom.Date)
	require.Equal(t, "hello...", bom.Excerpt)
}

func TestDuplicateSlugIsReportedAsSkipped(t *testing.T) {
	svc, dir := newTestService(t)
	writePost(t, dir, "dup.md", "---\ntitle: Lower\ndate: 2024-01-01\n---\nbody\n")
	writePost(t, dir, "dup.MD", "---\ntitle: Upper\ndate: 2024-02-01\n---\nbody\n")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) < 2 {
		t.Skip("filesystem folds case")
	}

	all, err := svc.ListAllPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	skipped, err := svc.Skipped(context.Background())
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	require.Equal(t, "dup", skipped[0].Slug)
	require.Contains(t, skipped[0].Err.Error(), "already used")
}
