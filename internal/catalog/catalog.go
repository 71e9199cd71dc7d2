// Package catalog aggregates normalized posts into the sorted, filterable
// views served by the read API.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Catalog is an immutable snapshot of posts ordered by date, newest first.
// Every accessor returns copies.
type Catalog struct {
	posts      []interfaces.Post
	bySlug     map[string]int
	byCategory map[string][]int
	categories []string
	skipped    []interfaces.SkippedPost
}

// TextCodeDuplicateSlug marks a record dropped because an earlier source
// file already produced its slug.
const TextCodeDuplicateSlug = "POST_DUPLICATE_SLUG"

// Build sorts records by date descending. Records sharing a date keep the
// order they were given in, which is the content store's enumeration order.
// A later record with a slug already seen is dropped and reported in
// Skipped.
func Build(records []interfaces.Post, skipped ...interfaces.SkippedPost) *Catalog {
	skipped = slices.Clone(skipped)
	sorted := make([]interfaces.Post, 0, len(records))
	seen := make(map[string]string, len(records))
	for _, record := range records {
		if first, dup := seen[record.Slug]; dup {
			skipped = append(skipped, interfaces.SkippedPost{
				File: record.SourceFile,
				Slug: record.Slug,
				Err:  duplicateSlugError(record, first),
			})
			continue
		}
		seen[record.Slug] = record.SourceFile
		sorted = append(sorted, clonePost(record))
	}

	slices.SortStableFunc(sorted, func(a, b interfaces.Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	c := &Catalog{
		posts:      sorted,
		bySlug:     make(map[string]int, len(sorted)),
		byCategory: map[string][]int{},
		skipped:    skipped,
	}
	for i, post := range sorted {
		c.bySlug[post.Slug] = i
		if _, ok := c.byCategory[post.Category]; !ok {
			c.categories = append(c.categories, post.Category)
		}
		c.byCategory[post.Category] = append(c.byCategory[post.Category], i)
	}
	return c
}

func duplicateSlugError(record interfaces.Post, first string) error {
	return goerrors.New(fmt.Sprintf("slug %q already used by %s", record.Slug, first), goerrors.CategoryValidation).
		WithTextCode(TextCodeDuplicateSlug).
		WithMetadata(map[string]any{
			"slug":  record.Slug,
			"file":  record.SourceFile,
			"first": first,
		})
}

// Len reports the number of listed posts.
func (c *Catalog) Len() int { return len(c.posts) }

// All returns every post, newest first.
func (c *Catalog) All() []interfaces.Post {
	out := make([]interfaces.Post, len(c.posts))
	for i, post := range c.posts {
		out[i] = clonePost(post)
	}
	return out
}

// ByCategory returns the posts whose category equals id exactly. An unknown
// category yields an empty, non-nil slice. The "all" filter returns every
// post.
func (c *Catalog) ByCategory(id string) []interfaces.Post {
	if categories.IsAll(id) {
		return c.All()
	}
	return c.pick(c.byCategory[strings.TrimSpace(id)])
}

// BySlug looks up a post by exact slug.
func (c *Catalog) BySlug(slug string) (interfaces.Post, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return interfaces.Post{}, false
	}
	return clonePost(c.posts[i]), true
}

// Categories lists the distinct category ids in use, ordered by their
// newest post.
func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

// Latest returns the date of the newest post in category id, or "" when the
// category has no posts.
func (c *Catalog) Latest(id string) string {
	indexes := c.byCategory[id]
	if len(indexes) == 0 {
		return ""
	}
	return c.posts[indexes[0]].Date
}

// Skipped lists the source files that were excluded while building.
func (c *Catalog) Skipped() []interfaces.SkippedPost {
	return slices.Clone(c.skipped)
}

func (c *Catalog) pick(indexes []int) []interfaces.Post {
	out := make([]interfaces.Post, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, clonePost(c.posts[i]))
	}
	return out
}

func clonePost(post interfaces.Post) interfaces.Post {
	post.Tags = slices.Clone(post.Tags)
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post
}
