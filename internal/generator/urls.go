package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
	urlkit "github.com/goliatone/go-urlkit"
)

const (
	routeGroup    = "site"
	routePost     = "post"
	routeCategory = "category"
)

// URLBuilder resolves absolute post and category URLs through a go-urlkit
// route group rooted at the site base URL.
type URLBuilder struct {
	base  string
	group *urlkit.Group
}

// NewURLBuilder registers the blog routes under baseURL.
func NewURLBuilder(baseURL string) (*URLBuilder, error) {
	base := baseURLWithFallback(baseURL)
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    routeGroup,
			BaseURL: base,
			Paths: map[string]string{
				routePost:     "/blog/:slug",
				routeCategory: "/blog/category/:category",
			},
		}},
	})

	group, err := lookupGroup(manager, routeGroup)
	if err != nil {
		return nil, err
	}
	return &URLBuilder{base: base, group: group}, nil
}

// BaseURL returns the normalized site root without a trailing slash.
func (b *URLBuilder) BaseURL() string { return b.base }

// PostURL returns the absolute URL of a post detail page.
func (b *URLBuilder) PostURL(postSlug string) (string, error) {
	return b.build(routePost, "slug", postSlug)
}

// CategoryURL returns the absolute URL of a category listing page.
func (b *URLBuilder) CategoryURL(categoryID string) (string, error) {
	return b.build(routeCategory, "category", CategorySegment(categoryID))
}

// PageURL returns the absolute URL of a static page path.
func (b *URLBuilder) PageURL(path string) string {
	return absoluteURL(b.base, path)
}

func (b *URLBuilder) build(route, param, value string) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: urlkit route %q panic: %v", route, rec)
		}
	}()
	return b.group.Builder(route).WithParam(param, value).Build()
}

var whitespace = regexp.MustCompile(`\s+`)

// CategorySegment converts a category id into its URL segment: lower case
// with whitespace collapsed to hyphens.
func CategorySegment(id string) string {
	id = strings.TrimSpace(id)
	if normalized, err := slug.Normalize(id); err == nil && normalized != "" {
		return normalized
	}
	return whitespace.ReplaceAllString(strings.ToLower(id), "-")
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("generator: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}
