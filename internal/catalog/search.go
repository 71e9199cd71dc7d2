package catalog

import (
	"strings"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Search returns posts whose title, excerpt or any tag contains query,
// ignoring case, restricted to categoryID unless it is blank or "all".
// A blank query matches every post. Results keep catalog order.
func (c *Catalog) Search(query, categoryID string) []interfaces.Post {
	needle := strings.ToLower(strings.TrimSpace(query))
	filterCategory := !categories.IsAll(categoryID)
	categoryID = strings.TrimSpace(categoryID)

	out := make([]interfaces.Post, 0)
	for _, post := range c.posts {
		if filterCategory && post.Category != categoryID {
			continue
		}
		if needle != "" && !Matches(post, needle) {
			continue
		}
		out = append(out, clonePost(post))
	}
	return out
}

// Matches reports whether post contains needle in its title, excerpt or
// tags. needle must already be lower case.
func Matches(post interfaces.Post, needle string) bool {
	if strings.Contains(strings.ToLower(post.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
