package posts

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// slugPattern admits the RFC 3986 unreserved characters so a slug can be
// used as a single URL path segment without escaping.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*$`)

// IsPathSafe reports whether slug can be served as one path segment.
func IsPathSafe(value string) bool {
	return slugPattern.MatchString(value)
}

// IsCanonicalSlug reports whether slug already follows the normalized form
// (lower case, hyphen separated).
func IsCanonicalSlug(value string) bool {
	return slug.IsValid(value)
}

// SuggestSlug returns the normalized form of value, or value itself when it
// cannot be normalized.
func SuggestSlug(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return value
	}
	return normalized
}

// Validate checks the invariants every record handed to the catalog holds.
func Validate(post interfaces.Post) error {
	labels := make([]any, 0, 4)
	for _, label := range categories.Labels() {
		labels = append(labels, label)
	}

	err := validation.ValidateStruct(&post,
		validation.Field(&post.Slug, validation.Required, validation.Match(slugPattern)),
		validation.Field(&post.Title, validation.Required),
		validation.Field(&post.CategoryLabel, validation.Required, validation.In(labels...)),
		validation.Field(&post.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&post.ReadTime, validation.Min(1)),
		validation.Field(&post.Tags, validation.NotNil),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid post "+post.Slug).
			WithMetadata(map[string]any{"slug": post.Slug})
	}
	return nil
}
