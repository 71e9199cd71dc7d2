// Package posts turns parsed front matter and markdown bodies into canonical
// post records.
package posts

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-blog/internal/categories"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	DefaultTitle   = "Untitled"
	ExcerptLength  = 150
	ExcerptSuffix  = "..."
	WordsPerMinute = 200
)

// Recognised front-matter keys.
const (
	KeyTitle    = "title"
	KeyExcerpt  = "excerpt"
	KeyCategory = "category"
	KeyDate     = "date"
	KeyTags     = "tags"
)

// Normalizer fills defaults and derives computed fields. The clock only
// matters for posts without a date.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer using now as its clock, or time.Now
// when nil.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize builds the record for one source file.
func (n *Normalizer) Normalize(slug string, meta map[string]any, body []byte) (interfaces.Post, error) {
	return Normalize(slug, meta, body, n.now())
}

// Normalize is the pure form of Normalizer.Normalize: the same inputs and
// now always produce the same record.
func Normalize(slug string, meta map[string]any, body []byte, now time.Time) (interfaces.Post, error) {
	post := interfaces.Post{
		Slug:     slug,
		Title:    DefaultTitle,
		Category: categories.Default,
		Tags:     []string{},
		ReadTime: ReadTime(body),
	}

	if title, ok := stringValue(meta[KeyTitle]); ok {
		post.Title = title
	}
	if category, ok := stringValue(meta[KeyCategory]); ok {
		post.Category = category
	}
	post.CategoryLabel = categories.Label(post.Category)

	if excerpt, ok := stringValue(meta[KeyExcerpt]); ok {
		post.Excerpt = excerpt
	} else {
		post.Excerpt = Excerpt(body)
	}

	published := calendarDate(now.UTC())
	if raw, present := meta[KeyDate]; present && raw != nil {
		parsed, err := ParseDate(raw)
		if err != nil {
			return interfaces.Post{}, dateError(slug, raw, err)
		}
		published = parsed
	}
	post.PublishedAt = published
	post.Date = FormatDate(published)

	post.Tags = Tags(meta[KeyTags])

	if err := Validate(post); err != nil {
		return interfaces.Post{}, err
	}
	return post, nil
}

// Excerpt returns the first ExcerptLength runes of the trimmed body followed
// by ExcerptSuffix.
func Excerpt(body []byte) string {
	text := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(text) > ExcerptLength {
		text = string([]rune(text)[:ExcerptLength])
	}
	return text + ExcerptSuffix
}

// ReadTime estimates reading minutes at WordsPerMinute, never below one.
func ReadTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	return max(minutes, 1)
}

// Tags accepts a list or a comma separated scalar and returns trimmed,
// de-duplicated labels in authored order. The result is never nil.
func Tags(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := stringValue(item); ok {
				raw = append(raw, s)
			}
		}
	default:
		if s, ok := stringValue(v); ok {
			raw = strings.Split(s, ",")
		}
	}

	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func stringValue(value any) (string, bool) {
	var s string
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		s = v
	case time.Time:
		s = FormatDate(v)
	case fmt.Stringer:
		s = v.String()
	case map[string]any, []any:
		return "", false
	default:
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
