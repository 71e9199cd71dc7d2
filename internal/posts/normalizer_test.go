package posts

import (
	"reflect"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/categories"
)

var fixedNow = time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)

func words(n int) []byte {
	return []byte(strings.TrimSpace(strings.Repeat("word ", n)))
}

func TestNormalizeExplicitFrontMatter(t *testing.T) {
	meta := map[string]any{
		"title":    "T",
		"category": "react",
		"date":     "2024-01-01",
		"tags":     []any{"a", "b"},
	}

	post, err := Normalize("t", meta, []byte("hello world"), fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if post.Title != "T" || post.CategoryLabel != "React" || post.Date != "2024-01-01" {
		t.Fatalf("unexpected record %+v", post)
	}
	if !reflect.DeepEqual(post.Tags, []string{"a", "b"}) {
		t.Fatalf("unexpected tags %#v", post.Tags)
	}
	if post.ReadTime != 1 {
		t.Fatalf("expected read time 1, got %d", post.ReadTime)
	}
	if !post.PublishedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected PublishedAt %v", post.PublishedAt)
	}
}

func TestNormalizeMissingFrontMatter(t *testing.T) {
	post, err := Normalize("bare", map[string]any{}, words(600), fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if post.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", post.Title)
	}
	if post.Category != categories.WebDevelopment || post.CategoryLabel != "Web Development" {
		t.Fatalf("expected default category, got %q/%q", post.Category, post.CategoryLabel)
	}
	if post.ReadTime != 3 {
		t.Fatalf("expected read time 3, got %d", post.ReadTime)
	}
	if post.Date != "2025-06-15" {
		t.Fatalf("expected today's date, got %q", post.Date)
	}
	if post.Tags == nil || len(post.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", post.Tags)
	}
}

func TestNormalizeUnknownCategoryKeepsIDAndFallsBackLabel(t *testing.T) {
	post, err := Normalize("go", map[string]any{"category": "golang"}, []byte("x"), fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if post.Category != "golang" || post.CategoryLabel != "Web Development" {
		t.Fatalf("unexpected category %q/%q", post.Category, post.CategoryLabel)
	}
}

func TestNormalizeExcerptFallback(t *testing.T) {
	body := strings.Repeat("é", 200)
	post, err := Normalize("long", nil, []byte("  "+body+"  "), fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := strings.Repeat("é", ExcerptLength) + ExcerptSuffix
	if post.Excerpt != want {
		t.Fatalf("unexpected excerpt %q", post.Excerpt)
	}

	post, _ = Normalize("short", map[string]any{"excerpt": "  "}, []byte("tiny body"), fixedNow)
	if post.Excerpt != "tiny body..." {
		t.Fatalf("expected blank excerpt to fall back, got %q", post.Excerpt)
	}
}

func TestNormalizeEmptyBodyReadTimeFloorsAtOne(t *testing.T) {
	post, err := Normalize("empty", nil, nil, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if post.ReadTime != 1 {
		t.Fatalf("expected read time floor of 1, got %d", post.ReadTime)
	}
}

func TestReadTimeMonotonic(t *testing.T) {
	for _, n := range []int{0, 1, 199, 200, 201, 399, 1000, 4321} {
		single, double := ReadTime(words(n)), ReadTime(words(n*2))
		if single < 1 || double < single {
			t.Fatalf("n=%d: read time %d then %d", n, single, double)
		}
		if ReadTime(words(n)) != single {
			t.Fatalf("n=%d: read time not stable", n)
		}
	}
	if ReadTime([]byte("a\tb\nc  d")) != 1 {
		t.Fatal("expected whitespace tokenisation")
	}
}

func TestNormalizeDates(t *testing.T) {
	cases := map[string]any{
		"2024-03-09":                "2024-03-09",
		"2024-03-09T23:30:00-05:00": "2024-03-09",
		"2024-03-09 08:00:00":       "2024-03-09",
		" 2024-03-09 ":              "2024-03-09",
	}
	for input, want := range cases {
		post, err := Normalize("d", map[string]any{"date": input}, nil, fixedNow)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if post.Date != want {
			t.Fatalf("%q: expected %s, got %s", input, want, post.Date)
		}
	}

	post, err := Normalize("d", map[string]any{"date": time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)}, nil, fixedNow)
	if err != nil || post.Date != "2023-12-31" {
		t.Fatalf("expected time.Time date, got %q err=%v", post.Date, err)
	}
}

func TestNormalizeRejectsUnparseableDate(t *testing.T) {
	for _, value := range []any{"March 3rd", "2024-02-30", "01/02/2024", 20240101} {
		_, err := Normalize("bad-date", map[string]any{"date": value}, nil, fixedNow)
		if err == nil {
			t.Fatalf("%v: expected error", value)
		}
		if !IsDateInvalid(err) {
			t.Fatalf("%v: expected date error, got %v", value, err)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("%v: expected validation category, got %v", value, err)
		}
	}
}

func TestTags(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{nil, []string{}},
		{"solo", []string{"solo"}},
		{"react, hooks ,react", []string{"react", "hooks"}},
		{[]any{"a", 2, "", nil, "a"}, []string{"a", "2"}},
		{[]string{" x ", "y"}, []string{"x", "y"}},
	}
	for _, tc := range cases {
		if got := Tags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Tags(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeScalarCoercion(t *testing.T) {
	post, err := Normalize("n", map[string]any{"title": 2024, "category": " react "}, nil, fixedNow)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if post.Title != "2024" || post.Category != "react" || post.CategoryLabel != "React" {
		t.Fatalf("unexpected record %+v", post)
	}
}

func TestNormalizeRejectsUnsafeSlug(t *testing.T) {
	for _, slug := range []string{"", "has space", "-leading", "q?x"} {
		_, err := Normalize(slug, nil, []byte("body"), fixedNow)
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("%q: expected validation error, got %v", slug, err)
		}
	}
}

func TestNormalizerUsesClock(t *testing.T) {
	n := NewNormalizer(func() time.Time { return fixedNow })
	post, err := n.Normalize("c", nil, nil)
	if err != nil || post.Date != "2025-06-15" {
		t.Fatalf("expected clock date, got %q err=%v", post.Date, err)
	}
}
