package posts

import (
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DateLayout is the canonical calendar date format stored on posts.
const DateLayout = "2006-01-02"

// TextCodeDateInvalid marks posts whose date could not be parsed.
const TextCodeDateInvalid = "POST_DATE_INVALID"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// ParseDate converts an authored date value into a UTC midnight instant on
// the calendar date as written. Timestamps keep the date of their own
// offset rather than shifting to UTC.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return calendarDate(v), nil
	case *time.Time:
		if v != nil {
			return calendarDate(*v), nil
		}
	case string:
		raw := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return calendarDate(parsed), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %v", value)
}

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateError(slug string, value any, cause error) *goerrors.Error {
	message := fmt.Sprintf("post %q has an unparseable date %q, expected %s", slug, fmt.Sprint(value), DateLayout)
	return goerrors.Wrap(cause, goerrors.CategoryValidation, message).
		WithTextCode(TextCodeDateInvalid).
		WithMetadata(map[string]any{"slug": slug, "date": fmt.Sprint(value)})
}

// IsDateInvalid reports whether err was raised for an unparseable date.
func IsDateInvalid(err error) bool {
	var typed *goerrors.Error
	return goerrors.As(err, &typed) && typed.TextCode == TextCodeDateInvalid
}
