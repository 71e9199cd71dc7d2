package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// WarningClass marks the fallback block emitted when conversion fails.
const WarningClass = "render-warning"

// Sanitizer scrubs rendered post HTML with a bluemonday UGC policy extended
// for the markup goldmark emits: heading ids, fenced code language classes
// and read-only task list checkboxes.
type Sanitizer struct {
	policy *bluemonday.Policy
}

var _ interfaces.HTMLSanitizer = (*Sanitizer)(nil)

// NewSanitizer returns the policy used for every rendered post body.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").
		Matching(regexp.MustCompile(`^language-[\w+#.-]+$`)).
		OnElements("code")
	policy.AllowAttrs("class").
		Matching(regexp.MustCompile(`^` + WarningClass + `$`)).
		OnElements("div")
	policy.AllowAttrs("type").
		Matching(regexp.MustCompile(`^checkbox$`)).
		OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	policy.RequireNoFollowOnFullyQualifiedLinks(true)

	return &Sanitizer{policy: policy}
}

// Sanitize returns a scrubbed copy of html.
func (s *Sanitizer) Sanitize(html []byte) []byte {
	return s.policy.SanitizeBytes(html)
}
