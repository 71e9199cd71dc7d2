package interfaces

// MarkdownParser converts raw markdown into HTML.
type MarkdownParser interface {
	// Parse converts markdown using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions tweaks markdown conversion. Raw HTML embedded in markdown is
// always passed through and left for the sanitizer to scrub.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
}

// HTMLSanitizer strips executable content and disallowed markup from HTML.
type HTMLSanitizer interface {
	Sanitize(html []byte) []byte
}
