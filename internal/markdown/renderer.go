package markdown

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const warningMessage = "This post could not be formatted and is shown as plain text."

// RenderResult is the sanitized output for one post body. Degraded is set
// when conversion failed and HTML holds the escaped fallback; Err carries
// the RenderError in that case.
type RenderResult struct {
	HTML     string
	Degraded bool
	Err      error
}

// Renderer converts post bodies to sanitized HTML.
type Renderer struct {
	parser    interfaces.MarkdownParser
	sanitizer interfaces.HTMLSanitizer
	logger    interfaces.Logger
}

// NewRenderer wires a parser and sanitizer. Nil values fall back to the
// goldmark parser with default options and the bluemonday policy.
func NewRenderer(parser interfaces.MarkdownParser, sanitizer interfaces.HTMLSanitizer, logger interfaces.Logger) *Renderer {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Renderer{parser: parser, sanitizer: sanitizer, logger: logger}
}

// Render converts body and sanitizes the result. Conversion failures never
// surface as errors: the escaped body is returned behind a warning marker.
func (r *Renderer) Render(ctx context.Context, slug string, body []byte) RenderResult {
	out, err := r.convert(body)
	if err == nil {
		return RenderResult{HTML: string(r.sanitizer.Sanitize(out))}
	}

	renderErr := RenderError(err).WithMetadata(map[string]any{"slug": slug})
	logging.WithPostContext(r.logger.WithContext(ctx), "", slug).
		Warn("blog.render.fallback", "error", renderErr)

	return RenderResult{
		HTML:     string(r.sanitizer.Sanitize([]byte(Fallback(body)))),
		Degraded: true,
		Err:      renderErr,
	}
}

func (r *Renderer) convert(body []byte) (out []byte, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out, err = nil, fmt.Errorf("markdown convert panic: %v", recovered)
		}
	}()
	return r.parser.Parse(body)
}

// Fallback renders body as escaped preformatted text behind the warning
// marker.
func Fallback(body []byte) string {
	var b strings.Builder
	b.WriteString(`<div class="` + WarningClass + `">`)
	b.WriteString(html.EscapeString(warningMessage))
	b.WriteString("</div>\n<pre>")
	b.WriteString(html.EscapeString(string(body)))
	b.WriteString("</pre>\n")
	return b.String()
}
