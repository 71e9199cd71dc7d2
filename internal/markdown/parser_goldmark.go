package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser with goldmark. It is
// stateless and safe for concurrent use.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

// NewGoldmarkParser builds a parser whose default engine is compiled once.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engine:   newGoldmarkEngine(defaults),
	}
}

// Parse renders markdown with the default options.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return convert(p.engine, markdown)
}

// ParseWithOptions renders markdown with a one-off engine built from opts.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(newGoldmarkEngine(opts), markdown)
}

func convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	// raw HTML is kept here and scrubbed by the sanitizer afterwards
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}

	var extenders []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		extenders = append(extenders, ext)
	}
	return extenders
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
