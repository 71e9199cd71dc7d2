package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type failingParser struct {
	err   error
	panic bool
}

func (f failingParser) Parse([]byte) ([]byte, error) {
	if f.panic {
		panic("boom")
	}
	return nil, f.err
}

func (f failingParser) ParseWithOptions(md []byte, _ interfaces.ParseOptions) ([]byte, error) {
	return f.Parse(md)
}

type warnRecorder struct {
	interfaces.Logger
	warnings []string
}

func (w *warnRecorder) Warn(msg string, _ ...any) { w.warnings = append(w.warnings, msg) }

func (w *warnRecorder) WithContext(context.Context) interfaces.Logger { return w }

func TestGoldmarkParserRendersGFM(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	out, err := parser.Parse([]byte("# Title\n\n~~gone~~ and https://example.com\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<h1 id="title">Title</h1>`) {
		t.Fatalf("expected heading with auto id, got %s", html)
	}
	if !strings.Contains(html, "<del>gone</del>") {
		t.Fatalf("expected strikethrough, got %s", html)
	}
	if !strings.Contains(html, `<a href="https://example.com">`) {
		t.Fatalf("expected linkify, got %s", html)
	}
}

func TestGoldmarkParserOptionsSelectExtensions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	out, err := parser.ParseWithOptions([]byte("~~kept~~\n"), interfaces.ParseOptions{Extensions: []string{"footnote"}})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(out), "<del>") {
		t.Fatalf("expected strikethrough to be disabled, got %s", out)
	}
}

func TestRendererSanitizesOutput(t *testing.T) {
	renderer := NewRenderer(nil, nil, nil)
	body := "## Safe\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">x</a>\n\n```go\nfmt.Println()\n```\n"

	result := renderer.Render(context.Background(), "safe", []byte(body))
	if result.Degraded || result.Err != nil {
		t.Fatalf("expected clean render, got %+v", result)
	}
	if strings.Contains(result.HTML, "<script") || strings.Contains(result.HTML, "onclick") || strings.Contains(result.HTML, "javascript:") {
		t.Fatalf("expected executable content to be stripped, got %s", result.HTML)
	}
	if !strings.Contains(result.HTML, `id="safe"`) {
		t.Fatalf("expected heading id to survive, got %s", result.HTML)
	}
	if !strings.Contains(result.HTML, `class="language-go"`) {
		t.Fatalf("expected code language class to survive, got %s", result.HTML)
	}
}

func TestRendererFallsBackOnFailure(t *testing.T) {
	for name, parser := range map[string]failingParser{
		"error": {err: errors.New("bad input")},
		"panic": {panic: true},
	} {
		logger := &warnRecorder{}
		renderer := NewRenderer(parser, nil, logger)

		result := renderer.Render(context.Background(), "broken", []byte("<b>raw</b> text"))
		if !result.Degraded {
			t.Fatalf("%s: expected degraded result", name)
		}
		if !IsRenderError(result.Err) {
			t.Fatalf("%s: expected render error, got %v", name, result.Err)
		}
		if !strings.Contains(result.HTML, `class="render-warning"`) {
			t.Fatalf("%s: expected warning marker, got %s", name, result.HTML)
		}
		if !strings.Contains(result.HTML, "&lt;b&gt;raw&lt;/b&gt; text") {
			t.Fatalf("%s: expected escaped body, got %s", name, result.HTML)
		}
		if len(logger.warnings) != 1 || logger.warnings[0] != "blog.render.fallback" {
			t.Fatalf("%s: expected fallback warning, got %v", name, logger.warnings)
		}
	}
}
