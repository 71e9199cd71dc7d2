package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/internal/validation"
)

// Metadata is the decoded front-matter block. Keys are whatever the author
// wrote; values are scalars, []any or map[string]any.
type Metadata map[string]any

// Value returns the raw value for key.
func (m Metadata) Value(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// opening delimiter -> closing delimiter, matching the formats frontmatter
// detects by default
var delimiters = map[string]string{
	"---":     "---",
	"---yaml": "---",
	"---toml": "---",
	"---json": "---",
	"+++":     "+++",
	";;;":     ";;;",
}

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseFrontMatter splits raw into metadata and body. A leading UTF-8 byte
// order mark is dropped. Without a front-matter block the metadata is empty
// and the body is the remaining text. An unterminated or undecodable block
// yields a ContentParseError naming file.
func ParseFrontMatter(file string, raw []byte) (Metadata, []byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	closing, ok := openingDelimiter(raw)
	if !ok {
		return Metadata{}, raw, nil
	}
	if !hasClosingDelimiter(raw, closing) {
		return nil, nil, ContentParseError(file, fmt.Errorf("front matter block is not closed by %q", closing))
	}

	var decoded map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &decoded)
	if err != nil {
		return nil, nil, ContentParseError(file, err)
	}

	meta := Metadata{}
	for key, value := range decoded {
		meta[key] = normalizeValue(value)
	}
	if err := validation.ValidateFrontMatter(meta); err != nil {
		return nil, nil, ContentParseError(file, err)
	}
	return meta, body, nil
}

// openingDelimiter inspects the first non-blank line.
func openingDelimiter(raw []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 4096), len(raw)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		closing, ok := delimiters[line]
		return closing, ok
	}
	return "", false
}

func hasClosingDelimiter(raw []byte, closing string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 4096), len(raw)+1)
	opened := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !opened {
			if line != "" {
				opened = true
			}
			continue
		}
		if line == closing {
			return true
		}
	}
	return false
}

// normalizeValue converts yaml.v2 style maps into map[string]any so metadata
// can be encoded as JSON.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}
