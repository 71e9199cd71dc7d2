// Package validation checks the shape of post front matter against a JSON
// schema before posts are normalized.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrFrontMatterShape is matched by every schema violation returned here.
var ErrFrontMatterShape = errors.New("front matter shape invalid")

const frontMatterSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title":    {"$ref": "#/$defs/scalar"},
    "excerpt":  {"$ref": "#/$defs/scalar"},
    "category": {"$ref": "#/$defs/scalar"},
    "date":     {"type": ["string", "null"]},
    "tags": {
      "oneOf": [
        {"$ref": "#/$defs/scalar"},
        {"type": "array", "items": {"$ref": "#/$defs/scalar"}}
      ]
    }
  },
  "$defs": {
    "scalar": {"type": ["string", "number", "boolean", "null"]}
  }
}`

// Issue is a single schema violation.
type Issue struct {
	Location string
	Message  string
}

// ShapeError lists every schema violation found in one metadata block.
type ShapeError struct {
	Issues []Issue
}

func (e *ShapeError) Error() string {
	if len(e.Issues) == 0 {
		return ErrFrontMatterShape.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ShapeError) Unwrap() error {
	return ErrFrontMatterShape
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("frontmatter.json", strings.NewReader(frontMatterSchema)); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = compiler.Compile("frontmatter.json")
	})
	return compiled, compileErr
}

// RecognizedKeys are the front-matter keys the schema checks.
var RecognizedKeys = []string{"title", "excerpt", "category", "date", "tags"}

// ValidateFrontMatter checks that the recognised keys in meta carry usable
// shapes. Unknown keys are ignored.
func ValidateFrontMatter(meta map[string]any) error {
	known := make(map[string]any, len(RecognizedKeys))
	for _, key := range RecognizedKeys {
		if value, ok := meta[key]; ok {
			known[key] = value
		}
	}
	if len(known) == 0 {
		return nil
	}
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile front matter schema: %w", err)
	}

	instance, err := toJSONValue(known)
	if err != nil {
		return &ShapeError{Issues: []Issue{{Message: err.Error()}}}
	}
	if err := s.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ShapeError{Issues: collectIssues(verr)}
		}
		return &ShapeError{Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

// toJSONValue round-trips v through encoding/json so the validator only sees
// the generic JSON types it understands.
func toJSONValue(v any) (any, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
