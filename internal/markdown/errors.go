package markdown

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to content pipeline errors.
const (
	TextCodeStorage = "CONTENT_STORAGE_ERROR"
	TextCodeParse   = "CONTENT_PARSE_ERROR"
	TextCodeRender  = "POST_RENDER_ERROR"
)

// StorageError reports an unreadable content store. It is fatal for the
// request that triggered it.
func StorageError(err error, op, path string) *goerrors.Error {
	message := fmt.Sprintf("content store %s %s", op, path)
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode(TextCodeStorage).
		WithMetadata(map[string]any{"path": path, "op": op})
}

// ContentParseError reports a malformed front-matter block in file.
func ContentParseError(file string, err error) *goerrors.Error {
	message := fmt.Sprintf("malformed front matter in %s", file)
	var out *goerrors.Error
	if err == nil {
		out = goerrors.New(message, goerrors.CategoryBadInput)
	} else {
		out = goerrors.Wrap(err, goerrors.CategoryBadInput, message)
	}
	return out.WithTextCode(TextCodeParse).WithMetadata(map[string]any{"file": file})
}

// RenderError reports a failed markdown conversion. It never escapes the
// renderer; it is attached to the fallback result and logged.
func RenderError(err error) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "markdown conversion failed").
		WithTextCode(TextCodeRender)
}

// IsStorageError reports whether err carries the storage text code.
func IsStorageError(err error) bool { return HasTextCode(err, TextCodeStorage) }

// IsContentParseError reports whether err carries the parse text code.
func IsContentParseError(err error) bool { return HasTextCode(err, TextCodeParse) }

// IsRenderError reports whether err carries the render text code.
func IsRenderError(err error) bool { return HasTextCode(err, TextCodeRender) }

// HasTextCode walks err looking for a go-errors value with code.
func HasTextCode(err error, code string) bool {
	for err != nil {
		var typed *goerrors.Error
		if !errors.As(err, &typed) {
			return false
		}
		if typed.TextCode == code {
			return true
		}
		err = typed.Source
	}
	return false
}
