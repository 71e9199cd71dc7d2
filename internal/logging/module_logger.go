package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule    = "blog"
	contentModule = "blog.content"
	renderModule  = "blog.render"
	catalogModule = "blog.catalog"
	httpModule    = "blog.http"
	watchModule   = "blog.watch"
)

const (
	fieldContentFile = "file"
	fieldPostSlug    = "slug"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger so services never need nil checks.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	var logger interfaces.Logger = noopLogger{}
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// ContentLogger is used by the content store and front-matter parsing.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// RenderLogger is used by the markup renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// CatalogLogger is used while building and querying catalogs.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// HTTPLogger is used by the read API handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WatchLogger is used by the content watcher.
func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithPostContext attaches the source file and slug to logger. Blank values
// are skipped.
func WithPostContext(logger interfaces.Logger, file, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldContentFile] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPostSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
