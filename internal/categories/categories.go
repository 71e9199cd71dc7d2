// Package categories holds the fixed blog category table shared by the
// catalog, the read API and the command line.
package categories

import (
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	CSharp         = "csharp"
	React          = "react"
	JavaScript     = "javascript"
	WebDevelopment = "web-development"

	// Default is assigned to posts without a category.
	Default = WebDevelopment

	// All is the pseudo category used by listing filters to mean "no filter".
	All      = "all"
	AllLabel = "All Posts"
)

var table = []interfaces.Category{
	{ID: CSharp, Label: "C# & .NET Core"},
	{ID: React, Label: "React"},
	{ID: JavaScript, Label: "JavaScript"},
	{ID: WebDevelopment, Label: "Web Development"},
}

// List returns a copy of the category table in display order.
func List() []interfaces.Category {
	out := make([]interfaces.Category, len(table))
	copy(out, table)
	return out
}

// WithAll prepends the "all" filter entry to the table.
func WithAll() []interfaces.Category {
	return append([]interfaces.Category{{ID: All, Label: AllLabel}}, table...)
}

// Lookup finds a category by exact id.
func Lookup(id string) (interfaces.Category, bool) {
	for _, category := range table {
		if category.ID == id {
			return category, true
		}
	}
	return interfaces.Category{}, false
}

// Label resolves the display label for id, falling back to the default
// category's label.
func Label(id string) string {
	if category, ok := Lookup(id); ok {
		return category.Label
	}
	fallback, _ := Lookup(Default)
	return fallback.Label
}

// IsKnown reports whether id is part of the table.
func IsKnown(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// IsAll reports whether id disables category filtering.
func IsAll(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || strings.EqualFold(id, All)
}

// Labels returns every label in the table.
func Labels() []string {
	out := make([]string, 0, len(table))
	for _, category := range table {
		out = append(out, category.Label)
	}
	return out
}
