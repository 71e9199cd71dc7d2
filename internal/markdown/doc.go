// Package markdown reads post sources from the content directory, splits
// front matter from the body and renders bodies into sanitized HTML.
package markdown
