// Package http exposes the blog read API over net/http.
//
// Routes mount under /api/blog by default:
//   - Posts: /posts (?q=, ?category=), /posts/{slug}
//   - Categories: /categories, /categories/{category}/posts
//
// The sitemap and RSS feed are served from /sitemap.xml and /feed.xml at the
// mux root. Host applications register handlers on their own mux.
package http
