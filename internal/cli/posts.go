package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
)

const defaultWordWrap = 80

func newListCmd() *cobra.Command {
	var (
		category string
		query    string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			posts, err := module.Service().SearchPosts(cmd.Context(), query, category)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(posts)
			}
			return writePostTable(cmd.OutOrStdout(), posts)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only posts in this category id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive search over title, excerpt and tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print posts as JSON")
	return cmd
}

func writePostTable(w io.Writer, posts []blog.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, "no posts")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tCATEGORY\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Date, p.Slug, p.CategoryLabel, p.Title)
	}
	return tw.Flush()
}

func newShowCmd() *cobra.Command {
	var (
		asHTML bool
		style  string
		wrap   int
	)
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Render one post in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			detail, found, err := module.Service().GetPostBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("post %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			if asHTML {
				_, err := fmt.Fprintln(out, detail.Body)
				return err
			}
			return writePrettyPost(out, detail, style, wrap)
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the sanitized HTML body")
	cmd.Flags().StringVar(&style, "style", "dracula", "glamour style (dracula, dark, light, notty, ...)")
	cmd.Flags().IntVar(&wrap, "wrap", defaultWordWrap, "word wrap width")
	return cmd
}

// writePrettyPost renders the post header and markdown body with glamour.
func writePrettyPost(w io.Writer, detail *blog.PostDetail, style string, wrap int) error {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", detail.Title)
	fmt.Fprintf(&md, "*%s · %s · %d min read*\n\n", detail.Date, detail.CategoryLabel, detail.ReadTime)
	if len(detail.Tags) > 0 {
		fmt.Fprintf(&md, "Tags: %s\n\n", strings.Join(detail.Tags, ", "))
	}
	md.WriteString(detail.Markdown)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(md.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
