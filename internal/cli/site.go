package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSitemapCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write the sitemap XML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = module.Config().Sitemap.OutputPath
			}
			if err := module.GenerateSitemap(cmd.Context(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sitemap written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to sitemap.output_path)")
	return cmd
}

func newFeedCmd() *cobra.Command {
	var (
		out   string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Write the RSS feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = module.Config().Feed.OutputPath
			}
			if err := module.GenerateFeed(cmd.Context(), out, limit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "feed written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to feed.output_path)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum items (defaults to feed.limit)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report posts that fail to load or use non-canonical slugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			report, checkErr := module.CheckContent(cmd.Context(), strict)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d posts loaded\n", report.Posts)
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "skipped %s: %v\n", s.File, s.Err)
			}
			for _, issue := range report.NonCanonical {
				fmt.Fprintf(out, "slug %q is not canonical, suggest %q\n", issue.Slug, issue.Suggested)
			}
			if report.Clean() && checkErr == nil {
				fmt.Fprintln(out, "content ok")
			}
			return checkErr
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any issue is found")
	return cmd
}
