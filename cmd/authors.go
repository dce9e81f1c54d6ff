package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

func newAuthorsCmd(flags *globalFlags) *cobra.Command {
	var (
		org            string
		top            int
		commitsPerPage int
		summary        bool
	)

	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Ranks the most active commit authors of an organization",
		Long: `Fetches the first page of commits of every repository in an organization,
tallies commits per (author name, email), ignores bot accounts, and prints the
most active authors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, func(c *config.Config) {
				if cmd.Flags().Changed("top") {
					c.TopAuthors = top
				}
				if cmd.Flags().Changed("commits-per-page") {
					c.CommitsPerPage = commitsPerPage
				}
			})
			if err != nil {
				return err
			}

			authors, err := a.aggregator().MostActiveAuthors(cmd.Context(), org)
			if err != nil {
				return fmt.Errorf("failed to aggregate authors of %s: %w", org, err)
			}
			if err := a.renderer.Authors(fmt.Sprintf("Top %d authors of %s organization", len(authors), org), authors); err != nil {
				return err
			}
			if !summary {
				return nil
			}

			s, err := usecase.Summarize(authors)
			if err != nil {
				return err
			}
			return a.renderer.Summary(s)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Target GitHub organization name (required)")
	cmd.MarkFlagRequired("org")
	cmd.Flags().IntVar(&top, "top", usecase.DefaultTopAuthors, "Maximum number of authors to print")
	cmd.Flags().IntVar(&commitsPerPage, "commits-per-page", usecase.DefaultCommitsPerPage, "Commits requested per repository")
	cmd.Flags().BoolVar(&summary, "summary", false, "Also print commit distribution statistics")
	return cmd
}
