package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/report"
)

func newReportCmd(flags *globalFlags) *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Prints top authors, repositories and rate limit in one run",
		Long: `Prints, in order: the most active authors of an organization, the
repositories of the configured user, the repositories of the organization and
the remaining rate limit. The organization listing is fetched once and reused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			full := report.Full{Org: org, User: a.cfg.Username}

			full.Authors, err = a.aggregator().MostActiveAuthors(ctx, org)
			if err != nil {
				return fmt.Errorf("failed to aggregate authors of %s: %w", org, err)
			}

			if full.User != "" {
				full.UserRepos, err = a.repos.UserRepos(ctx, full.User)
				if err != nil {
					return fmt.Errorf("failed to list repositories of %s: %w", full.User, err)
				}
			} else {
				a.logger.Info("No username configured, skipping user repositories")
			}

			// Served from the cache filled by the aggregation above.
			full.OrgRepos, err = a.repos.OrgRepos(ctx, org)
			if err != nil {
				return fmt.Errorf("failed to list repositories of %s: %w", org, err)
			}

			full.RateLimit, err = a.rateLimitReporter().Snapshot(ctx)
			if err != nil {
				return err
			}

			return a.renderer.Report(full)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Target GitHub organization name (required)")
	cmd.MarkFlagRequired("org")
	return cmd
}
