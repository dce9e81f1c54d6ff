package cmd

import (
	"github.com/spf13/cobra"
)

func newRateLimitCmd(flags *globalFlags) *cobra.Command {
	var graphql bool

	cmd := &cobra.Command{
		Use:     "rate-limit",
		Aliases: []string{"ratelimit"},
		Short:   "Shows the remaining API rate limit",
		Long: `Calls the authenticated user's profile endpoint and prints every
rate-limit response header. With --graphql the GraphQL budget, which is
tracked separately, is printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			reporter := a.rateLimitReporter()
			snapshot, err := reporter.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.renderer.RateLimit("Response limit", snapshot); err != nil {
				return err
			}
			if !graphql {
				return nil
			}

			limit, err := reporter.GraphQL(cmd.Context())
			if err != nil {
				return err
			}
			return a.renderer.GraphQLRateLimit(limit)
		},
	}

	cmd.Flags().BoolVar(&graphql, "graphql", false, "Also query the GraphQL API rate limit")
	return cmd
}
