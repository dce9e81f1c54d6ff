// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	verbose            bool
	configPath         string
	username           string
	baseURL            string
	graphqlURL         string
	output             string
	reposPerPage       int
	waitSecondaryLimit bool
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "github-activity",
		Short: "A CLI tool to report GitHub organization activity.",
		Long: `github-activity reports the most active commit authors of a GitHub
organization, lists the repositories of users and organizations, and shows
the remaining API rate limit.

Credentials are read from GITHUB_USER and GITHUB_TOKEN (or a TOML config file).`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose/debug logging")
	pf.StringVar(&flags.configPath, "config", "", "Path to a TOML config file")
	pf.StringVar(&flags.username, "username", "", "GitHub username for basic auth (default $GITHUB_USER)")
	pf.StringVar(&flags.baseURL, "base-url", "", "GitHub REST API base URL (default $GITHUB_API_URL or api.github.com)")
	pf.StringVar(&flags.graphqlURL, "graphql-url", "", "GitHub GraphQL endpoint (default api.github.com/graphql)")
	pf.StringVarP(&flags.output, "output", "o", "", "Output format: table or json")
	pf.IntVar(&flags.reposPerPage, "repos-per-page", 0, "Page size for repository listings (default 100)")
	pf.BoolVar(&flags.waitSecondaryLimit, "wait-secondary-limit", false, "Sleep through GitHub secondary rate limits instead of failing")

	rootCmd.AddCommand(newReportCmd(flags))
	rootCmd.AddCommand(newAuthorsCmd(flags))
	rootCmd.AddCommand(newReposCmd(flags))
	rootCmd.AddCommand(newRateLimitCmd(flags))
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
//
// There is no package-level rootCmd registered from init functions: the tree
// is built by newRootCmd on every call, so tests can execute it repeatedly
// with fresh flag values.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
