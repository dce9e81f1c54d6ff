package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/domain"
)

func newReposCmd(flags *globalFlags) *cobra.Command {
	var org, user string

	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Lists the repositories of a user or an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (org == "") == (user == "") {
				return errors.New("exactly one of --org or --user is required")
			}
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}

			owner := domain.Owner{Kind: domain.OwnerUser, Name: user}
			title := fmt.Sprintf("Repositories of %s", user)
			if org != "" {
				owner = domain.Owner{Kind: domain.OwnerOrg, Name: org}
				title = fmt.Sprintf("Repositories of %s organization", org)
			}

			repos, err := a.repos.List(cmd.Context(), owner)
			if err != nil {
				return fmt.Errorf("failed to list repositories of %s: %w", owner.Name, err)
			}
			return a.renderer.Repos(title, repos)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "GitHub organization name")
	cmd.Flags().StringVarP(&user, "user", "u", "", "GitHub user name")
	return cmd
}
