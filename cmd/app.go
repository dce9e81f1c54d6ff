package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/report"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

// app bundles the dependencies a subcommand runs with.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	fetcher  gateway.Fetcher
	repos    *usecase.RepoLister
	renderer *report.Renderer
}

// newLogger creates a logger with timestamp formatting writing to w.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// resolveConfig loads the config file and environment, then applies the flags
// the user actually set.
func resolveConfig(cmd *cobra.Command, flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	pf := cmd.Flags()
	if pf.Changed("username") {
		cfg.Username = flags.username
	}
	if pf.Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if pf.Changed("graphql-url") {
		cfg.GraphQLURL = flags.graphqlURL
	}
	if pf.Changed("output") {
		cfg.Output = flags.output
	}
	if pf.Changed("repos-per-page") {
		cfg.ReposPerPage = flags.reposPerPage
	}
	if pf.Changed("wait-secondary-limit") {
		cfg.WaitSecondaryLimit = flags.waitSecondaryLimit
	}
	return cfg, nil
}

// newApp wires the gateway, use cases and renderer from the resolved config.
// mutate, when not nil, adjusts the config before validation.
func newApp(cmd *cobra.Command, flags *globalFlags, mutate func(*config.Config)) (*app, error) {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)
	if cfg.Token == "" {
		logger.Warn("GITHUB_TOKEN is not set, requests are anonymous and heavily rate limited")
	}

	fetcher, err := gateway.NewGitHubGateway(cfg.Credentials(), cfg.GatewayOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		repos:    usecase.NewRepoLister(fetcher, usecase.NewMemoryCache(), cfg.ReposPerPage, logger),
		renderer: report.New(cmd.OutOrStdout(), cfg.Output),
	}, nil
}

func (a *app) aggregator() *usecase.Aggregator {
	return usecase.NewAggregator(a.fetcher, a.repos, a.cfg.AggregatorOptions(), a.logger)
}

func (a *app) rateLimitReporter() *usecase.RateLimitReporter {
	return usecase.NewRateLimitReporter(a.fetcher, a.logger)
}
