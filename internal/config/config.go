// Package config resolves the settings of a run from defaults, an optional
// TOML file and the environment. Command-line flags are applied last by cmd.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

// Output formats understood by the report package.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Environment variables read by Load.
const (
	EnvUser   = "GITHUB_USER"
	EnvToken  = "GITHUB_TOKEN"
	EnvAPIURL = "GITHUB_API_URL"
)

// Config holds everything a command needs to talk to GitHub and print the result.
type Config struct {
	Username   string `toml:"username"`
	Token      string `toml:"token"`
	BaseURL    string `toml:"base_url"`
	GraphQLURL string `toml:"graphql_url"`
	Output     string `toml:"output"`

	// Upstream APIs may cap per_page below these values; they are settings, not constants.
	ReposPerPage   int `toml:"repos_per_page"`
	CommitsPerPage int `toml:"commits_per_page"`
	TopAuthors     int `toml:"top_authors"`

	WaitSecondaryLimit bool          `toml:"wait_secondary_limit"`
	MaxSecondaryWait   time.Duration `toml:"-"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Output:           FormatTable,
		ReposPerPage:     usecase.DefaultReposPerPage,
		CommitsPerPage:   usecase.DefaultCommitsPerPage,
		TopAuthors:       usecase.DefaultTopAuthors,
		MaxSecondaryWait: time.Hour,
	}
}

// Load starts from Default, overlays the TOML file at path (if path is not empty)
// and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvUser); ok && v != "" {
		c.Username = v
	}
	if v, ok := lookup(EnvToken); ok && v != "" {
		c.Token = v
	}
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.BaseURL = v
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.ReposPerPage <= 0 {
		errs = append(errs, fmt.Errorf("repos_per_page must be positive, got %d", c.ReposPerPage))
	}
	if c.CommitsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("commits_per_page must be positive, got %d", c.CommitsPerPage))
	}
	if c.TopAuthors <= 0 {
		errs = append(errs, fmt.Errorf("top_authors must be positive, got %d", c.TopAuthors))
	}
	switch c.Output {
	case FormatTable, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, FormatTable, FormatJSON))
	}
	return errors.Join(errs...)
}

// Credentials returns the credentials sent with every API call.
func (c Config) Credentials() domain.Credentials {
	return domain.Credentials{Username: c.Username, Token: c.Token}
}

// GatewayOptions returns the endpoint and transport settings for the gateway.
func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		BaseURL:    c.BaseURL,
		GraphQLURL: c.GraphQLURL,
		Transport: gateway.TransportOptions{
			WaitSecondaryLimit: c.WaitSecondaryLimit,
			MaxSecondaryWait:   c.MaxSecondaryWait,
		},
	}
}

// AggregatorOptions returns the settings of the author aggregator.
func (c Config) AggregatorOptions() usecase.AggregatorOptions {
	return usecase.AggregatorOptions{
		CommitsPerPage: c.CommitsPerPage,
		TopAuthors:     c.TopAuthors,
	}
}
