package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// TransportOptions controls how the HTTP client used by the gateway is assembled.
type TransportOptions struct {
	// WaitSecondaryLimit sleeps through GitHub secondary rate limits instead of failing.
	WaitSecondaryLimit bool
	// MaxSecondaryWait caps a single sleep when WaitSecondaryLimit is set.
	MaxSecondaryWait time.Duration
	// Base is the innermost round tripper. Defaults to http.DefaultTransport.
	Base http.RoundTripper
}

// NewHTTPClient builds an authenticated HTTP client for the GitHub APIs.
// A username selects basic auth (username + token); a bare token is sent as a bearer token.
func NewHTTPClient(creds domain.Credentials, opts TransportOptions) (*http.Client, error) {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if opts.WaitSecondaryLimit {
		limit := opts.MaxSecondaryWait
		if limit <= 0 {
			limit = time.Hour
		}
		waiter, err := github_ratelimit.NewRateLimitWaiter(base, github_ratelimit.WithSingleSleepLimit(limit, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = waiter
	}

	switch {
	case creds.Username != "":
		base = &github.BasicAuthTransport{Username: creds.Username, Password: creds.Token, Transport: base}
	case creds.Token != "":
		base = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token}),
		}
	}

	return &http.Client{Transport: base}, nil
}
