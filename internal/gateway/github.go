// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// ErrUnexpectedStatus is returned when GitHub answers with anything other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRepoPage returns a single page of the owner's repository listing.
	// An empty slice means the listing is exhausted.
	FetchRepoPage(ctx context.Context, owner domain.Owner, page, perPage int) ([]domain.Repository, error)
	// FetchCommitAuthors returns the authors of a single page of a repository's commits.
	FetchCommitAuthors(ctx context.Context, org, repo string, page, perPage int) ([]domain.CommitAuthor, error)
	// FetchProfileHeaders returns the response headers of the authenticated user's profile.
	FetchProfileHeaders(ctx context.Context) (http.Header, error)
	// FetchGraphQLRateLimit returns the GraphQL API budget of the authenticated user.
	FetchGraphQLRateLimit(ctx context.Context) (*domain.GraphQLRateLimit, error)
}

// Options configures the endpoints and transport of a GitHubGateway.
type Options struct {
	// BaseURL is the REST API root, e.g. "https://github.example.com/api/v3/".
	// Empty means api.github.com.
	BaseURL string
	// GraphQLURL is the GraphQL endpoint. Empty means api.github.com/graphql.
	GraphQLURL string
	Transport  TransportOptions
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// rateLimitQuery asks for the GraphQL budget along with the viewer it belongs to.
type rateLimitQuery struct {
	Viewer struct {
		Login string
	}
	RateLimit struct {
		Limit     int
		Cost      int
		Remaining int
		Used      int
		ResetAt   githubv4.DateTime
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(creds domain.Credentials, opts Options, logger *log.Logger) (Fetcher, error) {
	httpClient, err := NewHTTPClient(creds, opts.Transport)
	if err != nil {
		return nil, err
	}

	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchRepoPage(ctx context.Context, owner domain.Owner, page, perPage int) ([]domain.Repository, error) {
	g.logger.Debug("Fetching repository page", "owner", owner.Name, "kind", owner.Kind, "page", page, "per_page", perPage)
	list := github.ListOptions{Page: page, PerPage: perPage}

	var (
		repos []*github.Repository
		resp  *github.Response
		err   error
	)
	switch owner.Kind {
	case domain.OwnerOrg:
		repos, resp, err = g.restClient.Repositories.ListByOrg(ctx, owner.Name, &github.RepositoryListByOrgOptions{ListOptions: list})
	default:
		repos, resp, err = g.restClient.Repositories.ListByUser(ctx, owner.Name, &github.RepositoryListByUserOptions{ListOptions: list})
	}
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s/%s (page %d): %w", owner.Kind, owner.Name, page, err)
	}

	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, domain.Repository{
			Name:      r.GetName(),
			Private:   r.GetPrivate(),
			CreatedAt: r.GetCreatedAt().Time,
		})
	}
	return result, nil
}

func (g *GitHubGateway) FetchCommitAuthors(ctx context.Context, org, repo string, page, perPage int) ([]domain.CommitAuthor, error) {
	g.logger.Debug("Fetching commits", "repo", org+"/"+repo, "page", page, "per_page", perPage)
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{Page: page, PerPage: perPage}}
	commits, resp, err := g.restClient.Repositories.ListCommits(ctx, org, repo, opts)
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to list commits of %s/%s: %w", org, repo, err)
	}

	authors := make([]domain.CommitAuthor, 0, len(commits))
	for _, c := range commits {
		if c.GetCommit() == nil || c.GetCommit().GetAuthor() == nil {
			continue
		}
		author := c.GetCommit().GetAuthor()
		authors = append(authors, domain.CommitAuthor{Name: author.GetName(), Email: author.GetEmail()})
	}
	return authors, nil
}

func (g *GitHubGateway) FetchProfileHeaders(ctx context.Context) (http.Header, error) {
	g.logger.Debug("Fetching authenticated user profile")
	_, resp, err := g.restClient.Users.Get(ctx, "")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	return resp.Header.Clone(), nil
}

// FetchGraphQLRateLimit queries the rateLimit object of the GraphQL API.
func (g *GitHubGateway) FetchGraphQLRateLimit(ctx context.Context) (*domain.GraphQLRateLimit, error) {
	g.logger.Debug("Fetching GraphQL rate limit")
	var q rateLimitQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for rate limit: %w", err)
	}
	return &domain.GraphQLRateLimit{
		Login:     q.Viewer.Login,
		Limit:     q.RateLimit.Limit,
		Cost:      q.RateLimit.Cost,
		Remaining: q.RateLimit.Remaining,
		Used:      q.RateLimit.Used,
		ResetAt:   q.RateLimit.ResetAt.Time,
	}, nil
}

// checkResponse folds go-github's error and the status code into a single error.
// go-github only fails on non-2xx, so 2xx codes other than 200 are caught here.
func checkResponse(resp *github.Response, err error) error {
	if err != nil {
		if resp != nil && resp.Response != nil {
			return fmt.Errorf("%w %d: %w", ErrUnexpectedStatus, resp.StatusCode, err)
		}
		return err
	}
	if resp == nil || resp.Response == nil {
		return fmt.Errorf("%w: empty response", ErrUnexpectedStatus)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
