package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        log.New(io.Discard),
	}

	return gateway, server
}

func TestGitHubGateway_FetchRepoPage(t *testing.T) {
	testCases := []struct {
		name          string
		owner         domain.Owner
		handlerFunc   func(w http.ResponseWriter, r *http.Request)
		expectedRepos []domain.Repository
		expectError   bool
	}{
		{
			name:  "org listing keeps name, private and created_at",
			owner: domain.Owner{Kind: domain.OwnerOrg, Name: "acme"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs/acme/repos", r.URL.Path)
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				fmt.Fprint(w, `[{"name":"rocket","private":true,"created_at":"2020-01-02T03:04:05Z","stargazers_count":9},
					{"name":"anvil","private":false,"created_at":"2021-06-07T08:09:10Z"}]`)
			},
			expectedRepos: []domain.Repository{
				{Name: "rocket", Private: true, CreatedAt: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
				{Name: "anvil", Private: false, CreatedAt: time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)},
			},
		},
		{
			name:  "user listing uses the users endpoint",
			owner: domain.Owner{Kind: domain.OwnerUser, Name: "alice"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/alice/repos", r.URL.Path)
				fmt.Fprint(w, `[]`)
			},
			expectedRepos: []domain.Repository{},
		},
		{
			name:  "not found is an error",
			owner: domain.Owner{Kind: domain.OwnerOrg, Name: "ghost"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
			},
			expectError: true,
		},
		{
			name:  "2xx other than 200 is an error",
			owner: domain.Owner{Kind: domain.OwnerOrg, Name: "acme"},
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				fmt.Fprint(w, `[]`)
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			repos, err := gateway.FetchRepoPage(context.Background(), tc.owner, 2, 100)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrUnexpectedStatus)
				assert.Nil(t, repos)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedRepos, repos)
			}
		})
	}
}

func TestGitHubGateway_FetchCommitAuthors(t *testing.T) {
	t.Run("extracts nested commit authors", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/acme/rocket/commits", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "1000", r.URL.Query().Get("per_page"))
			fmt.Fprint(w, `[
				{"sha":"a1","commit":{"author":{"name":"Alice","email":"alice@example.com"}}},
				{"sha":"b2","commit":{"author":{"name":"dependabot[bot]","email":"bot@example.com"}}},
				{"sha":"c3","commit":{"message":"no author"}}
			]`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		authors, err := gateway.FetchCommitAuthors(context.Background(), "acme", "rocket", 1, 1000)
		require.NoError(t, err)
		// Bot filtering is the aggregator's job; the gateway returns every author it finds.
		assert.Equal(t, []domain.CommitAuthor{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "dependabot[bot]", Email: "bot@example.com"},
		}, authors)
	})

	t.Run("empty repository conflict is an error", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		_, err := gateway.FetchCommitAuthors(context.Background(), "acme", "empty", 1, 1000)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "acme/empty")
	})
}

func TestGitHubGateway_FetchProfileHeaders(t *testing.T) {
	t.Run("returns response headers", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user", r.URL.Path)
			w.Header().Set("X-RateLimit-Limit", "60")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"login":"alice"}`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		headers, err := gateway.FetchProfileHeaders(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "60", headers.Get("X-RateLimit-Limit"))
		assert.Equal(t, "application/json", headers.Get("Content-Type"))
	})

	t.Run("unauthorized is an error", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Bad credentials"}`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		headers, err := gateway.FetchProfileHeaders(context.Background())
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Nil(t, headers)
	})
}

func TestGitHubGateway_FetchGraphQLRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       *domain.GraphQLRateLimit
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"viewer":{"login":"alice"},"rateLimit":{"limit":5000,"cost":1,"remaining":4999,"used":1,"resetAt":"2026-10-19T12:00:00Z"}}}`,
			expected: &domain.GraphQLRateLimit{
				Login:     "alice",
				Limit:     5000,
				Cost:      1,
				Remaining: 4999,
				Used:      1,
				ResetAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query for rate limit",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "rateLimit")
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			result, err := gateway.FetchGraphQLRateLimit(context.Background())
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected.Login, result.Login)
				assert.Equal(t, tc.expected.Remaining, result.Remaining)
				assert.True(t, tc.expected.ResetAt.Equal(result.ResetAt))
			}
		})
	}
}
