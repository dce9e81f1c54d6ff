package usecase

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/mock"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepoPage(ctx context.Context, owner domain.Owner, page, perPage int) ([]domain.Repository, error) {
	args := m.Called(ctx, owner, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchCommitAuthors(ctx context.Context, org, repo string, page, perPage int) ([]domain.CommitAuthor, error) {
	args := m.Called(ctx, org, repo, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommitAuthor), args.Error(1)
}

func (m *mockFetcher) FetchProfileHeaders(ctx context.Context) (http.Header, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(http.Header), args.Error(1)
}

func (m *mockFetcher) FetchGraphQLRateLimit(ctx context.Context) (*domain.GraphQLRateLimit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GraphQLRateLimit), args.Error(1)
}

// repoNames builds a page of repositories with the given names.
func repoNames(names ...string) []domain.Repository {
	repos := make([]domain.Repository, 0, len(names))
	for _, n := range names {
		repos = append(repos, domain.Repository{Name: n})
	}
	return repos
}

// repeatAuthor returns n commits by the same author.
func repeatAuthor(name, email string, n int) []domain.CommitAuthor {
	authors := make([]domain.CommitAuthor, 0, n)
	for i := 0; i < n; i++ {
		authors = append(authors, domain.CommitAuthor{Name: name, Email: email})
	}
	return authors
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// bufferLogger returns a logger that records every level into the returned buffer.
func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}
