// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

const (
	// DefaultCommitsPerPage is the page size requested from each repository's commit list.
	DefaultCommitsPerPage = 1000
	// DefaultTopAuthors caps the number of rows MostActiveAuthors returns.
	DefaultTopAuthors = 100
)

// AggregatorOptions tunes the commit sampling and the size of the result.
type AggregatorOptions struct {
	CommitsPerPage int
	TopAuthors     int
}

// Aggregator is the use case for ranking the commit authors of an organization.
// It orchestrates the fetching and tallying of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	repos   *RepoLister
	logger  *log.Logger
	opts    AggregatorOptions
}

// NewAggregator creates a new Aggregator instance.
// Zero option values fall back to DefaultCommitsPerPage and DefaultTopAuthors.
func NewAggregator(fetcher gateway.Fetcher, repos *RepoLister, opts AggregatorOptions, logger *log.Logger) *Aggregator {
	if opts.CommitsPerPage <= 0 {
		opts.CommitsPerPage = DefaultCommitsPerPage
	}
	if opts.TopAuthors <= 0 {
		opts.TopAuthors = DefaultTopAuthors
	}
	return &Aggregator{
		fetcher: fetcher,
		repos:   repos,
		logger:  logger,
		opts:    opts,
	}
}

// MostActiveAuthors tallies the first page of commits of every repository in org
// per (name, email) author and returns the most active ones, highest count first.
//
// Failing to list the organization's repositories fails the whole call. A
// repository whose commits cannot be fetched is logged and skipped.
func (a *Aggregator) MostActiveAuthors(ctx context.Context, org string) ([]domain.AuthorStats, error) {
	a.logger.Debug("Usecase: Starting author aggregation...", "org", org)

	repos, err := a.repos.OrgRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	prog := newProgress(a.logger)
	t := newTally()
	skipped := 0
	for _, repo := range repos {
		authors, err := a.fetcher.FetchCommitAuthors(ctx, org, repo.Name, 1, a.opts.CommitsPerPage)
		if err != nil {
			a.logger.Warn("Skipping repository, it might be empty", "repo", repo.Name, "err", err)
			skipped++
			continue
		}
		for _, author := range authors {
			if author.IsBot() {
				continue
			}
			t.add(author)
		}
	}

	result := t.top(a.opts.TopAuthors)
	prog.done("Usecase: Aggregation complete.", "org", org, "repos", len(repos), "skipped", skipped, "authors", len(result))
	return result, nil
}

// tally counts commits per author and remembers the order authors were first seen in.
type tally struct {
	counts map[domain.CommitAuthor]int
	order  []domain.CommitAuthor
}

func newTally() *tally {
	return &tally{counts: make(map[domain.CommitAuthor]int)}
}

func (t *tally) add(author domain.CommitAuthor) {
	if _, ok := t.counts[author]; !ok {
		t.order = append(t.order, author)
	}
	t.counts[author]++
}

// top returns at most n authors by descending count; ties keep first-seen order.
func (t *tally) top(n int) []domain.AuthorStats {
	stats := make([]domain.AuthorStats, 0, len(t.order))
	for _, author := range t.order {
		stats = append(stats, domain.AuthorStats{
			Author:       author.Name,
			Email:        author.Email,
			CommitsCount: t.counts[author],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].CommitsCount > stats[j].CommitsCount
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
