package usecase

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

// DefaultReposPerPage is the page size requested from repository listings.
const DefaultReposPerPage = 100

// RepoLister walks paginated repository listings and remembers the result per owner.
type RepoLister struct {
	fetcher gateway.Fetcher
	cache   Cache
	logger  *log.Logger
	perPage int
}

// NewRepoLister creates a RepoLister. A nil cache gets a fresh MemoryCache and
// a non-positive perPage falls back to DefaultReposPerPage.
func NewRepoLister(fetcher gateway.Fetcher, cache Cache, perPage int, logger *log.Logger) *RepoLister {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if perPage <= 0 {
		perPage = DefaultReposPerPage
	}
	return &RepoLister{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
		perPage: perPage,
	}
}

// UserRepos lists the repositories of a user.
func (l *RepoLister) UserRepos(ctx context.Context, user string) ([]domain.Repository, error) {
	return l.List(ctx, domain.Owner{Kind: domain.OwnerUser, Name: user})
}

// OrgRepos lists the repositories of an organization.
func (l *RepoLister) OrgRepos(ctx context.Context, org string) ([]domain.Repository, error) {
	return l.List(ctx, domain.Owner{Kind: domain.OwnerOrg, Name: org})
}

// List returns every repository of owner. Pages are requested from 1 upwards
// until one comes back empty. A failed page discards everything fetched so far
// and nothing is cached.
func (l *RepoLister) List(ctx context.Context, owner domain.Owner) ([]domain.Repository, error) {
	if repos, ok := l.cache.Get(owner.Name); ok {
		l.logger.Debug("Repository cache hit", "owner", owner.Name, "count", len(repos))
		return repos, nil
	}

	prog := newProgress(l.logger)
	repos := make([]domain.Repository, 0)
	for page := 1; ; page++ {
		batch, err := l.fetcher.FetchRepoPage(ctx, owner, page, l.perPage)
		if err != nil {
			l.logger.Error("Repository listing failed", "owner", owner.Name, "page", page, "err", err)
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		repos = append(repos, batch...)
	}

	l.cache.Put(owner.Name, repos)
	prog.done("Listed repositories", "owner", owner.Name, "count", len(repos))
	return repos, nil
}
