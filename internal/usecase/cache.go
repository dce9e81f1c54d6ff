package usecase

import (
	"slices"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Cache stores repository listings per owner name for the lifetime of the process.
// Entries are populated once and never invalidated.
type Cache interface {
	Get(owner string) ([]domain.Repository, bool)
	// Put stores repos under owner unless an entry already exists.
	Put(owner string, repos []domain.Repository)
}

// MemoryCache is the in-process Cache. It is not safe for concurrent use.
// Slices are copied on the way in and out so callers cannot alter an entry.
type MemoryCache struct {
	entries map[string][]domain.Repository
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]domain.Repository)}
}

func (c *MemoryCache) Get(owner string) ([]domain.Repository, bool) {
	repos, ok := c.entries[owner]
	if !ok {
		return nil, false
	}
	return slices.Clone(repos), true
}

func (c *MemoryCache) Put(owner string, repos []domain.Repository) {
	if _, ok := c.entries[owner]; ok {
		return
	}
	c.entries[owner] = slices.Clone(repos)
}

var _ Cache = (*MemoryCache)(nil)
