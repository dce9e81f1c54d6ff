package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
)

// RateLimitReporter reports the remaining API quota. Nothing is cached.
type RateLimitReporter struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewRateLimitReporter creates a new RateLimitReporter instance.
func NewRateLimitReporter(fetcher gateway.Fetcher, logger *log.Logger) *RateLimitReporter {
	return &RateLimitReporter{fetcher: fetcher, logger: logger}
}

// Snapshot returns the rate-limit headers of a fresh call to the user profile endpoint.
func (r *RateLimitReporter) Snapshot(ctx context.Context) (domain.RateLimitSnapshot, error) {
	headers, err := r.fetcher.FetchProfileHeaders(ctx)
	if err != nil {
		r.logger.Error("Rate limit request failed", "err", err)
		return nil, err
	}
	return filterRateLimitHeaders(headers), nil
}

// GraphQL returns the GraphQL API budget.
func (r *RateLimitReporter) GraphQL(ctx context.Context) (*domain.GraphQLRateLimit, error) {
	limit, err := r.fetcher.FetchGraphQLRateLimit(ctx)
	if err != nil {
		r.logger.Error("GraphQL rate limit request failed", "err", err)
		return nil, err
	}
	return limit, nil
}

// filterRateLimitHeaders keeps the headers whose name contains domain.RateLimitMarker.
// net/http canonicalizes "X-RateLimit-Limit" to "X-Ratelimit-Limit", so the match ignores case.
func filterRateLimitHeaders(headers http.Header) domain.RateLimitSnapshot {
	marker := strings.ToLower(domain.RateLimitMarker)
	snapshot := make(domain.RateLimitSnapshot)
	for name, values := range headers {
		if !strings.Contains(strings.ToLower(name), marker) || len(values) == 0 {
			continue
		}
		snapshot[name] = strings.Join(values, ", ")
	}
	return snapshot
}
