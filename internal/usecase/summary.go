package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Summarize describes how commits are spread across the given authors.
func Summarize(authors []domain.AuthorStats) (domain.AuthorSummary, error) {
	if len(authors) == 0 {
		return domain.AuthorSummary{}, nil
	}

	data := make(stats.Float64Data, 0, len(authors))
	total := 0
	for _, a := range authors {
		data = append(data, float64(a.CommitsCount))
		total += a.CommitsCount
	}

	mean, err := data.Mean()
	if err != nil {
		return domain.AuthorSummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return domain.AuthorSummary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	p90, err := data.Percentile(90)
	if err != nil {
		return domain.AuthorSummary{}, fmt.Errorf("failed to compute 90th percentile: %w", err)
	}

	return domain.AuthorSummary{
		Contributors: len(authors),
		TotalCommits: total,
		Mean:         mean,
		Median:       median,
		P90:          p90,
	}, nil
}
