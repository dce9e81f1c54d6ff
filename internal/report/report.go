// Package report renders query results as terminal tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/naka-gawa/github-activity/internal/domain"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Renderer writes results to Out in the configured format ("table" or "json").
type Renderer struct {
	Out    io.Writer
	Format string
}

// New returns a Renderer. Any format other than "json" renders tables.
func New(out io.Writer, format string) *Renderer {
	return &Renderer{Out: out, Format: format}
}

// Full is everything the report command prints, in print order.
type Full struct {
	Org       string                   `json:"org"`
	User      string                   `json:"user,omitempty"`
	Authors   []domain.AuthorStats     `json:"authors"`
	UserRepos []domain.Repository      `json:"user_repos,omitempty"`
	OrgRepos  []domain.Repository      `json:"org_repos"`
	RateLimit domain.RateLimitSnapshot `json:"rate_limit"`
}

func (r *Renderer) isJSON() bool { return r.Format == "json" }

// Authors renders the author ranking.
func (r *Renderer) Authors(title string, authors []domain.AuthorStats) error {
	if r.isJSON() {
		return r.json(authors)
	}
	rows := make([][]string, 0, len(authors))
	for i, a := range authors {
		rows = append(rows, []string{strconv.Itoa(i + 1), a.Author, a.Email, strconv.Itoa(a.CommitsCount)})
	}
	return r.table(title, []string{"#", "AUTHOR", "EMAIL", "COMMITS"}, rows)
}

// Summary renders the distribution of commits across authors.
func (r *Renderer) Summary(summary domain.AuthorSummary) error {
	if r.isJSON() {
		return r.json(summary)
	}
	rows := [][]string{
		{"contributors", strconv.Itoa(summary.Contributors)},
		{"total commits", strconv.Itoa(summary.TotalCommits)},
		{"mean", formatFloat(summary.Mean)},
		{"median", formatFloat(summary.Median)},
		{"p90", formatFloat(summary.P90)},
	}
	return r.table("Summary", []string{"METRIC", "VALUE"}, rows)
}

// Repos renders a repository listing.
func (r *Renderer) Repos(title string, repos []domain.Repository) error {
	if r.isJSON() {
		return r.json(repos)
	}
	rows := make([][]string, 0, len(repos))
	for _, repo := range repos {
		rows = append(rows, []string{repo.Name, strconv.FormatBool(repo.Private), formatTime(repo.CreatedAt)})
	}
	return r.table(title, []string{"NAME", "PRIVATE", "CREATED AT"}, rows)
}

// RateLimit renders a rate-limit snapshot sorted by header name.
func (r *Renderer) RateLimit(title string, snapshot domain.RateLimitSnapshot) error {
	if r.isJSON() {
		return r.json(snapshot)
	}
	return r.table(title, []string{"HEADER", "VALUE"}, snapshotRows(snapshot))
}

// GraphQLRateLimit renders the GraphQL API budget.
func (r *Renderer) GraphQLRateLimit(limit *domain.GraphQLRateLimit) error {
	if r.isJSON() {
		return r.json(limit)
	}
	rows := [][]string{
		{"login", limit.Login},
		{"limit", strconv.Itoa(limit.Limit)},
		{"remaining", strconv.Itoa(limit.Remaining)},
		{"used", strconv.Itoa(limit.Used)},
		{"cost", strconv.Itoa(limit.Cost)},
		{"reset at", formatTime(limit.ResetAt)},
	}
	return r.table("GraphQL rate limit", []string{"FIELD", "VALUE"}, rows)
}

// Report renders the combined report. JSON output is a single document.
func (r *Renderer) Report(full Full) error {
	if r.isJSON() {
		return r.json(full)
	}
	if err := r.Authors(fmt.Sprintf("Top %d authors of %s organization", len(full.Authors), full.Org), full.Authors); err != nil {
		return err
	}
	if full.User != "" {
		if err := r.Repos(fmt.Sprintf("Repositories of %s", full.User), full.UserRepos); err != nil {
			return err
		}
	}
	if err := r.Repos(fmt.Sprintf("Repositories of %s organization", full.Org), full.OrgRepos); err != nil {
		return err
	}
	return r.RateLimit("Response limit", full.RateLimit)
}

func (r *Renderer) json(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(r.Out, string(data))
	return err
}

func (r *Renderer) table(title string, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintf(r.Out, "%s\n%s\n\n", styleTitle.Render(title), t.Render())
	return err
}

func snapshotRows(snapshot domain.RateLimitSnapshot) [][]string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, snapshot[name]})
	}
	return rows
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
