// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// BotMarker identifies automated commit authors such as "dependabot[bot]".
const BotMarker = "[bot]"

// Credentials are passed through to every GitHub API call.
// They are set once at startup and never change.
type Credentials struct {
	Username string
	Token    string
}

// OwnerKind selects which repository-list endpoint an owner is served from.
type OwnerKind int

const (
	// OwnerUser lists repositories with users/{name}/repos.
	OwnerUser OwnerKind = iota
	// OwnerOrg lists repositories with orgs/{name}/repos.
	OwnerOrg
)

func (k OwnerKind) String() string {
	if k == OwnerOrg {
		return "orgs"
	}
	return "users"
}

// Owner is a user or organization under which repositories are listed.
type Owner struct {
	Kind OwnerKind
	Name string
}

// Repository holds the fields kept from one item of a repository listing.
type Repository struct {
	Name      string    `json:"name"`
	Private   bool      `json:"private"`
	CreatedAt time.Time `json:"created_at"`
}

// CommitAuthor is the git author recorded on a single commit.
type CommitAuthor struct {
	Name  string
	Email string
}

// IsBot reports whether the author is an automated account.
func (a CommitAuthor) IsBot() bool {
	return strings.Contains(a.Name, BotMarker)
}

// AuthorStats holds the commit count of a single (name, email) author.
// It is the core domain entity of this application.
type AuthorStats struct {
	Author       string `json:"author"`
	Email        string `json:"email"`
	CommitsCount int    `json:"commits_count"`
}

// AuthorSummary describes the distribution of commit counts across authors.
type AuthorSummary struct {
	Contributors int     `json:"contributors"`
	TotalCommits int     `json:"total_commits"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	P90          float64 `json:"p90"`
}
