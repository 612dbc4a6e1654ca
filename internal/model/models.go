// internal/model/models.go
package model

import (
	"database/sql" // nullable columns degrade to Valid=false instead of failing the row
	"time"
)

// LineChange is one changed line of one commit, as produced by the loc dataset.
type LineChange struct {
	CommitID string
	Author   string
	File     string
	Type     string
	Date     sql.NullTime
	Datetime sql.NullTime
	Line     sql.NullInt64
	Depth    sql.NullInt64
	Length   sql.NullInt64
}

// CommitSummary is the per-commit view derived from its LineChange rows.
// Summaries are built once by the aggregator and never mutated afterwards.
type CommitSummary struct {
	ID         string
	URL        string
	Author     string
	Datetime   sql.NullTime
	HourOfDay  sql.NullFloat64
	TotalLines int

	lines []LineChange
}

// NewCommitSummary builds a summary owning the given rows.
func NewCommitSummary(id, url, author string, datetime sql.NullTime, hour sql.NullFloat64, lines []LineChange) *CommitSummary {
	owned := make([]LineChange, len(lines))
	copy(owned, lines)

	return &CommitSummary{
		ID:         id,
		URL:        url,
		Author:     author,
		Datetime:   datetime,
		HourOfDay:  hour,
		TotalLines: len(owned),
		lines:      owned,
	}
}

// Lines returns the rows backing the summary. Callers must not modify the slice.
func (c *CommitSummary) Lines() []LineChange {
	return c.lines
}

// Files returns the number of distinct files touched by the commit.
func (c *CommitSummary) Files() int {
	seen := make(map[string]struct{}, len(c.lines))
	for _, l := range c.lines {
		seen[l.File] = struct{}{}
	}
	return len(seen)
}

// Dated reports whether the commit has a usable timestamp.
func (c *CommitSummary) Dated() bool {
	return c.Datetime.Valid
}

// ProfileStats holds the public counters of a GitHub user profile.
type ProfileStats struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	FetchedAt   time.Time
}

// Project is one entry of the portfolio project list.
type Project struct {
	Title       string `json:"title"`
	Year        string `json:"year"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description"`
}
