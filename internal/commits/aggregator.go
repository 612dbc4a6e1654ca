// internal/commits/aggregator.go
package commits

import (
	"database/sql"
	"log/slog"
	"sort"
	"time"

	custom_errors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// Options controls how rows are grouped into summaries.
type Options struct {
	// URLPrefix is prepended to the commit id to build its link.
	URLPrefix string
	// Strict rejects commits whose rows disagree on author or timestamp.
	// When false the first row wins and the disagreement is logged.
	Strict bool
	// Location converts timestamps before deriving the hour of day. Nil keeps
	// each record's own offset.
	Location *time.Location
	Logger   *slog.Logger
}

// Set is the chronologically sorted, read-only commit sequence.
type Set struct {
	commits []*model.CommitSummary
	byID    map[string]int
	rows    int
}

// Aggregate groups rows by commit id into summaries sorted by datetime. Commits
// without a timestamp sort last; ties keep first-occurrence order.
func Aggregate(rows []model.LineChange, opts Options) (*Set, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	order := make([]string, 0)
	groups := make(map[string][]model.LineChange)
	for _, r := range rows {
		if _, ok := groups[r.CommitID]; !ok {
			order = append(order, r.CommitID)
		}
		groups[r.CommitID] = append(groups[r.CommitID], r)
	}

	summaries := make([]*model.CommitSummary, 0, len(order))
	inconsistent := 0
	for _, id := range order {
		lines := groups[id]
		first := lines[0]

		if err := checkConsistent(id, lines); err != nil {
			if opts.Strict {
				return nil, err
			}
			inconsistent++
			logger.Debug("Commit rows disagree, keeping first row", "commit", id, "error", err)
		}

		dt := first.Datetime
		if dt.Valid && opts.Location != nil {
			dt.Time = dt.Time.In(opts.Location)
		}
		summaries = append(summaries, model.NewCommitSummary(id, opts.URLPrefix+id, first.Author, dt, hourOfDay(dt), lines))
	}
	if inconsistent > 0 {
		logger.Warn("Some commits have rows with differing author or datetime", "commits", inconsistent)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Datetime, summaries[j].Datetime
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Time.Before(b.Time)
	})

	return newSet(summaries, len(rows)), nil
}

func newSet(summaries []*model.CommitSummary, rows int) *Set {
	byID := make(map[string]int, len(summaries))
	for i, c := range summaries {
		byID[c.ID] = i
	}
	return &Set{commits: summaries, byID: byID, rows: rows}
}

func checkConsistent(id string, lines []model.LineChange) error {
	first := lines[0]
	for _, l := range lines[1:] {
		if l.Author != first.Author {
			return &custom_errors.ErrInconsistentCommit{CommitID: id, Field: "author", First: first.Author, Other: l.Author}
		}
		if l.Datetime.Valid != first.Datetime.Valid || (l.Datetime.Valid && !l.Datetime.Time.Equal(first.Datetime.Time)) {
			return &custom_errors.ErrInconsistentCommit{CommitID: id, Field: "datetime", First: formatNullTime(first.Datetime), Other: formatNullTime(l.Datetime)}
		}
	}
	return nil
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return "null"
	}
	return t.Time.Format(time.RFC3339)
}

func hourOfDay(dt sql.NullTime) sql.NullFloat64 {
	if !dt.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(dt.Time.Hour()) + float64(dt.Time.Minute())/60, Valid: true}
}

// All returns the commits in chronological order. Callers must not modify the slice.
func (s *Set) All() []*model.CommitSummary { return s.commits }

// Len returns the number of commits.
func (s *Set) Len() int { return len(s.commits) }

// At returns the i-th commit in chronological order.
func (s *Set) At(i int) (*model.CommitSummary, bool) {
	if i < 0 || i >= len(s.commits) {
		return nil, false
	}
	return s.commits[i], true
}

// Get looks a commit up by id.
func (s *Set) Get(id string) (*model.CommitSummary, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.commits[i], true
}

// Index returns the chronological position of a commit.
func (s *Set) Index(id string) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// Rows returns the number of LineChange rows the set was built from.
func (s *Set) Rows() int { return s.rows }

// TimeExtent returns the earliest and latest commit timestamps. ok is false when
// no commit carries a timestamp.
func (s *Set) TimeExtent() (lo, hi time.Time, ok bool) {
	for _, c := range s.commits {
		if !c.Dated() {
			continue
		}
		if !ok {
			lo, hi, ok = c.Datetime.Time, c.Datetime.Time, true
			continue
		}
		if c.Datetime.Time.Before(lo) {
			lo = c.Datetime.Time
		}
		if c.Datetime.Time.After(hi) {
			hi = c.Datetime.Time
		}
	}
	return lo, hi, ok
}

// LinesExtent returns the smallest and largest TotalLines. ok is false for an empty set.
func (s *Set) LinesExtent() (lo, hi int, ok bool) {
	for i, c := range s.commits {
		if i == 0 {
			lo, hi = c.TotalLines, c.TotalLines
			continue
		}
		lo = min(lo, c.TotalLines)
		hi = max(hi, c.TotalLines)
	}
	return lo, hi, len(s.commits) > 0
}

// Until returns the commits at or before cutoff, in chronological order. Undated
// commits are never included.
func (s *Set) Until(cutoff time.Time) []*model.CommitSummary {
	out := make([]*model.CommitSummary, 0, len(s.commits))
	for _, c := range s.commits {
		if c.Dated() && !c.Datetime.Time.After(cutoff) {
			out = append(out, c)
		}
	}
	return out
}
