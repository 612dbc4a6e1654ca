// internal/commits/stats.go
package commits

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// Period is a time-of-day bucket.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Evening   Period = "evening"
	Night     Period = "night"
)

// PeriodOf buckets a fractional hour: [5,12) morning, [12,17) afternoon,
// [17,21) evening, anything else night.
func PeriodOf(hour float64) Period {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Stats summarises the whole dataset.
type Stats struct {
	TotalLines        int     `json:"total_lines"`
	Commits           int     `json:"commits"`
	Files             int     `json:"files"`
	MaxDepth          int64   `json:"max_depth"`
	LongestLine       int64   `json:"longest_line"`
	MaxLines          int     `json:"max_lines"`
	AverageFileLength float64 `json:"average_file_length"`
	AverageLineLength float64 `json:"average_line_length"`
	AverageDepth      float64 `json:"average_depth"`
	BusiestPeriod     Period  `json:"busiest_period,omitempty"`
	BusiestWeekday    string  `json:"busiest_weekday,omitempty"`
}

// Stat is one formatted label/value pair for display.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ComputeStats derives the dataset summary from the set's rows.
func ComputeStats(s *Set) Stats {
	st := Stats{Commits: s.Len()}

	fileLines := make(map[string]int)
	periods := make(map[Period]int)
	weekdays := make(map[time.Weekday]int)
	var lengthSum, lengthN, depthSum, depthN int64

	for _, c := range s.All() {
		for _, l := range c.Lines() {
			st.TotalLines++
			fileLines[l.File]++
			if l.Depth.Valid {
				st.MaxDepth = max(st.MaxDepth, l.Depth.Int64)
				depthSum += l.Depth.Int64
				depthN++
			}
			if l.Length.Valid {
				st.LongestLine = max(st.LongestLine, l.Length.Int64)
				lengthSum += l.Length.Int64
				lengthN++
			}
			if c.Dated() {
				periods[PeriodOf(c.HourOfDay.Float64)]++
				weekdays[c.Datetime.Time.Weekday()]++
			}
		}
	}

	st.Files = len(fileLines)
	for _, n := range fileLines {
		st.MaxLines = max(st.MaxLines, n)
	}
	if st.Files > 0 {
		st.AverageFileLength = float64(st.TotalLines) / float64(st.Files)
	}
	if lengthN > 0 {
		st.AverageLineLength = float64(lengthSum) / float64(lengthN)
	}
	if depthN > 0 {
		st.AverageDepth = float64(depthSum) / float64(depthN)
	}
	st.BusiestPeriod = busiest(periods, []Period{Morning, Afternoon, Evening, Night})

	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, d)
	}
	if d := busiest(weekdays, days); weekdays[d] > 0 {
		st.BusiestWeekday = d.String()
	}
	return st
}

// busiest returns the key with the highest count, earliest in order on ties.
func busiest[K comparable](counts map[K]int, order []K) K {
	var best K
	bestN := 0
	for _, k := range order {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}

// Formatted returns the stats as display pairs, numbers grouped with commas.
func (st Stats) Formatted() []Stat {
	out := []Stat{
		{"Total LOC", humanize.Comma(int64(st.TotalLines))},
		{"Commits", humanize.Comma(int64(st.Commits))},
		{"Files", humanize.Comma(int64(st.Files))},
		{"Max depth", humanize.Comma(st.MaxDepth)},
		{"Longest line", humanize.Comma(st.LongestLine)},
		{"Max lines", humanize.Comma(int64(st.MaxLines))},
		{"Avg file length", humanize.FormatFloat("#,###.#", st.AverageFileLength)},
		{"Avg line length", humanize.FormatFloat("#,###.#", st.AverageLineLength)},
		{"Avg depth", humanize.FormatFloat("#,###.#", st.AverageDepth)},
	}
	if st.BusiestPeriod != "" {
		out = append(out, Stat{"Most work done", string(st.BusiestPeriod)})
	}
	if st.BusiestWeekday != "" {
		out = append(out, Stat{"Busiest day", st.BusiestWeekday})
	}
	return out
}

// TopFiles returns file names ordered by line count, largest first.
func TopFiles(s *Set, n int) []string {
	counts := make(map[string]int)
	for _, c := range s.All() {
		for _, l := range c.Lines() {
			counts[l.File]++
		}
	}
	files := make([]string, 0, len(counts))
	for f := range counts {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		if counts[files[i]] != counts[files[j]] {
			return counts[files[i]] > counts[files[j]]
		}
		return files[i] < files[j]
	})
	if n > 0 && len(files) > n {
		files = files[:n]
	}
	return files
}
