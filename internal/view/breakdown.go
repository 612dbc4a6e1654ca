// internal/view/breakdown.go
package view

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"portfolio/internal/model"
)

// TypeShare is the share of selected lines written in one technology type.
type TypeShare struct {
	Type    string  `json:"type"`
	Lines   int     `json:"lines"`
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

// SelectionSummary is the selection count and its language breakdown.
type SelectionSummary struct {
	Count     int         `json:"count"`
	Label     string      `json:"label"`
	CommitIDs []string    `json:"commit_ids"`
	Lines     int         `json:"lines"`
	Breakdown []TypeShare `json:"breakdown"`
}

// SelectionLabel renders the selection counter text.
func SelectionLabel(n int) string {
	if n == 0 {
		return "No commits selected"
	}
	return fmt.Sprintf("%d commits selected", n)
}

// Summarize counts the selected commits and breaks their lines down by type.
// With nothing selected the breakdown is empty.
func Summarize(selected []*model.CommitSummary) SelectionSummary {
	sum := SelectionSummary{
		Count:     len(selected),
		Label:     SelectionLabel(len(selected)),
		CommitIDs: make([]string, 0, len(selected)),
		Breakdown: []TypeShare{},
	}

	counts := make(map[string]int)
	for _, c := range selected {
		sum.CommitIDs = append(sum.CommitIDs, c.ID)
		for _, l := range c.Lines() {
			counts[l.Type]++
			sum.Lines++
		}
	}
	if sum.Lines == 0 {
		return sum
	}

	for typ, n := range counts {
		pct := float64(n) / float64(sum.Lines) * 100
		sum.Breakdown = append(sum.Breakdown, TypeShare{
			Type:    typ,
			Lines:   n,
			Percent: math.Round(pct*10) / 10,
			Label:   fmt.Sprintf("%d lines (%s)", n, formatPercent(pct)),
		})
	}
	sort.Slice(sum.Breakdown, func(i, j int) bool {
		return sum.Breakdown[i].Type < sum.Breakdown[j].Type
	})
	return sum
}

// formatPercent renders one decimal and drops a trailing ".0": 50 -> "50%", 33.33 -> "33.3%".
func formatPercent(pct float64) string {
	return strconv.FormatFloat(math.Round(pct*10)/10, 'f', -1, 64) + "%"
}

// Dot is one line in the file breakdown, colored by its type.
type Dot struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// FileGroup is one file of the unit visualization.
type FileGroup struct {
	Name  string `json:"name"`
	Lines int    `json:"lines"`
	Dots  []Dot  `json:"dots"`
}

// FileBreakdown groups the lines of the commits in view by file, largest file
// first; ties are ordered by name.
func FileBreakdown(in []*model.CommitSummary, palette *Palette) []FileGroup {
	index := make(map[string]int)
	groups := []FileGroup{}
	for _, c := range in {
		for _, l := range c.Lines() {
			i, ok := index[l.File]
			if !ok {
				i = len(groups)
				index[l.File] = i
				groups = append(groups, FileGroup{Name: l.File})
			}
			groups[i].Lines++
			groups[i].Dots = append(groups[i].Dots, Dot{Type: l.Type, Color: palette.Color(l.Type)})
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Lines != groups[j].Lines {
			return groups[i].Lines > groups[j].Lines
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}
