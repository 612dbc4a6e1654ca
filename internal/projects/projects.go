// internal/projects/projects.go
package projects

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"portfolio/internal/model"
)

// Catalog is the portfolio project list in file order, newest first.
type Catalog struct {
	items []model.Project
}

// YearCount is one slice of the per-year pie.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// Load reads a JSON array of projects from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open projects file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a JSON array of projects.
func Decode(r io.Reader) (*Catalog, error) {
	var items []model.Project
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return &Catalog{items: items}, nil
}

// New wraps an in-memory list.
func New(items []model.Project) *Catalog {
	return &Catalog{items: items}
}

// All returns every project.
func (c *Catalog) All() []model.Project {
	return c.items
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Title appends the project count to a heading, "Projects (12)".
func (c *Catalog) Title(heading string) string {
	return fmt.Sprintf("%s (%d)", heading, len(c.items))
}

// Latest returns the first n projects.
func (c *Catalog) Latest(n int) []model.Project {
	if n < 0 {
		n = 0
	}
	return c.items[:min(n, len(c.items))]
}

// Search keeps projects where any field contains q, ignoring case. An empty
// query matches everything.
func (c *Catalog) Search(q string) []model.Project {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []model.Project{}
	for _, p := range c.items {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Project, q string) bool {
	for _, v := range []string{p.Title, p.Year, p.Image, p.Description} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// FilterYear keeps projects of one year. An empty year keeps everything.
func FilterYear(items []model.Project, year string) []model.Project {
	if year == "" {
		return items
	}
	out := []model.Project{}
	for _, p := range items {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out
}

// ByYear counts projects per year, sorted by year.
func ByYear(items []model.Project) []YearCount {
	counts := make(map[string]int)
	for _, p := range items {
		counts[p.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
