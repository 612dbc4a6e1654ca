// internal/view/scatter.go
package view

import (
	"sort"
	"time"

	"portfolio/internal/commits"
	"portfolio/internal/model"
)

// Point opacity: hovered points are drawn fully opaque.
const (
	BaseOpacity     = 0.7
	EmphasisOpacity = 1.0
)

// PeriodColors is the fixed fill per time-of-day bucket.
var PeriodColors = map[commits.Period]string{
	commits.Morning:   "orange",
	commits.Afternoon: "gold",
	commits.Evening:   "orangered",
	commits.Night:     "steelblue",
}

// Region is an axis-aligned rectangle in plot coordinates.
type Region struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Normalize orders the corners so X0 <= X1 and Y0 <= Y1.
func (r Region) Normalize() Region {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Contains reports whether the point lies inside the region, bounds included.
func (r Region) Contains(x, y float64) bool {
	n := r.Normalize()
	return x >= n.X0 && x <= n.X1 && y >= n.Y0 && y <= n.Y1
}

// Point is one plotted commit.
type Point struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	Datetime   time.Time      `json:"datetime"`
	HourOfDay  float64        `json:"hour_of_day"`
	TotalLines int            `json:"total_lines"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	R          float64        `json:"r"`
	Period     commits.Period `json:"period"`
	Color      string         `json:"color"`
	Opacity    float64        `json:"opacity"`
	Selected   bool           `json:"selected"`
	Hovered    bool           `json:"hovered"`
}

// ScatterView is everything the scatterplot renderer draws.
type ScatterView struct {
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	PlotArea  Region    `json:"plot_area"`
	XStart    time.Time `json:"x_start"`
	XEnd      time.Time `json:"x_end"`
	YTicks    []Tick    `json:"y_ticks"`
	Points    []Point   `json:"points"`
	Selection *Region   `json:"selection,omitempty"`
}

// Scatter lays out the commits in view. Points are ordered largest first so that
// small points are drawn on top; equal sizes keep chronological order.
func (l *Layout) Scatter(in []*model.CommitSummary, sel *Region, hovered string) ScatterView {
	points := make([]Point, 0, len(in))
	for _, c := range in {
		x, y, ok := l.Position(c)
		if !ok {
			continue
		}
		period := commits.PeriodOf(c.HourOfDay.Float64)
		p := Point{
			ID:         c.ID,
			URL:        c.URL,
			Datetime:   c.Datetime.Time,
			HourOfDay:  c.HourOfDay.Float64,
			TotalLines: c.TotalLines,
			X:          x,
			Y:          y,
			R:          l.Radius(c),
			Period:     period,
			Color:      PeriodColors[period],
			Opacity:    BaseOpacity,
			Selected:   sel != nil && sel.Contains(x, y),
			Hovered:    c.ID == hovered,
		}
		if p.Hovered {
			p.Opacity = EmphasisOpacity
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].TotalLines > points[j].TotalLines
	})

	xs, xe := l.XDomain()
	return ScatterView{
		Width:     l.Dim.Width,
		Height:    l.Dim.Height,
		PlotArea:  l.Dim.PlotArea(),
		XStart:    xs,
		XEnd:      xe,
		YTicks:    l.YTicks(),
		Points:    points,
		Selection: sel,
	}
}

// SelectedIDs returns the ids of selected points in draw order.
func (v ScatterView) SelectedIDs() []string {
	var ids []string
	for _, p := range v.Points {
		if p.Selected {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (v ScatterView) hovered() bool {
	for _, p := range v.Points {
		if p.Hovered {
			return true
		}
	}
	return false
}
