// internal/view/layout.go
package view

import (
	"fmt"
	"time"

	"portfolio/internal/commits"
	"portfolio/internal/model"
	"portfolio/internal/scale"
)

// Radius range in pixels for the point-size channel.
const (
	MinRadius = 2.0
	MaxRadius = 30.0
)

// Margin is the space around the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Dimensions describe the scatterplot canvas.
type Dimensions struct {
	Width, Height float64
	Margin        Margin
}

// DefaultDimensions matches the page's 1000x600 view box.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:  1000,
		Height: 600,
		Margin: Margin{Top: 10, Right: 10, Bottom: 30, Left: 50},
	}
}

// PlotArea is the region points can occupy, the extent of the selection gesture.
func (d Dimensions) PlotArea() Region {
	return Region{
		X0: d.Margin.Left,
		Y0: d.Margin.Top,
		X1: d.Width - d.Margin.Right,
		Y1: d.Height - d.Margin.Bottom,
	}
}

// Layout holds the scales of the scatterplot. Every domain comes from the full
// commit set, so filtering changes which points appear but never rescales them.
type Layout struct {
	Dim   Dimensions
	X     scale.Time
	Y     scale.Linear
	R     scale.Sqrt
	dated bool
}

// NewLayout builds the scales once from the full set.
func NewLayout(set *commits.Set, dim Dimensions) *Layout {
	area := dim.PlotArea()
	lo, hi, dated := set.TimeExtent()
	minLines, maxLines, _ := set.LinesExtent()

	return &Layout{
		Dim:   dim,
		X:     scale.NewTime(lo, hi, area.X0, area.X1),
		Y:     scale.NewLinear(0, 24, area.Y1, area.Y0),
		R:     scale.NewSqrt(float64(minLines), float64(maxLines), MinRadius, MaxRadius),
		dated: dated,
	}
}

// Position returns the plotted point of a commit. ok is false for undated commits,
// which are never plotted.
func (l *Layout) Position(c *model.CommitSummary) (x, y float64, ok bool) {
	if !c.Dated() || !c.HourOfDay.Valid || !l.dated {
		return 0, 0, false
	}
	if l.X.Degenerate() {
		x = (l.X.R0 + l.X.R1) / 2
	} else {
		x = l.X.Map(c.Datetime.Time)
	}
	return x, l.Y.Map(c.HourOfDay.Float64), true
}

// Radius returns the point radius for a commit.
func (l *Layout) Radius(c *model.CommitSummary) float64 {
	return l.R.Map(float64(c.TotalLines))
}

// Tick is one labelled axis position.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// YTicks labels the hour axis every two hours as HH:00.
func (l *Layout) YTicks() []Tick {
	ticks := make([]Tick, 0, 13)
	for h := 0; h <= 24; h += 2 {
		ticks = append(ticks, Tick{
			Value: float64(h),
			Pos:   l.Y.Map(float64(h)),
			Label: fmt.Sprintf("%02d:00", h%24),
		})
	}
	return ticks
}

// XDomain returns the time axis domain; zero times when nothing is dated.
func (l *Layout) XDomain() (time.Time, time.Time) {
	if !l.dated {
		return time.Time{}, time.Time{}
	}
	return l.X.Start, l.X.End
}
