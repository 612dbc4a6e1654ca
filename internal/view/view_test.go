// internal/view/view_test.go
package view

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/commits"
	"portfolio/internal/model"
	"portfolio/internal/progress"
)

var day0 = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func line(commit, author, file, typ string, at time.Time) model.LineChange {
	return model.LineChange{
		CommitID: commit,
		Author:   author,
		File:     file,
		Type:     typ,
		Datetime: sql.NullTime{Time: at, Valid: true},
	}
}

// fixture: a at 06:00 (4 lines), b at 14:00 (1), c at 19:30 (3), d at 23:00 (2).
func fixture(t *testing.T) *Deriver {
	t.Helper()
	a := day0.Add(6 * time.Hour)
	b := day0.Add(24*time.Hour + 14*time.Hour)
	c := day0.Add(48*time.Hour + 19*time.Hour + 30*time.Minute)
	d := day0.Add(72*time.Hour + 23*time.Hour)

	rows := []model.LineChange{
		line("a", "Gabriel", "index.html", "html", a),
		line("a", "Gabriel", "index.html", "html", a),
		line("a", "Gabriel", "style.css", "css", a),
		line("a", "Gabriel", "style.css", "css", a),
		line("b", "Gabriel", "main.js", "js", b),
		line("c", "Gabriel", "main.js", "js", c),
		line("c", "Gabriel", "main.js", "js", c),
		line("c", "Gabriel", "main.js", "js", c),
		line("d", "", "main.js", "js", d),
		line("d", "", "style.css", "css", d),
	}
	set, err := commits.Aggregate(rows, commits.Options{URLPrefix: "https://github.com/o/r/commit/"})
	require.NoError(t, err)
	return NewDeriver(progress.NewTimeline(set), DefaultDimensions())
}

func pointByID(t *testing.T, vm *ViewModel, id string) Point {
	t.Helper()
	for _, p := range vm.Scatter.Points {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("point %s not plotted", id)
	return Point{}
}

func TestScatter_ColorsAndOrder(t *testing.T) {
	d := fixture(t)
	vm := d.Derive(d.Initial())

	require.Len(t, vm.Scatter.Points, 4)
	assert.Equal(t, "orange", pointByID(t, vm, "a").Color)
	assert.Equal(t, "gold", pointByID(t, vm, "b").Color)
	assert.Equal(t, "orangered", pointByID(t, vm, "c").Color)
	assert.Equal(t, "steelblue", pointByID(t, vm, "d").Color)

	var order []string
	for _, p := range vm.Scatter.Points {
		order = append(order, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "d", "b"}, order)

	assert.InDelta(t, MaxRadius, pointByID(t, vm, "a").R, 1e-9)
	assert.InDelta(t, MinRadius, pointByID(t, vm, "b").R, 1e-9)
	assert.Equal(t, 50.0, pointByID(t, vm, "a").X)
	assert.Equal(t, 990.0, pointByID(t, vm, "d").X)
}

func TestScatter_ScalesIgnoreFilter(t *testing.T) {
	d := fixture(t)
	full := d.Derive(d.Initial())

	b, ok := d.Timeline().Set().Get("b")
	require.True(t, ok)
	st, _ := d.Timeline().SetTimeCutoff(b.Datetime.Time)
	narrow := d.Derive(State{Progress: st, ActiveStep: NoStep})

	require.Len(t, narrow.Scatter.Points, 2)
	assert.Equal(t, pointByID(t, full, "a"), pointByID(t, narrow, "a"))
	assert.Equal(t, full.Scatter.XStart, narrow.Scatter.XStart)
	assert.Equal(t, full.Scatter.XEnd, narrow.Scatter.XEnd)
}

func TestSelection(t *testing.T) {
	d := fixture(t)

	t.Run("whole plot area selects every point", func(t *testing.T) {
		st := d.Initial()
		area := DefaultDimensions().PlotArea()
		st.Selection = &area
		vm := d.Derive(st)

		assert.Equal(t, 4, vm.Selection.Count)
		assert.Equal(t, "4 commits selected", vm.Labels.SelectionCount)
		assert.Equal(t, []TypeShare{
			{Type: "css", Lines: 3, Percent: 30, Label: "3 lines (30%)"},
			{Type: "html", Lines: 2, Percent: 20, Label: "2 lines (20%)"},
			{Type: "js", Lines: 5, Percent: 50, Label: "5 lines (50%)"},
		}, vm.Selection.Breakdown)
	})

	t.Run("disjoint region selects nothing", func(t *testing.T) {
		st := d.Initial()
		st.Selection = &Region{X0: -100, Y0: -100, X1: -50, Y1: -50}
		vm := d.Derive(st)

		assert.Equal(t, 0, vm.Selection.Count)
		assert.Equal(t, "No commits selected", vm.Labels.SelectionCount)
		assert.Empty(t, vm.Selection.Breakdown)
		for _, p := range vm.Scatter.Points {
			assert.False(t, p.Selected)
		}
	})

	t.Run("corners in any order", func(t *testing.T) {
		a := pointByID(t, d.Derive(d.Initial()), "a")
		st := d.Initial()
		st.Selection = &Region{X0: a.X + 5, Y0: a.Y + 5, X1: a.X, Y1: a.Y}
		vm := d.Derive(st)
		assert.Equal(t, []string{"a"}, vm.Selection.CommitIDs)
	})

	t.Run("only points in view can be selected", func(t *testing.T) {
		st := d.Initial()
		st.Progress, _ = d.Timeline().SetProgress(0)
		area := DefaultDimensions().PlotArea()
		st.Selection = &area
		vm := d.Derive(st)
		assert.Equal(t, 1, vm.Selection.Count)
		assert.Equal(t, "1 commits selected", vm.Selection.Label)
	})
}

func TestSummarize_PercentagesSumToHundred(t *testing.T) {
	at := day0.Add(10 * time.Hour)
	set, err := commits.Aggregate([]model.LineChange{
		line("x", "g", "a.js", "js", at),
		line("x", "g", "a.css", "css", at),
		line("x", "g", "a.html", "html", at),
	}, commits.Options{})
	require.NoError(t, err)

	sum := Summarize(set.All())
	total := 0.0
	for _, s := range sum.Breakdown {
		assert.Equal(t, 33.3, s.Percent)
		assert.Equal(t, "1 lines (33.3%)", s.Label)
		total += s.Percent
	}
	assert.InDelta(t, 100, total, 0.2)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50%", formatPercent(50))
	assert.Equal(t, "33.3%", formatPercent(100.0/3))
	assert.Equal(t, "66.7%", formatPercent(200.0/3))
	assert.Equal(t, "100%", formatPercent(100))
}

func TestFileBreakdown(t *testing.T) {
	d := fixture(t)
	vm := d.Derive(d.Initial())

	require.Len(t, vm.Files, 3)
	assert.Equal(t, "main.js", vm.Files[0].Name)
	assert.Equal(t, 5, vm.Files[0].Lines)
	assert.Equal(t, "style.css", vm.Files[1].Name)
	assert.Equal(t, "index.html", vm.Files[2].Name)
	assert.Len(t, vm.Files[0].Dots, 5)

	colors := map[string]string{}
	for _, f := range vm.Files {
		for _, dot := range f.Dots {
			if c, ok := colors[dot.Type]; ok {
				assert.Equal(t, c, dot.Color)
			}
			colors[dot.Type] = dot.Color
		}
	}
	assert.Equal(t, map[string]string{"css": Tableau10[0], "html": Tableau10[1], "js": Tableau10[2]}, colors)

	st, _ := d.Timeline().SetProgress(0)
	narrow := d.Derive(State{Progress: st, ActiveStep: NoStep})
	require.Len(t, narrow.Files, 2)
	assert.Equal(t, "index.html", narrow.Files[0].Name)
	assert.Equal(t, Tableau10[1], narrow.Files[0].Dots[0].Color)
}

func TestPalette_NewTypesCycle(t *testing.T) {
	p := NewPalette("b", "a")
	assert.Equal(t, Tableau10[0], p.Color("a"))
	assert.Equal(t, Tableau10[1], p.Color("b"))
	assert.Equal(t, Tableau10[2], p.Color("zz"))
	assert.Equal(t, Tableau10[2], p.Color("zz"))
}

func TestDerive_Idempotent(t *testing.T) {
	d := fixture(t)
	st := d.Initial()
	area := Region{X0: 0, Y0: 0, X1: 500, Y1: 600}
	st.Selection = &area
	st.Hover = &Hover{CommitID: "c", ClientX: 100, ClientY: 200}

	assert.Equal(t, d.Derive(st), d.Derive(st))
}

func TestTooltipAndHover(t *testing.T) {
	d := fixture(t)
	st := d.Initial()
	st.Hover = &Hover{CommitID: "d", ClientX: 300, ClientY: 40}
	vm := d.Derive(st)

	assert.Equal(t, Tooltip{
		Visible:     true,
		CommitID:    "d",
		URL:         "https://github.com/o/r/commit/d",
		Author:      "unknown",
		Date:        "February 4, 2025",
		Time:        "11:00 PM",
		LinesEdited: 2,
		Left:        310,
		Top:         50,
	}, vm.Tooltip)

	assert.True(t, pointByID(t, vm, "d").Hovered)
	assert.Equal(t, EmphasisOpacity, pointByID(t, vm, "d").Opacity)
	assert.False(t, pointByID(t, vm, "d").Selected)
	assert.Equal(t, BaseOpacity, pointByID(t, vm, "a").Opacity)

	st.Hover = nil
	assert.False(t, d.Derive(st).Tooltip.Visible)
}

func TestTooltip_HiddenWhenFilteredOut(t *testing.T) {
	d := fixture(t)
	st := d.Initial()
	st.Progress, _ = d.Timeline().SetProgress(0)
	st.Hover = &Hover{CommitID: "d", ClientX: 300, ClientY: 40}

	vm := d.Derive(st)
	assert.False(t, vm.Tooltip.Visible)
	for _, p := range vm.Scatter.Points {
		assert.False(t, p.Hovered, p.ID)
	}
}

func TestNarrative(t *testing.T) {
	d := fixture(t)
	st := d.Initial()
	st.ActiveStep = 1
	vm := d.Derive(st)

	require.Len(t, vm.Steps, 4)
	assert.Equal(t, "On February 1, 2025 at 6:00 AM, I made my first commit, and it was glorious. I edited 4 lines across 2 files.", vm.Steps[0].Text())
	assert.Equal(t, "On February 2, 2025 at 2:00 PM, I made another glorious commit. I edited 1 line across 1 file.", vm.Steps[1].Text())
	assert.True(t, vm.Steps[1].Active)
	assert.False(t, vm.Steps[0].Active)
	assert.Equal(t, "https://github.com/o/r/commit/b", vm.Steps[1].URL)
}

func TestDerive_EmptySet(t *testing.T) {
	set, err := commits.Aggregate(nil, commits.Options{})
	require.NoError(t, err)
	d := NewDeriver(progress.NewTimeline(set), DefaultDimensions())

	st := d.Initial()
	area := DefaultDimensions().PlotArea()
	st.Selection = &area
	vm := d.Derive(st)

	assert.Empty(t, vm.Scatter.Points)
	assert.Empty(t, vm.Files)
	assert.Empty(t, vm.Steps)
	assert.Equal(t, "No commits selected", vm.Labels.SelectionCount)
	assert.Equal(t, "All time", vm.Labels.CurrentTime)
	assert.Len(t, vm.Scatter.YTicks, 13)
}

func TestRegion(t *testing.T) {
	r := Region{X0: 10, Y0: 20, X1: 0, Y1: 0}
	assert.Equal(t, Region{X0: 0, Y0: 0, X1: 10, Y1: 20}, r.Normalize())
	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(0, 0))
	assert.False(t, r.Contains(10.01, 5))
}
