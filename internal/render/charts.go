// internal/render/charts.go
package render

import (
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"portfolio/internal/commits"
	"portfolio/internal/view"
)

const (
	chartWidth     = "1000px"
	scatterHeight  = "600px"
	filesHeight    = "420px"
	pieHeight      = "400px"
	pieRadius      = "60%"
	selectedColor  = "#ff6b6b"
	selectedSeries = "Selected"
	fileStack      = "lines"
	xAxisRotate    = 30
)

// periodOrder fixes the legend order of the scatter series.
var periodOrder = []commits.Period{commits.Morning, commits.Afternoon, commits.Evening, commits.Night}

// Slice is one labelled pie value.
type Slice struct {
	Label string
	Value int
	Color string
}

// ScatterChart draws the commit scatterplot: one series per time-of-day bucket and
// one for the current selection. Point order inside a series keeps the view's
// draw order.
func ScatterChart(v view.ScatterView) *charts.Scatter {
	xAxis := opts.XAxis{Name: "Date", Type: "time"}
	if !v.XStart.IsZero() {
		// Full-set domain; filtering only changes which points are present.
		xAxis.Min = v.XStart.UnixMilli()
		xAxis.Max = v.XEnd.UnixMilli()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: scatterHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Commits by time of day"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Time of day",
			Type: "value",
			Min:  0,
			Max:  24,
			AxisLabel: &opts.AxisLabel{
				Formatter: "{value}:00",
			},
		}),
	)

	byPeriod := make(map[commits.Period][]opts.ScatterData)
	var selected []opts.ScatterData
	for _, p := range v.Points {
		point := opts.ScatterData{
			Name:       p.ID,
			Value:      []any{p.Datetime.UnixMilli(), p.HourOfDay, p.TotalLines},
			SymbolSize: int(2 * p.R),
		}
		if p.Selected {
			selected = append(selected, point)
			continue
		}
		byPeriod[p.Period] = append(byPeriod[p.Period], point)
	}

	for _, period := range periodOrder {
		data := byPeriod[period]
		if len(data) == 0 {
			continue
		}
		scatter.AddSeries(string(period), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: view.PeriodColors[period], Opacity: opts.Float(view.BaseOpacity)}),
		)
	}
	if len(selected) > 0 {
		scatter.AddSeries(selectedSeries, selected,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: selectedColor}),
		)
	}
	return scatter
}

// FilesChart draws the file breakdown as bars stacked by technology type, largest
// file first.
func FilesChart(files []view.FileGroup) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: filesHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Lines by file"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines"}),
	)

	names := make([]string, len(files))
	counts := make(map[string][]int)
	colors := make(map[string]string)
	for i, f := range files {
		names[i] = f.Name
		for _, d := range f.Dots {
			if _, ok := counts[d.Type]; !ok {
				counts[d.Type] = make([]int, len(files))
				colors[d.Type] = d.Color
			}
			counts[d.Type][i]++
		}
	}
	bar.SetXAxis(names)

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		data := make([]opts.BarData, len(files))
		for i, n := range counts[t] {
			data[i] = opts.BarData{Value: n}
		}
		bar.AddSeries(t, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: fileStack}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[t]}),
		)
	}
	return bar
}

// PieChart draws labelled slices.
func PieChart(title string, slices []Slice) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: pieHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Label, Value: s.Value}
		if s.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: s.Color}
		}
	}

	pie.AddSeries(title, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
		)
	return pie
}

// BreakdownSlices turns the language breakdown into pie slices colored like the
// file dots.
func BreakdownSlices(shares []view.TypeShare, palette *view.Palette) []Slice {
	out := make([]Slice, len(shares))
	for i, s := range shares {
		out[i] = Slice{Label: s.Type, Value: s.Lines, Color: palette.Color(s.Type)}
	}
	return out
}
