// internal/render/page.go
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"portfolio/internal/view"
)

// Chart is anything go-echarts can render.
type Chart interface {
	Render(w io.Writer) error
}

// Snapshot is the last state pushed to a MetaPage.
type Snapshot struct {
	Scatter   view.ScatterView
	Files     []view.FileGroup
	Steps     []view.Step
	Tooltip   view.Tooltip
	Labels    view.Labels
	Selection view.SelectionSummary
}

// MetaPage keeps the latest redraw calls of the synchronizer and renders them as
// one HTML page.
type MetaPage struct {
	mu      sync.RWMutex
	title   string
	palette *view.Palette
	snap    Snapshot
}

// NewMetaPage creates an empty page. The palette colors the language pie.
func NewMetaPage(title string, palette *view.Palette) *MetaPage {
	return &MetaPage{title: title, palette: palette}
}

// DrawScatter implements scrolly.Renderer.
func (p *MetaPage) DrawScatter(v view.ScatterView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Scatter = v
}

// DrawFiles implements scrolly.Renderer.
func (p *MetaPage) DrawFiles(f []view.FileGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Files = f
}

// DrawNarrative implements scrolly.Renderer.
func (p *MetaPage) DrawNarrative(s []view.Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Steps = s
}

// ShowTooltip implements scrolly.Renderer.
func (p *MetaPage) ShowTooltip(t view.Tooltip) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Tooltip = t
}

// SetLabels implements scrolly.Renderer; the selection feeds the language pie.
func (p *MetaPage) SetLabels(l view.Labels, s view.SelectionSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Labels = l
	p.snap.Selection = s
}

// Snapshot returns a copy of the current state.
func (p *MetaPage) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

type metaData struct {
	Title     string
	Labels    view.Labels
	Selection view.SelectionSummary
	Steps     []view.Step
	Charts    []template.HTML
}

var metaTmpl = template.Must(template.New("meta").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="controls">
<label>Show commits until: <input type="range" min="0" max="100" value="{{printf "%.0f" .Labels.Progress}}" disabled></label>
<time>{{.Labels.CurrentTime}}</time>
</div>
<p id="selection-count">{{.Selection.Label}}</p>
{{if .Selection.Breakdown}}<dl id="language-breakdown">
{{range .Selection.Breakdown}}<dt>{{.Type}}</dt><dd>{{.Label}}</dd>
{{end}}</dl>{{end}}
{{range .Charts}}{{.}}
{{end}}
<div id="scrolly">
{{range .Steps}}<div class="step{{if .Active}} active{{end}}">{{.Lead}}<a href="{{.URL}}" target="_blank">{{.LinkText}}</a>{{.Tail}}</div>
{{end}}</div>
</body>
</html>
`))

// Render writes the page.
func (p *MetaPage) Render(w io.Writer) error {
	snap := p.Snapshot()

	chartList := []Chart{ScatterChart(snap.Scatter), FilesChart(snap.Files)}
	if len(snap.Selection.Breakdown) > 0 {
		chartList = append(chartList, PieChart("Selected lines by language", BreakdownSlices(snap.Selection.Breakdown, p.palette)))
	}
	fragments, err := fragments(chartList...)
	if err != nil {
		return err
	}

	return metaTmpl.Execute(w, metaData{
		Title:     p.title,
		Labels:    snap.Labels,
		Selection: snap.Selection,
		Steps:     snap.Steps,
		Charts:    fragments,
	})
}

func fragments(list ...Chart) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(list))
	for _, c := range list {
		var buf bytes.Buffer
		if err := c.Render(&buf); err != nil {
			return nil, fmt.Errorf("rendering chart: %w", err)
		}
		out = append(out, template.HTML(chartFragment(buf.String())))
	}
	return out, nil
}

// chartFragment cuts the chart container and script out of a full go-echarts page.
func chartFragment(html string) string {
	start := strings.Index(html, `<div class="container">`)
	end := strings.Index(html, `</body>`)
	if start == -1 || end == -1 || end < start {
		return html
	}
	return html[start:end]
}
