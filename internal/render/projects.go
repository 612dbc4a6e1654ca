// internal/render/projects.go
package render

import (
	"html/template"
	"io"

	"portfolio/internal/model"
	"portfolio/internal/projects"
	"portfolio/internal/view"
)

type projectsData struct {
	Title    string
	Query    string
	Year     string
	Projects []model.Project
	Charts   []template.HTML
}

var projectsTmpl = template.Must(template.New("projects").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
</head>
<body>
<h1 class="projects-title">{{.Title}}</h1>
{{range .Charts}}{{.}}
{{end}}
<form method="get"><input type="search" name="q" value="{{.Query}}" placeholder="Search projects..."><input type="hidden" name="year" value="{{.Year}}"></form>
<div class="projects">
{{range .Projects}}<article>
<h2>{{.Title}}</h2>
{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
<div><p>{{.Description}}</p><p class="year">c. {{.Year}}</p></div>
</article>
{{end}}</div>
</body>
</html>
`))

// ProjectsPage writes the project list with the per-year pie of the visible
// projects. title already carries the count.
func ProjectsPage(w io.Writer, title, query, year string, items []model.Project) error {
	counts := projects.ByYear(items)
	slices := make([]Slice, len(counts))
	for i, c := range counts {
		slices[i] = Slice{Label: c.Year, Value: c.Count, Color: view.Tableau10[i%len(view.Tableau10)]}
	}

	charts, err := fragments(PieChart("Projects per year", slices))
	if err != nil {
		return err
	}
	return projectsTmpl.Execute(w, projectsData{
		Title:    title,
		Query:    query,
		Year:     year,
		Projects: items,
		Charts:   charts,
	})
}
