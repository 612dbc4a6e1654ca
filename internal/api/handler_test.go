// internal/api/handler_test.go
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/commits"
	"portfolio/internal/loader"
	"portfolio/internal/model"
	"portfolio/internal/progress"
	"portfolio/internal/projects"
	"portfolio/internal/render"
	"portfolio/internal/scrolly"
	"portfolio/internal/view"
)

type stubProfile struct {
	stats *model.ProfileStats
	err   error
}

func (s stubProfile) Profile(ctx context.Context) (*model.ProfileStats, error) {
	return s.stats, s.err
}

func newTestRouter(t *testing.T, profile ProfileSource) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	start := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	var rows []model.LineChange
	for i, off := range []time.Duration{0, time.Hour, 3 * time.Hour} {
		rows = append(rows, model.LineChange{
			CommitID: []string{"aaa", "bbb", "ccc"}[i],
			Author:   "Gabriel",
			File:     "main.js",
			Type:     "js",
			Datetime: sql.NullTime{Time: start.Add(off), Valid: true},
		})
	}
	rows = append(rows, model.LineChange{CommitID: "zzz", Author: "Gabriel", File: "notes.md", Type: "md"})

	set, err := commits.Aggregate(rows, commits.Options{URLPrefix: "https://github.com/o/r/commit/"})
	require.NoError(t, err)

	d := view.NewDeriver(progress.NewTimeline(set), view.DefaultDimensions())
	page := render.NewMetaPage("Meta", d.Palette())

	sync := scrolly.New(d, logger, page)
	return NewRouter(Deps{
		Sync:    sync,
		Driver:  scrolly.NewDriver(sync, scrolly.UniformBoxes(set.Len(), scrolly.DefaultStepHeight)),
		Page:    page,
		Stats:   commits.ComputeStats(set),
		Preview: loader.Preview{Rows: len(rows), Columns: loader.Columns},
		Projects: projects.New([]model.Project{
			{Title: "Pie Lab", Year: "2024", Description: "arcs"},
			{Title: "Meta", Year: "2025", Description: "scrollytelling"},
			{Title: "Resume", Year: "2022", Description: "html"},
			{Title: "Weather", Year: "2024", Description: "rain"},
		}),
		Profile: profile,
	}, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeVM(t *testing.T, rec *httptest.ResponseRecorder) view.ViewModel {
	t.Helper()
	var vm view.ViewModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vm))
	return vm
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMeta_Progress(t *testing.T) {
	h := newTestRouter(t, nil)

	vm := decodeVM(t, do(t, h, http.MethodGet, "/v1/meta", ""))
	assert.Equal(t, 100.0, vm.Labels.Progress)
	assert.Len(t, vm.Scatter.Points, 3, "undated commit is not plotted")
	assert.Len(t, vm.Steps, 4)

	rec := do(t, h, http.MethodPut, "/v1/meta/progress", `{"progress": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vm = decodeVM(t, rec)
	assert.Equal(t, 1, vm.InView)
	assert.Equal(t, "February 1, 2025 at 9:00 AM", vm.Labels.CurrentTime)

	for _, body := range []string{`{}`, `{"progress": "half"}`, `not json`, `{"progress": 1, "extra": 2}`} {
		rec = do(t, h, http.MethodPut, "/v1/meta/progress", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMeta_Steps(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPut, "/v1/meta/steps/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	vm := decodeVM(t, rec)
	assert.Equal(t, 2, vm.InView)
	assert.Equal(t, 1, vm.State.ActiveStep)
	assert.InDelta(t, 100.0/3, vm.Labels.Progress, 1e-9)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/v1/meta/steps/9", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPut, "/v1/meta/steps/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/v1/meta/steps/x", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/v1/meta/steps/-1", "").Code)
}

func TestMeta_Scroll(t *testing.T) {
	h := newTestRouter(t, nil)

	// Trigger line at 200 + 200 = 400: the third step.
	rec := do(t, h, http.MethodPut, "/v1/meta/scroll", `{"scrollY": 200, "viewport": 400}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vm := decodeVM(t, rec)
	assert.Equal(t, 2, vm.State.ActiveStep)
	assert.Equal(t, 3, vm.InView)

	do(t, h, http.MethodPut, "/v1/meta/progress", `{"progress": 0}`)
	rec = do(t, h, http.MethodPut, "/v1/meta/scroll", `{"scrollY": 210, "viewport": 400}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decodeVM(t, rec).Labels.Progress, "same step does not override the slider")

	// The last step is the undated commit.
	rec = do(t, h, http.MethodPut, "/v1/meta/scroll", `{"scrollY": 500, "viewport": 400}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	for _, body := range []string{`{"viewport": 400}`, `{"scrollY": 0, "viewport": 0}`, `nope`} {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/v1/meta/scroll", body).Code, body)
	}
}

func TestMeta_SelectionAndHover(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPut, "/v1/meta/selection", `{"x0": 0, "y0": 0, "x1": 1000, "y1": 600}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vm := decodeVM(t, rec)
	assert.Equal(t, 3, vm.Selection.Count)
	assert.Equal(t, "3 commits selected", vm.Labels.SelectionCount)
	require.Len(t, vm.Selection.Breakdown, 1)
	assert.Equal(t, "3 lines (100%)", vm.Selection.Breakdown[0].Label)

	vm = decodeVM(t, do(t, h, http.MethodDelete, "/v1/meta/selection", ""))
	assert.Equal(t, "No commits selected", vm.Labels.SelectionCount)

	rec = do(t, h, http.MethodPut, "/v1/meta/hover/bbb", `{"clientX": 5, "clientY": 6}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vm = decodeVM(t, rec)
	assert.True(t, vm.Tooltip.Visible)
	assert.Equal(t, 15.0, vm.Tooltip.Left)
	assert.Equal(t, 16.0, vm.Tooltip.Top)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/v1/meta/hover/nope", `{"clientX": 1, "clientY": 1}`).Code)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPut, "/v1/meta/hover/zzz", `{"clientX": 1, "clientY": 1}`).Code,
		"undated commits have no point")

	vm = decodeVM(t, do(t, h, http.MethodDelete, "/v1/meta/hover", ""))
	assert.False(t, vm.Tooltip.Visible)
}

func TestMeta_StatsAndPreview(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/v1/meta/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Stats     commits.Stats  `json:"stats"`
		Formatted []commits.Stat `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats.Stats.Commits)
	assert.Equal(t, 4, stats.Stats.TotalLines)
	assert.NotEmpty(t, stats.Formatted)

	rec = do(t, h, http.MethodGet, "/v1/meta/preview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rows":4`)
}

func TestProjects(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/v1/projects?year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Title    string               `json:"title"`
		Projects []model.Project      `json:"projects"`
		Years    []projects.YearCount `json:"years"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Projects (4)", body.Title)
	assert.Len(t, body.Projects, 2)
	assert.Equal(t, []projects.YearCount{{Year: "2024", Count: 2}}, body.Years)

	rec = do(t, h, http.MethodGet, "/v1/projects?q=SCROLLY", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 1)
	assert.Equal(t, "Meta", body.Projects[0].Title)

	rec = do(t, h, http.MethodGet, "/v1/projects/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var latest []model.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Len(t, latest, 3)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/v1/projects/latest?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/v1/projects/latest?limit=abc", "").Code)
}

func TestProfile(t *testing.T) {
	t.Run("returns stats", func(t *testing.T) {
		h := newTestRouter(t, stubProfile{stats: &model.ProfileStats{Login: "MaayahGa", PublicRepos: 12}})
		rec := do(t, h, http.MethodGet, "/v1/profile", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"public_repos":12`)
	})

	t.Run("upstream failure", func(t *testing.T) {
		h := newTestRouter(t, stubProfile{err: errors.New("boom")})
		assert.Equal(t, http.StatusBadGateway, do(t, h, http.MethodGet, "/v1/profile", "").Code)
	})

	t.Run("not configured", func(t *testing.T) {
		h := newTestRouter(t, nil)
		assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/v1/profile", "").Code)
	})
}

func TestPages(t *testing.T) {
	h := newTestRouter(t, nil)

	do(t, h, http.MethodPut, "/v1/meta/progress", `{"progress": 0}`)
	rec := do(t, h, http.MethodGet, "/meta", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "February 1, 2025 at 9:00 AM")

	rec = do(t, h, http.MethodGet, "/projects?q=pie", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Projects (4)")
	assert.Contains(t, rec.Body.String(), "Pie Lab")
	assert.NotContains(t, rec.Body.String(), "Resume")
}
