// internal/api/handler.go
package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"portfolio/internal/commits"
	"portfolio/internal/loader"
	"portfolio/internal/model"
	"portfolio/internal/projects"
	"portfolio/internal/render"
	"portfolio/internal/scrolly"
	"portfolio/internal/view"
)

// ProfileSource provides the GitHub profile counters.
type ProfileSource interface {
	Profile(ctx context.Context) (*model.ProfileStats, error)
}

// Deps are the loaded components the API serves.
type Deps struct {
	Sync     *scrolly.Synchronizer
	Driver   *scrolly.Driver
	Page     *render.MetaPage
	Stats    commits.Stats
	Preview  loader.Preview
	Projects *projects.Catalog
	Profile  ProfileSource
}

// Handler is the container for API dependencies.
type Handler struct {
	Deps
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	h := &Handler{
		Deps:   deps,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/meta", func(r chi.Router) {
			r.Get("/", h.getMeta)
			r.Get("/stats", h.getStats)
			r.Get("/preview", h.getPreview)
			r.Put("/progress", h.putProgress)
			r.Put("/steps/{index}", h.putStep)
			r.Put("/scroll", h.putScroll)
			r.Put("/selection", h.putSelection)
			r.Delete("/selection", h.deleteSelection)
			r.Put("/hover/{commitID}", h.putHover)
			r.Delete("/hover", h.deleteHover)
		})
		r.Get("/projects", h.getProjects)
		r.Get("/projects/latest", h.getLatestProjects)
		r.Get("/profile", h.getProfile)
	})

	// Pages
	r.Get("/meta", h.metaPage)
	r.Get("/projects", h.projectsPage)

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getMeta returns the current view model.
// GET /v1/meta
func (h *Handler) getMeta(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Sync.Current())
}

// getStats returns the dataset summary, raw and formatted.
// GET /v1/meta/stats
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"stats":     h.Stats,
		"formatted": h.Stats.Formatted(),
	})
}

// getPreview returns the row count and columns of the loaded dataset.
// GET /v1/meta/preview
func (h *Handler) getPreview(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"rows":    h.Preview.Rows,
		"columns": h.Preview.Columns,
		"text":    h.Preview.String(),
	})
}

type progressRequest struct {
	Progress *float64 `json:"progress"`
}

// putProgress handles the slider.
// PUT /v1/meta/progress
func (h *Handler) putProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil || req.Progress == nil {
		respondWithError(w, http.StatusBadRequest, "Invalid body. Expected {\"progress\": number}.")
		return
	}
	respondWithJSON(w, http.StatusOK, h.Sync.OnSlider(*req.Progress))
}

// putStep handles a narrative step becoming active.
// PUT /v1/meta/steps/{index}
func (h *Handler) putStep(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'index' parameter. Must be a non-negative integer.")
		return
	}
	vm, err := h.Sync.OnStep(index)
	if err != nil {
		h.respondWithEventError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vm)
}

type scrollRequest struct {
	ScrollY  *float64 `json:"scrollY"`
	Viewport float64  `json:"viewport"`
}

// putScroll reports the story's scroll position; the step under the trigger line
// becomes active when it changed.
// PUT /v1/meta/scroll
func (h *Handler) putScroll(w http.ResponseWriter, r *http.Request) {
	var req scrollRequest
	if err := decodeJSON(r, &req); err != nil || req.ScrollY == nil || req.Viewport <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid body. Expected {\"scrollY\": number, \"viewport\": positive number}.")
		return
	}
	vm, err := h.Driver.OnScroll(*req.ScrollY, req.Viewport)
	if err != nil {
		h.respondWithEventError(w, err)
		return
	}
	if vm == nil {
		vm = h.Sync.Current()
	}
	respondWithJSON(w, http.StatusOK, vm)
}

// putSelection handles the brush rectangle.
// PUT /v1/meta/selection
func (h *Handler) putSelection(w http.ResponseWriter, r *http.Request) {
	var region view.Region
	if err := decodeJSON(r, &region); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid body. Expected {\"x0\",\"y0\",\"x1\",\"y1\"}.")
		return
	}
	respondWithJSON(w, http.StatusOK, h.Sync.OnSelect(region))
}

// deleteSelection clears the brush.
// DELETE /v1/meta/selection
func (h *Handler) deleteSelection(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Sync.ClearSelection())
}

type hoverRequest struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
}

// putHover handles the pointer entering a point.
// PUT /v1/meta/hover/{commitID}
func (h *Handler) putHover(w http.ResponseWriter, r *http.Request) {
	var req hoverRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid body. Expected {\"clientX\",\"clientY\"}.")
		return
	}
	vm, err := h.Sync.OnHover(chi.URLParam(r, "commitID"), req.ClientX, req.ClientY)
	if err != nil {
		h.respondWithEventError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vm)
}

// deleteHover handles the pointer leaving a point.
// DELETE /v1/meta/hover
func (h *Handler) deleteHover(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Sync.OnLeave())
}

// filteredProjects applies the q and year query parameters.
func (h *Handler) filteredProjects(r *http.Request) (string, string, []model.Project) {
	q := r.URL.Query().Get("q")
	year := r.URL.Query().Get("year")
	return q, year, projects.FilterYear(h.Projects.Search(q), year)
}

// getProjects lists projects with their per-year counts.
// GET /v1/projects?q=&year=
func (h *Handler) getProjects(w http.ResponseWriter, r *http.Request) {
	_, _, items := h.filteredProjects(r)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"title":    h.Projects.Title("Projects"),
		"projects": items,
		"years":    projects.ByYear(items),
	})
}

// getLatestProjects returns the newest projects.
// GET /v1/projects/latest?limit=N
func (h *Handler) getLatestProjects(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "3" // Default limit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 100.")
		return
	}
	respondWithJSON(w, http.StatusOK, h.Projects.Latest(limit))
}

// getProfile returns the GitHub profile counters.
// GET /v1/profile
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	if h.Profile == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Profile is not configured")
		return
	}
	stats, err := h.Profile.Profile(r.Context())
	if err != nil {
		h.logger.Error("Failed to get profile", "error", err)
		respondWithError(w, http.StatusBadGateway, "Failed to fetch profile from GitHub")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// metaPage renders the scrollytelling page.
// GET /meta
func (h *Handler) metaPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Page.Render(&buf); err != nil {
		h.logger.Error("Failed to render meta page", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// projectsPage renders the project list.
// GET /projects?q=&year=
func (h *Handler) projectsPage(w http.ResponseWriter, r *http.Request) {
	q, year, items := h.filteredProjects(r)

	var buf bytes.Buffer
	if err := render.ProjectsPage(&buf, h.Projects.Title("Projects"), q, year, items); err != nil {
		h.logger.Error("Failed to render projects page", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
