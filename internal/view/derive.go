// internal/view/derive.go
package view

import (
	"portfolio/internal/model"
	"portfolio/internal/progress"
)

// NoStep marks that no narrative step is active.
const NoStep = -1

// State is the complete interactive state of the page. A ViewModel is a pure
// function of it.
type State struct {
	Progress   progress.State `json:"progress"`
	Selection  *Region        `json:"selection,omitempty"`
	Hover      *Hover         `json:"hover,omitempty"`
	ActiveStep int            `json:"active_step"`
}

// Labels are the text updates of the controls panel.
type Labels struct {
	Progress       float64 `json:"progress"`
	CurrentTime    string  `json:"current_time"`
	SelectionCount string  `json:"selection_count"`
}

// ViewModel is everything the three coupled views display for one State. All of
// it is derived from the same filtered commit list.
type ViewModel struct {
	State     State            `json:"state"`
	InView    int              `json:"in_view"`
	Labels    Labels           `json:"labels"`
	Scatter   ScatterView      `json:"scatter"`
	Files     []FileGroup      `json:"files"`
	Steps     []Step           `json:"steps"`
	Selection SelectionSummary `json:"selection"`
	Tooltip   Tooltip          `json:"tooltip"`
}

// Deriver computes view models for one loaded commit set.
type Deriver struct {
	timeline *progress.Timeline
	layout   *Layout
	palette  *Palette
}

// NewDeriver builds the layout from the full set and seeds the type palette with
// every type in it.
func NewDeriver(tl *progress.Timeline, dim Dimensions) *Deriver {
	set := tl.Set()
	var types []string
	seen := make(map[string]bool)
	for _, c := range set.All() {
		for _, l := range c.Lines() {
			if !seen[l.Type] {
				seen[l.Type] = true
				types = append(types, l.Type)
			}
		}
	}
	return &Deriver{
		timeline: tl,
		layout:   NewLayout(set, dim),
		palette:  NewPalette(types...),
	}
}

// Timeline returns the progress timeline the deriver was built on.
func (d *Deriver) Timeline() *progress.Timeline { return d.timeline }

// Layout returns the scatterplot scales.
func (d *Deriver) Layout() *Layout { return d.layout }

// Palette returns the session's type colors.
func (d *Deriver) Palette() *Palette { return d.palette }

// Initial is the state after load: all history visible, nothing selected.
func (d *Deriver) Initial() State {
	return State{Progress: d.timeline.Initial(), ActiveStep: NoStep}
}

// Derive computes the view model for st.
func (d *Deriver) Derive(st State) *ViewModel {
	set := d.timeline.Set()
	inView := d.timeline.Filter(st.Progress)

	hovered := ""
	if st.Hover != nil {
		hovered = st.Hover.CommitID
	}
	scatter := d.layout.Scatter(inView, st.Selection, hovered)

	var selected []*model.CommitSummary
	for _, id := range scatter.SelectedIDs() {
		if c, ok := set.Get(id); ok {
			selected = append(selected, c)
		}
	}
	summary := Summarize(selected)

	// A hovered commit filtered out of view keeps no tooltip.
	var tooltip Tooltip
	if st.Hover != nil && scatter.hovered() {
		if c, ok := set.Get(st.Hover.CommitID); ok {
			tooltip = NewTooltip(c, *st.Hover)
		}
	}

	return &ViewModel{
		State:  st,
		InView: len(inView),
		Labels: Labels{
			Progress:       st.Progress.Progress,
			CurrentTime:    CurrentTimeLabel(st.Progress),
			SelectionCount: summary.Label,
		},
		Scatter:   scatter,
		Files:     FileBreakdown(inView, d.palette),
		Steps:     Narrative(set, st.ActiveStep),
		Selection: summary,
		Tooltip:   tooltip,
	}
}

// CurrentTimeLabel renders the cutoff shown next to the slider.
func CurrentTimeLabel(st progress.State) string {
	if st.Unbounded {
		return "All time"
	}
	return st.TimeCutoff.Format(DateTimeLayout)
}
