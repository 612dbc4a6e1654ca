// internal/scrolly/synchronizer.go
package scrolly

import (
	"log/slog"
	"sync"

	custom_errors "portfolio/internal/errors"
	"portfolio/internal/view"
)

// Renderer receives the redraw calls of the three coupled views. Every call of one
// update comes from the same fully derived ViewModel.
type Renderer interface {
	DrawScatter(view.ScatterView)
	DrawFiles([]view.FileGroup)
	DrawNarrative([]view.Step)
	ShowTooltip(view.Tooltip)
	SetLabels(view.Labels, view.SelectionSummary)
}

// Synchronizer owns the page state. The slider, the scroll driver and the pointer
// gestures all write through it; updates are serialized and the last writer wins.
type Synchronizer struct {
	mu        sync.Mutex
	deriver   *view.Deriver
	state     view.State
	current   *view.ViewModel
	renderers []Renderer
	logger    *slog.Logger
}

// New creates a synchronizer and renders the initial state.
func New(deriver *view.Deriver, logger *slog.Logger, renderers ...Renderer) *Synchronizer {
	s := &Synchronizer{
		deriver:   deriver,
		renderers: renderers,
		logger:    logger,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(deriver.Initial())
	return s
}

// Current returns the last rendered view model.
func (s *Synchronizer) Current() *view.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// State returns the current page state.
func (s *Synchronizer) State() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnSlider handles a slider input event.
func (s *Synchronizer) OnSlider(p float64) *view.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Progress, _ = s.deriver.Timeline().SetProgress(p)
	st.ActiveStep = view.NoStep
	s.logger.Debug("Slider moved", "progress", st.Progress.Progress)
	return s.apply(st)
}

// OnStep handles a narrative step becoming active: the cutoff jumps to that
// commit's timestamp and the slider follows.
func (s *Synchronizer) OnStep(index int) (*view.ViewModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.deriver.Timeline().Set().At(index)
	if !ok {
		return nil, &custom_errors.ErrUnknownCommit{Ref: stepRef(index)}
	}
	if !c.Dated() {
		return nil, &custom_errors.ErrUndatedCommit{CommitID: c.ID}
	}

	st := s.state
	st.Progress, _ = s.deriver.Timeline().SetTimeCutoff(c.Datetime.Time)
	st.ActiveStep = index
	s.logger.Debug("Step entered", "step", index, "commit", c.ID, "progress", st.Progress.Progress)
	return s.apply(st), nil
}

// OnStepCommit is OnStep addressed by commit id.
func (s *Synchronizer) OnStepCommit(id string) (*view.ViewModel, error) {
	i, ok := s.deriver.Timeline().Set().Index(id)
	if !ok {
		return nil, &custom_errors.ErrUnknownCommit{Ref: id}
	}
	return s.OnStep(i)
}

// OnSelect handles any change of the brush rectangle.
func (s *Synchronizer) OnSelect(r view.Region) *view.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	n := r.Normalize()
	st.Selection = &n
	return s.apply(st)
}

// ClearSelection removes the brush.
func (s *Synchronizer) ClearSelection() *view.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Selection = nil
	return s.apply(st)
}

// OnHover handles the pointer entering a point.
func (s *Synchronizer) OnHover(id string, clientX, clientY float64) (*view.ViewModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deriver.Timeline().Set().Get(id); !ok {
		return nil, &custom_errors.ErrUnknownCommit{Ref: id}
	}
	if !plotted(s.current.Scatter, id) {
		return nil, &custom_errors.ErrCommitNotInView{CommitID: id}
	}
	st := s.state
	st.Hover = &view.Hover{CommitID: id, ClientX: clientX, ClientY: clientY}
	return s.apply(st), nil
}

func plotted(v view.ScatterView, id string) bool {
	for _, p := range v.Points {
		if p.ID == id {
			return true
		}
	}
	return false
}

// OnLeave handles the pointer leaving a point.
func (s *Synchronizer) OnLeave() *view.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Hover = nil
	return s.apply(st)
}

// apply derives the complete view model first and only then pushes it to the
// renderers. Callers hold mu.
func (s *Synchronizer) apply(st view.State) *view.ViewModel {
	vm := s.deriver.Derive(st)
	s.state = st
	s.current = vm

	for _, r := range s.renderers {
		r.DrawScatter(vm.Scatter)
		r.DrawFiles(vm.Files)
		r.DrawNarrative(vm.Steps)
		r.ShowTooltip(vm.Tooltip)
		r.SetLabels(vm.Labels, vm.Selection)
	}
	return vm
}
