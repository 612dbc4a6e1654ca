// internal/progress/progress.go
package progress

import (
	"time"

	"portfolio/internal/commits"
	"portfolio/internal/model"
	"portfolio/internal/scale"
)

// Bounds of the progress scalar.
const (
	Min = 0.0
	Max = 100.0
)

// State is the single source of truth for how much history is visible.
// Progress and TimeCutoff are always mutually consistent; a State is a value and
// is replaced, never mutated, on every change.
type State struct {
	Progress   float64   `json:"progress"`
	TimeCutoff time.Time `json:"time_cutoff"`
	// Unbounded is set when no commit carries a timestamp; every commit is in view.
	Unbounded bool `json:"unbounded"`
}

// Timeline binds the commit set to the progress scale. It is built once after
// load and is immutable afterwards.
type Timeline struct {
	set   *commits.Set
	scale scale.Time
	dated bool
}

// NewTimeline builds the linear progress scale over the set's time extent.
func NewTimeline(set *commits.Set) *Timeline {
	lo, hi, ok := set.TimeExtent()
	return &Timeline{
		set:   set,
		scale: scale.NewTime(lo, hi, Min, Max),
		dated: ok,
	}
}

// Set returns the underlying commit set.
func (tl *Timeline) Set() *commits.Set { return tl.set }

// Scale returns the progress scale.
func (tl *Timeline) Scale() scale.Time { return tl.scale }

// Initial is the fully advanced state showing all history.
func (tl *Timeline) Initial() State {
	s, _ := tl.SetProgress(Max)
	return s
}

// SetProgress clamps p to [0,100] and derives the matching cutoff.
func (tl *Timeline) SetProgress(p float64) (State, []*model.CommitSummary) {
	if !tl.dated {
		return tl.unbounded(scale.Clamp(p, Min, Max))
	}
	p = scale.Clamp(p, Min, Max)
	st := State{Progress: p, TimeCutoff: tl.scale.Invert(p)}
	return st, tl.Filter(st)
}

// SetTimeCutoff sets the cutoff directly and derives progress from it, clamped
// for display. The cutoff itself is kept exactly as given.
func (tl *Timeline) SetTimeCutoff(t time.Time) (State, []*model.CommitSummary) {
	if !tl.dated {
		return tl.unbounded(Max)
	}
	st := State{Progress: scale.Clamp(tl.scale.Map(t), Min, Max), TimeCutoff: t}
	return st, tl.Filter(st)
}

func (tl *Timeline) unbounded(p float64) (State, []*model.CommitSummary) {
	st := State{Progress: p, Unbounded: true}
	return st, tl.Filter(st)
}

// Filter returns the commits in view for a state: those at or before the cutoff.
func (tl *Timeline) Filter(st State) []*model.CommitSummary {
	if st.Unbounded {
		out := make([]*model.CommitSummary, tl.set.Len())
		copy(out, tl.set.All())
		return out
	}
	return tl.set.Until(st.TimeCutoff)
}
