// internal/scrolly/driver.go
package scrolly

import (
	"strconv"
	"sync"

	"portfolio/internal/view"
)

// TriggerRatio is the viewport height fraction at which a step becomes active.
const TriggerRatio = 0.5

// DefaultStepHeight is the height of one narrative step in page pixels.
const DefaultStepHeight = 200

// StepBox is the vertical extent of one narrative step on the page.
type StepBox struct {
	Top, Height float64
}

// Driver turns scroll positions into step events. It only fires when the trigger
// line crosses into a different step.
type Driver struct {
	sync  *Synchronizer
	boxes []StepBox

	mu     sync.Mutex
	active int
}

// NewDriver binds step boxes, one per commit in chronological order, to the
// synchronizer.
func NewDriver(s *Synchronizer, boxes []StepBox) *Driver {
	return &Driver{sync: s, boxes: boxes, active: view.NoStep}
}

// UniformBoxes lays out n steps of equal height starting at the top of the page.
func UniformBoxes(n int, height float64) []StepBox {
	boxes := make([]StepBox, n)
	for i := range boxes {
		boxes[i] = StepBox{Top: float64(i) * height, Height: height}
	}
	return boxes
}

// ActiveAt returns the step crossing the trigger line for a scroll offset and
// viewport height, or view.NoStep when the line is above the first step.
func (d *Driver) ActiveAt(scrollY, viewport float64) int {
	line := scrollY + viewport*TriggerRatio
	active := view.NoStep
	for i, b := range d.boxes {
		if line < b.Top {
			break
		}
		active = i
	}
	return active
}

// OnScroll reports a scroll position. It returns the new view model when a
// different step became active and nil otherwise. Leaving the story above the
// first step forgets the active step, so re-entering it fires again.
func (d *Driver) OnScroll(scrollY, viewport float64) (*view.ViewModel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.ActiveAt(scrollY, viewport)
	if i == d.active {
		return nil, nil
	}
	d.active = i
	if i == view.NoStep {
		return nil, nil
	}
	return d.sync.OnStep(i)
}

func stepRef(i int) string {
	return "step " + strconv.Itoa(i)
}
