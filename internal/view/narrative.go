// internal/view/narrative.go
package view

import (
	"fmt"

	"github.com/dustin/go-humanize/english"

	"portfolio/internal/commits"
)

// Display layouts for dates and times on the page.
const (
	DateLayout     = "January 2, 2006"
	TimeLayout     = "3:04 PM"
	DateTimeLayout = DateLayout + " at " + TimeLayout
)

// Step is one narrative paragraph of the scrolly story, one per commit.
type Step struct {
	Index    int    `json:"index"`
	CommitID string `json:"commit_id"`
	URL      string `json:"url"`
	Lead     string `json:"lead"`
	LinkText string `json:"link_text"`
	Tail     string `json:"tail"`
	Active   bool   `json:"active"`
}

// Text joins the step's parts into plain prose.
func (s Step) Text() string {
	return s.Lead + s.LinkText + s.Tail
}

// Narrative writes one step per commit in chronological order.
func Narrative(set *commits.Set, active int) []Step {
	steps := make([]Step, 0, set.Len())
	for i, c := range set.All() {
		lead := "At an unknown time, I made "
		if c.Dated() {
			lead = fmt.Sprintf("On %s at %s, I made ",
				c.Datetime.Time.Format(DateLayout), c.Datetime.Time.Format(TimeLayout))
		}
		link := "another glorious commit"
		if i == 0 {
			link = "my first commit, and it was glorious"
		}
		steps = append(steps, Step{
			Index:    i,
			CommitID: c.ID,
			URL:      c.URL,
			Lead:     lead,
			LinkText: link,
			Tail: fmt.Sprintf(". I edited %s across %s.",
				english.Plural(c.TotalLines, "line", "lines"),
				english.Plural(c.Files(), "file", "files")),
			Active: i == active,
		})
	}
	return steps
}
