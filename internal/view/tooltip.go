// internal/view/tooltip.go
package view

import "portfolio/internal/model"

// TooltipOffset is the distance of the tooltip from the pointer in both axes.
const TooltipOffset = 10.0

const missing = "unknown"

// Hover is the pointer position over a commit.
type Hover struct {
	CommitID string  `json:"commit_id"`
	ClientX  float64 `json:"client_x"`
	ClientY  float64 `json:"client_y"`
}

// Tooltip is the detail card of the hovered commit.
type Tooltip struct {
	Visible     bool    `json:"visible"`
	CommitID    string  `json:"commit_id,omitempty"`
	URL         string  `json:"url,omitempty"`
	Author      string  `json:"author,omitempty"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`
	LinesEdited int     `json:"lines_edited"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
}

// NewTooltip fills the card for c placed next to the pointer. A nil commit gives
// a hidden tooltip.
func NewTooltip(c *model.CommitSummary, h Hover) Tooltip {
	if c == nil {
		return Tooltip{}
	}
	tt := Tooltip{
		Visible:     true,
		CommitID:    c.ID,
		URL:         c.URL,
		Author:      c.Author,
		Date:        missing,
		Time:        missing,
		LinesEdited: c.TotalLines,
		Left:        h.ClientX + TooltipOffset,
		Top:         h.ClientY + TooltipOffset,
	}
	if tt.Author == "" {
		tt.Author = missing
	}
	if c.Dated() {
		tt.Date = c.Datetime.Time.Format(DateLayout)
		tt.Time = c.Datetime.Time.Format(TimeLayout)
	}
	return tt
}
