package render

import (
	"fmt"
	"html"
	"strconv"

	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/numfmt"
)

// NoInfo is the tooltip text for counties without an education record.
const NoInfo = "no info"

// Tooltip is the state of the single tooltip shared by every county. It is
// either hidden (opacity 0) or shown (opacity 1) with the content and
// position written by the last hover.
type Tooltip struct {
	Opacity   float64
	HTML      string
	Education float64
	Left      int
	Top       int

	// OffsetX and OffsetY place the tooltip relative to the pointer.
	OffsetX int
	OffsetY int
}

// NewTooltip returns a hidden tooltip.
func NewTooltip(offsetX, offsetY int) *Tooltip {
	return &Tooltip{OffsetX: offsetX, OffsetY: offsetY}
}

// Show reveals the tooltip near the pointer with the given content.
func (t *Tooltip) Show(content string, education float64, pageX, pageY int) {
	t.Opacity = 1
	t.HTML = content
	t.Education = education
	t.Left = pageX + t.OffsetX
	t.Top = pageY + t.OffsetY
}

// Hide hides the tooltip. Content and position are left as they were.
func (t *Tooltip) Hide() {
	t.Opacity = 0
}

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool {
	return t.Opacity > 0
}

// Style returns the inline CSS for the tooltip's current state.
func (t *Tooltip) Style() string {
	return fmt.Sprintf("opacity: %s; left: %dpx; top: %dpx", strconv.FormatFloat(t.Opacity, 'f', -1, 64), t.Left, t.Top)
}

// TooltipText returns the tooltip markup for a county: area name and state on
// the first line, the formatted percentage on the second. A nil record gives
// NoInfo.
func TooltipText(rec *model.EducationRecord, pct numfmt.Formatter) string {
	if rec == nil {
		return NoInfo
	}
	return html.EscapeString(rec.AreaName) + ", " + html.EscapeString(rec.State) +
		"<br>Bachelors or higher: " + pct.Format(rec.BachelorsOrHigher/100)
}
