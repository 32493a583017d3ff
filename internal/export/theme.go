package export

import (
	"fmt"

	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Board colours shared by the SVG and PNG renderers.
const (
	colorBackground = "#F8FAFC"
	colorCard       = "#FFFFFF"
	colorBorder     = "#CBD5E1"
	colorTitleStrip = "#1E293B"
	colorTitleText  = "#F8FAFC"
	colorText       = "#0F172A"
	colorMuted      = "#64748B"
	colorDone       = "#DCFCE7"
	colorDoneText   = "#166534"
)

// dotPattern is the dash/gap length, in pixels, of dotted connectors.
var dotPattern = [2]float64{4, 4}

// checkbox returns the marker drawn before a sub-question.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func progressLine(p tracker.Progress) string {
	return fmt.Sprintf("%d / %d done (%.0f%%)", p.Done, p.Total, p.Percent())
}
