package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// ProgressBar displays a labelled horizontal progress bar with the
// done/total count.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Progress   tracker.Progress
	Width      int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, p tracker.Progress, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Progress: p,
		Width:    width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			labelStyle = labelStyle.Width(p.LabelWidth)
		}
		result += labelStyle.Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d %3.0f%%", p.Progress.Done, p.Progress.Total, p.Progress.Percent())
	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	result += layout.ProgressBar(p.Progress.Percent()/100, barWidth)
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
	return result
}
