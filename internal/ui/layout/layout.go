// Package layout draws the frame around the active screen: a header with
// the title, status and overall progress, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/tracker"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 16

	// Below this width the header progress bar shrinks.
	CompactWidth = 100
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// Frame is everything drawn around the active screen.
type Frame struct {
	Title    string
	Progress tracker.Progress
	// Status holds short flags shown beside the title, e.g. "linking".
	Status []string
	Hints  []KeyHint
}

// Render lays out header, body and footer in width x height. body is
// called with the space left between header and footer.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return TooSmall(width, height)
	}
	header := f.header(width)
	footer := f.footer(width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return header + "\n" + content + "\n" + footer
}

// TooSmall is shown instead of the frame on tiny terminals.
func TooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small\n\nneed %d x %d, have %d x %d",
			MinWidth, MinHeight, width, height))
}

func (f Frame) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" PYQ Tracker") +
		"  " + lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	for _, s := range f.Status {
		left += "  " + theme.Badge.Render(s)
	}

	barWidth := 16
	if width < CompactWidth {
		barWidth = 8
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("%d/%d ", f.Progress.Done, f.Progress.Total)) +
		ProgressBar(f.Progress.Percent()/100, barWidth) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3.0f%% ", f.Progress.Percent()))

	inner := width - 2
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return box(width).Render(left + strings.Repeat(" ", gap) + right)
}

func (f Frame) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return box(width).Render(" " + strings.Join(parts, "  "))
}

func box(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.Surface).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// ProgressBar renders a bar of width cells filled to fraction (0-1).
func ProgressBar(fraction float64, width int) string {
	filled := max(0, min(int(float64(width)*fraction+0.5), width))
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
}
