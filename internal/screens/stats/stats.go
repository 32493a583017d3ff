// Package stats shows overall and per-semester progress and link figures.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/router"
	"github.com/abhisek/pyqtrack/internal/screen"
	"github.com/abhisek/pyqtrack/internal/session"
	"github.com/abhisek/pyqtrack/internal/state"
	"github.com/abhisek/pyqtrack/internal/ui/components"
	"github.com/abhisek/pyqtrack/internal/ui/layout"
	"github.com/abhisek/pyqtrack/internal/ui/theme"
)

// Source provides the tracker to summarise.
type Source interface {
	State() state.State
}

// StatsScreen displays the tracker summary.
type StatsScreen struct {
	src Source
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(src Source) *StatsScreen {
	return &StatsScreen{src: src}
}

func (s *StatsScreen) ID() screen.ID { return screen.Stats }

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, router.Back
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	st := s.src.State()
	sum := session.BuildSummary(st.Data, st.Links)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	barWidth := min(width-8, 70)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Progress"))
	b.WriteString("\n\n")

	labelWidth := len("Overall")
	for _, sem := range sum.Semesters {
		labelWidth = max(labelWidth, lipgloss.Width(sem.Title))
	}
	overall := components.NewProgressBar("Overall", sum.Progress, barWidth)
	overall.LabelWidth = labelWidth
	b.WriteString(center(overall.View()))
	b.WriteString("\n\n")

	if len(sum.Semesters) == 0 {
		b.WriteString(center(theme.Hint.Render("No questions loaded.")))
		b.WriteString("\n")
	}
	for _, sem := range sum.Semesters {
		bar := components.NewProgressBar(sem.Title, sem.Progress, barWidth)
		bar.LabelWidth = labelWidth
		b.WriteString(center(bar.View()))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Links")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	linkLine := fmt.Sprintf("Links: %d        Synced: %d        Related: %d        Groups: %d",
		sum.Links, sum.SyncedLinks, sum.DottedLinks, sum.Groups)
	b.WriteString(center(theme.Body.Render(linkLine)))
	b.WriteString("\n")
	if sum.DanglingLinks > 0 {
		b.WriteString(center(theme.Warning.Render(fmt.Sprintf("%d link(s) point at missing questions", sum.DanglingLinks))))
		b.WriteString("\n")
	}

	for _, n := range sum.RepeatedSpans() {
		line := fmt.Sprintf("Asked in %d semesters: %d sub-question(s)", n, sum.Repeated[n])
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
