package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// Markdown renders the tracker as a task list grouped by semester and
// question. Linked sub-questions list the ids they are linked to.
func Markdown(tree tracker.Tree, edges []links.LinkEdge, showFrequency bool) string {
	var freq map[string]int
	if showFrequency {
		freq = tree.Frequency(edges)
	}

	var sb strings.Builder
	p := tree.Progress()
	fmt.Fprintf(&sb, "# PYQ tracker\n\n%s\n", progressLine(p))
	if len(tree) == 0 {
		sb.WriteString("\n_No questions loaded._\n")
		return sb.String()
	}

	for _, sem := range tree {
		fmt.Fprintf(&sb, "\n## %s\n", sem.Title)
		for _, q := range sem.Questions {
			fmt.Fprintf(&sb, "\n**Q%s**\n\n", q.Number)
			for _, sq := range q.SubQuestions {
				box := " "
				if sq.IsDone {
					box = "x"
				}
				fmt.Fprintf(&sb, "- [%s] %s %s", box, sq.Label, escapeInline(sq.Text))
				if sq.Marks != "" {
					fmt.Fprintf(&sb, " _(%s)_", sq.Marks)
				}
				if badge := tracker.FrequencyBadge(freq[sq.ID]); badge != "" {
					sb.WriteString(" " + badge)
				}
				if linked := linkedLabels(tree, edges, sq.ID); linked != "" {
					fmt.Fprintf(&sb, " ↔ %s", linked)
				}
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// linkedLabels names the other ends of id's links as "S25 Q5(a)".
func linkedLabels(tree tracker.Tree, edges []links.LinkEdge, id string) string {
	var names []string
	for _, e := range links.Involving(edges, id) {
		other := e.To
		if other == id {
			other = e.From
		}
		ref, ok := tree.Locate(other)
		if !ok {
			continue
		}
		sem := tree[ref.Semester]
		q := sem.Questions[ref.Question]
		name := fmt.Sprintf("%s Q%s%s", sem.Title, q.Number, q.SubQuestions[ref.Sub].Label)
		if e.Visual.Style == links.StyleDotted {
			name += " (related)"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

var inlineEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeInline(s string) string { return inlineEscaper.Replace(s) }

// RenderTerminal renders markdown for a terminal of the given width. With
// color false the output carries no escape sequences.
func RenderTerminal(md string, width int, color bool) (string, error) {
	style := "notty"
	if color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
