package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/session"
	"github.com/abhisek/pyqtrack/internal/ui/text"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress and link statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.session(cmd.Context(), false).State()
		sum := session.BuildSummary(st.Data, st.Links)
		out := cmd.OutOrStdout()

		if len(sum.Semesters) == 0 {
			fmt.Fprintln(out, "No questions loaded.")
			return nil
		}

		r := newReport("Semester", "Questions", "Done", "%")
		for _, sem := range sum.Semesters {
			r.row(text.Truncate(sem.Title, 16), sem.Questions,
				fmt.Sprintf("%d/%d", sem.Done, sem.Total), fmt.Sprintf("%.0f%%", sem.Percent()))
		}
		r.row("TOTAL", "", fmt.Sprintf("%d/%d", sum.Progress.Done, sum.Progress.Total),
			fmt.Sprintf("%.0f%%", sum.Progress.Percent()))
		r.write(out, "Progress")

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Links:   %d (%d synced, %d related) in %d groups\n",
			sum.Links, sum.SyncedLinks, sum.DottedLinks, sum.Groups)
		if sum.DanglingLinks > 0 {
			fmt.Fprintf(out, "Dangling: %d link(s) point at missing questions\n", sum.DanglingLinks)
		}
		for _, n := range sum.RepeatedSpans() {
			fmt.Fprintf(out, "Asked in %d semesters: %d sub-question(s)\n", n, sum.Repeated[n])
		}
		return nil
	},
}
