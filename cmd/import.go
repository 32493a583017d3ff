package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/state"
)

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Extract questions from pasted exam papers and save them",
	Long: `Send raw question-paper text to the configured language model, turn it
into semesters, questions and sub-questions, and replace the saved tracker.

If extraction fails the bundled sample data is saved instead, as in the TUI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetBool("sample")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		sess := e.session(ctx, !sample)
		out := cmd.OutOrStdout()

		if sample {
			st := sess.Dispatch(state.LoadSample{})
			fmt.Fprintf(out, "Loaded sample data: %d sub-questions.\n", st.Progress().Total)
			return nil
		}

		raw, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		if !sess.State().CanSubmit(string(raw)) {
			return errors.New("nothing to import: input is empty")
		}

		sess.Dispatch(state.ExtractStarted{})
		outcome := sess.Extract(ctx, string(raw))
		st := sess.Dispatch(outcome)

		if failed, ok := outcome.(state.ExtractFailed); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Extraction failed: %v\n%s\n", failed.Err, st.Notice)
		}
		titles := make([]string, len(st.Data))
		for i, sem := range st.Data {
			titles[i] = sem.Title
		}
		fmt.Fprintf(out, "Saved %d semesters (%s), %d sub-questions.\n",
			len(st.Data), strings.Join(titles, ", "), st.Progress().Total)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("sample", false, "Load the bundled sample data instead of extracting")
}
