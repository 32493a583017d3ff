package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/export"
	"github.com/abhisek/pyqtrack/internal/state"
)

var loadCmd = &cobra.Command{
	Use:   "load <file.json|->",
	Short: "Replace the tracker with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		rec, err := export.ReadJSON(bytes.NewReader(raw))
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sess := e.session(cmd.Context(), false)
		st := sess.Dispatch(state.Load{Snapshot: state.Snapshot{Data: rec.Data, Links: rec.Links}})
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d semesters, %d sub-questions, %d links.\n",
			len(st.Data), st.Progress().Total, len(st.Links))
		return nil
	},
}
