package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all questions and links",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes {
			fmt.Fprint(out, "This clears every question and link. Continue? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		e.session(cmd.Context(), false).Dispatch(state.Reset{})
		fmt.Fprintln(out, "Tracker cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
