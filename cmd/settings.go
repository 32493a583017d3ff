package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/state"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print or change display settings",
	Long: `Print the display settings, or change them with flags. Out-of-range
values are rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sess := e.session(cmd.Context(), false)
		next := sess.State().Settings
		flags := cmd.Flags()
		changed := false
		if flags.Changed("card-width") {
			next.CardWidth, _ = flags.GetInt("card-width")
			changed = true
		}
		if flags.Changed("font-size") {
			next.FontSize, _ = flags.GetInt("font-size")
			changed = true
		}
		if flags.Changed("padding") {
			next.CardPadding, _ = flags.GetInt("padding")
			changed = true
		}
		if flags.Changed("frequency") {
			next.ShowFrequency, _ = flags.GetBool("frequency")
			changed = true
		}
		if flags.Changed("two-column") {
			next.TwoColumnLayout, _ = flags.GetBool("two-column")
			changed = true
		}

		if changed {
			if err := next.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			sess.Dispatch(state.SetSettings{Settings: next})
		}

		s := sess.State().Settings
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "card-width:  %dpx\n", s.CardWidth)
		fmt.Fprintf(out, "font-size:   %dpx\n", s.FontSize)
		fmt.Fprintf(out, "padding:     %d\n", s.CardPadding)
		fmt.Fprintf(out, "frequency:   %v\n", s.ShowFrequency)
		fmt.Fprintf(out, "two-column:  %v\n", s.TwoColumnLayout)
		return nil
	},
}

func init() {
	settingsCmd.Flags().Int("card-width", 0, "Card width in pixels (400-1400)")
	settingsCmd.Flags().Int("font-size", 0, "Font size in pixels (12-24)")
	settingsCmd.Flags().Int("padding", 0, "Card padding level (1-5)")
	settingsCmd.Flags().Bool("frequency", true, "Show how many semesters a linked question appears in")
	settingsCmd.Flags().Bool("two-column", false, "Lay semesters out in two columns")
}
