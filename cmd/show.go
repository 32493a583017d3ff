package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/export"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the tracker as a markdown checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		width, _ := cmd.Flags().GetInt("width")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.session(cmd.Context(), false).State()
		md := export.Markdown(st.Data, st.Links, st.Settings.ShowFrequency)
		return printMarkdown(cmd, md, plain, width)
	},
}

func init() {
	showCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
	showCmd.Flags().Int("width", 100, "Wrap width for styled output")
}

// printMarkdown writes md as is, or rendered for the terminal.
func printMarkdown(cmd *cobra.Command, md string, plain bool, width int) error {
	out := cmd.OutOrStdout()
	if plain {
		_, err := fmt.Fprint(out, md)
		return err
	}
	rendered, err := export.RenderTerminal(md, width, true)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
