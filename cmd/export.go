package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/export"
	"github.com/abhisek/pyqtrack/internal/store"
)

var exportCmd = &cobra.Command{
	Use:       "export json|svg|png",
	Short:     "Export the tracker as JSON or as an SVG/PNG image",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "svg", "png"},
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		format := args[0]
		switch format {
		case "json", "svg", "png":
		default:
			return fmt.Errorf("unknown format %q: must be json, svg or png", format)
		}
		if format == "png" && outPath == "" {
			return fmt.Errorf("png export needs --output")
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.session(cmd.Context(), false).State()

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		switch format {
		case "json":
			err = export.WriteJSON(w, store.PrimaryRecord{Data: st.Data, Links: st.Links})
		case "svg":
			err = export.WriteSVG(w, export.Layout(st.Data, st.Links, st.Settings))
		case "png":
			err = export.WritePNG(w, export.Layout(st.Data, st.Links, st.Settings))
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout; required for png)")
}
