package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	sess := e.session(ctx, true)
	e.logger.Info("starting tui",
		"semesters", len(sess.State().Data), "links", len(sess.State().Links), "provider", e.cfg.LLM.Provider)

	return app.Run(ctx, app.Options{Session: sess})
}
