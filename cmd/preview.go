package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/config"
	"github.com/abhisek/pyqtrack/internal/export"
	"github.com/abhisek/pyqtrack/internal/extract"
	"github.com/abhisek/pyqtrack/internal/logging"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file|-]",
	Short: "Preview extraction of a question paper (no database)",
	Long: `Extract questions from raw text and print the result as markdown.

This is a stateless developer tool: no database, no saved tracker, no LLM
event log. Useful for evaluating extraction quality and trying providers.
Unlike import, a failed extraction is reported instead of replaced by the
sample data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
	previewCmd.Flags().Int("width", 100, "Wrap width for styled output")
}

func runPreview(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	width, _ := cmd.Flags().GetInt("width")
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = cfg.Log.Level
	}
	_, logClose, _ := logging.Setup(logging.Options{Level: level, Service: "pyqtrack"})
	defer logClose.Close()

	raw, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ext := extract.FromConfig(ctx, cfg.LLM, nil)
	if err := ext.Available(); err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	tree, err := ext.Parse(ctx, string(raw))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	return printMarkdown(cmd, export.Markdown(tree, nil, false), plain, width)
}
