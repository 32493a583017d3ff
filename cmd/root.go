package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/config"
	"github.com/abhisek/pyqtrack/internal/extract"
	"github.com/abhisek/pyqtrack/internal/logging"
	"github.com/abhisek/pyqtrack/internal/session"
	"github.com/abhisek/pyqtrack/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pyqtrack",
	Short: "Track previous-year exam questions",
	Long: `pyqtrack turns pasted previous-year question papers into a checklist of
sub-questions grouped by semester. Questions repeated across semesters can be
linked so that completing one completes the others.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PYQTRACK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/pyqtrack/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PYQTRACK_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("PYQTRACK_DB") == "" && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// env is what a command run opens: configuration, logger and store.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	logClose io.Closer
	store    *store.Store
}

// setup loads configuration, configures logging and opens the store. The
// TUI logs to a file; subcommands log to stderr.
func setup(cmd *cobra.Command, logToFile bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Service: "pyqtrack"}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		logOpts.Level = lvl
	}
	if logToFile {
		logOpts.File = cfg.Log.File
		if logOpts.File == "" {
			dir, err := store.DataDir()
			if err != nil {
				return nil, err
			}
			logOpts.File = filepath.Join(dir, "pyqtrack.log")
		}
	}
	logger, logClose, err := logging.Setup(logOpts)
	if err != nil {
		logger.Warn("log file unavailable, logging to stderr", "err", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		logClose.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logClose.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	return &env{cfg: cfg, logger: logger, logClose: logClose, store: st}, nil
}

// session opens a tracker session over the store. The extractor is only
// built when the command needs one.
func (e *env) session(ctx context.Context, withExtractor bool) *session.Session {
	opts := session.Options{
		Records:   e.store.Records(),
		Clipboard: clipboard.WriteAll,
		Logger:    e.logger,
	}
	if withExtractor {
		opts.Extractor = extract.FromConfig(ctx, e.cfg.LLM, e.store.EventRepo())
	}
	return session.Open(ctx, opts)
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("closing store", "err", err)
	}
	e.logClose.Close()
}
