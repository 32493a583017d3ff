package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/config"
)

// version is overridden with -ldflags "-X github.com/abhisek/pyqtrack/cmd.version=...".
var version = ""

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pyqtrack %s\n", buildVersion())
		if !versionVerbose {
			return nil
		}
		fmt.Fprintf(out, "go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "database: %s\n", path)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "also print toolchain and database path")
}

// buildVersion prefers the linker-set version, then the module version
// recorded by go install.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
