package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/cheese"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cheese",
	Short: "Cheese ground planes for GDS export",
	Long: `cheese punches regular hole lattices into chip ground planes, keeping
clear of no-cheese regions, and writes the layers as GDSII.

Examples:
  cheese check job.yaml                       # Validate spacing per chip layer
  cheese run job.yaml -o chip.gds             # Cheese and export
  cheese run job.yaml -o chip.gds -p chip.png # Also render a preview`,
	Version:       cheese.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		cheese.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.SetErr(os.Stderr)
}
