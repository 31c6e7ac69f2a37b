package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fsargs/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fsargs",
	Short: "Compute F# compiler invocations for workspace projects",
	Long: `fsargs resolves project references against the installed runtime and
prints the exact compiler arguments, one per line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		color.NoColor = !useColor(cmd, os.Stderr)
		return nil
	},
}

// main registers subcommands and persistent flags and executes the root
// command. A failing command exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(argsCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("manifest", "", "workspace manifest (default: nearest fsargs.toml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per project")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for trace-mode ring|both")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}
