package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"symtab/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "symtab",
	Short:         "Scope-aware symbol table toolkit",
	Long:          `symtab drives a scope-aware symbol table from command scripts and lists its contents`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags, then executes the root command.
// A failed command exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// empty string defaults defer to symtab.toml
	rootCmd.PersistentFlags().String("config", "", "path to symtab.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per script")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("symtab:", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
