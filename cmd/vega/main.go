package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vega/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vega",
	Short: "Vega semantic analyzer and toolchain",
	Long:  `Vega analyzes serialized Vega AST units: type checking, symbol resolution and diagnostics`,

	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to retain per unit")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor maps the --color flag onto both the diagnostics renderer and
// the global fatih/color switch.
func resolveColor(mode string) (bool, error) {
	switch mode {
	case "on":
		color.NoColor = false
		return true, nil
	case "off":
		color.NoColor = true
		return false, nil
	case "", "auto":
		enabled := isTerminal(os.Stdout)
		color.NoColor = !enabled
		return enabled, nil
	}
	return false, errInvalidColorMode(mode)
}
