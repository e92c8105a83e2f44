package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"collabscan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "collabscan",
	Short: "Scan source trees for @collab trust directives",
	Long:  `collabscan extracts @collab directives from source comments and resolves the effective trust level for every region of code`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(directivesCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
