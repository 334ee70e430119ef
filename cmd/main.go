package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	verbose bool
	noColor bool

	rootCmd = &cobra.Command{
		Use:   "faultz",
		Short: "Declared and undeclared failure demos",
		Long: `faultz is a CLI tool for exploring declared and undeclared failures
through runnable scenarios.

Each scenario builds operations with the faultz combinators, runs them and
logs every outcome: which channel it took, which carriers were minted and
which were recovered on the far side of a boundary.`,
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose, noColor)
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log carrier and monitor signals")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long:  "Display a list of all available scenarios with descriptions.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Available scenarios:")
		fmt.Println()
		for _, s := range getAllScenarios() {
			fmt.Printf("  %-12s %s\n", s.Name(), s.Description())
		}
	},
}
