// Package app contains the Cobra command tree for propshift.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "propshift",
	Short: "Batch codemod engine for TypeScript/JSX component migrations",
	Long: `propshift scans a tree of TypeScript/JSX source files, detects outdated
component API usage — renamed props, moved import paths, removed icon
identifiers — and rewrites files in place against a declarative rule
catalog. Runs are idempotent: applying the catalog twice changes nothing
on the second pass.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("propshift", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  rewrite   Scan and rewrite source files against the rule catalog")
		fmt.Println("  declare   Synthesize ambient declarations from observed component usage")
		fmt.Println("  catalog   Validate and display the loaded rule catalog")
		fmt.Println("  history   Show past run reports and error-count trends")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./propshift.yaml or ~/.config/propshift/propshift.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable per-file progress output")
}
