package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckpecfg/internal/classify"
	"ckpecfg/internal/core"
	"ckpecfg/internal/tui"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Root flags
	rootAnyFile bool
	rootRules   string
	rootNoWatch bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ckpecfg <file.ini>",
	Short: "Edit CreationKitPlatformExtended.ini without disturbing comments or layout",
	Long: `ckpecfg is an editor for CreationKit Platform Extended configuration files.
It rewrites only the values you change: comments, blank lines, indentation and
entry order survive a save byte for byte.

Run it with a file to get the interactive editor, or use the subcommands for
scripted reads and writes.`,
	Version: "0.1.0",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoot(args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.Flags().BoolVar(&rootAnyFile, "any-file", false, "Edit files not named "+core.ExpectedFileName)
	rootCmd.Flags().StringVar(&rootRules, "rules", "", "Extra classification rules file (YAML)")
	rootCmd.Flags().BoolVar(&rootNoWatch, "no-watch", false, "Do not watch the file for external changes")
}

func runRoot(args []string) error {
	path := args[0]

	if !rootAnyFile {
		if err := core.VerifyFileName(path); err != nil {
			return fmt.Errorf("%w (use --any-file to edit it anyway)", err)
		}
	}

	rules := classify.DefaultRules()
	if rootRules != "" {
		var err error
		rules, err = classify.LoadRules(rootRules)
		if err != nil {
			return err
		}
	}

	return tui.Run(context.Background(), tui.Options{
		Path:  path,
		Rules: rules,
		Watch: !rootNoWatch,
	})
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
