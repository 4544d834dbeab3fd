package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ckpecfg/internal/core"
	"ckpecfg/internal/parser"
	"ckpecfg/internal/rewrite"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Verify a file parses and survives a rewrite untouched",
		Long: `The check command parses the file, runs it through the writer with no edits,
and verifies the result is byte-identical to the original. It also reports
section and entry counts and whether the file name is the one the Creation Kit
expects. The exit status is non-zero when the round trip fails.

Example:
  ckpecfg check CreationKitPlatformExtended.ini
  ckpecfg check backup.ini --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

func runCheck(args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := string(data)
	doc, raw := parser.Parse(text)

	out, err := rewrite.Apply(text, nil)
	if err != nil {
		return err
	}
	roundTrip := out == text
	fileNameOK := core.VerifyFileName(path) == nil

	if jsonOut {
		if err := printJSON(map[string]interface{}{
			"file":         path,
			"lines":        len(raw),
			"sections":     len(doc.Sections),
			"entries":      doc.Len(),
			"round_trip":   roundTrip,
			"file_name_ok": fileNameOK,
		}); err != nil {
			return err
		}
	} else {
		printInfo("%s: %d lines, %d sections, %d entries\n", path, len(raw), len(doc.Sections), doc.Len())
		if fileNameOK {
			printInfo("file name: ok\n")
		} else {
			printInfo("file name: not %s (the interactive editor will refuse it)\n", core.ExpectedFileName)
		}
		if roundTrip {
			printInfo("round trip: ok\n")
		}
	}

	if !roundTrip {
		return fmt.Errorf("round trip failed: rewriting %s without edits would change it", path)
	}
	return nil
}
