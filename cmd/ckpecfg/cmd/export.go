package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ckpecfg/internal/core"
	"ckpecfg/internal/export"
)

var (
	exportOut  string
	exportHTML bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&exportHTML, "html", false, "Render HTML instead of markdown")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Render a file as reference documentation",
		Long: `The export command renders the parsed file as markdown documentation:
every section becomes a heading with its comment block, every entry a table
row with its value and comments. With --html the markdown is converted to an
HTML fragment.

Example:
  ckpecfg export CreationKitPlatformExtended.ini
  ckpecfg export CreationKitPlatformExtended.ini -o settings.md
  ckpecfg export CreationKitPlatformExtended.ini --html -o settings.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	path := args[0]

	printVerbose("Reading %s\n", path)
	doc, _, err := core.ReadDocument(path)
	if err != nil {
		return err
	}

	title := filepath.Base(path)
	out := export.Markdown(title, doc)
	if exportHTML {
		out, err = export.HTML(title, doc)
		if err != nil {
			return err
		}
	}

	if exportOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	printInfo("Wrote %s\n", exportOut)
	return nil
}
