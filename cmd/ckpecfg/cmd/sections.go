package cmd

import (
	"github.com/spf13/cobra"

	"ckpecfg/internal/core"
)

func init() {
	rootCmd.AddCommand(newSectionsCmd())
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <file>",
		Short: "List the sections of a file",
		Long: `The sections command lists every section header with its line number and
entry count, in file order. Repeated headers with the same name are listed
separately.

Example:
  ckpecfg sections CreationKitPlatformExtended.ini
  ckpecfg sections CreationKitPlatformExtended.ini --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(args)
		},
	}
}

func runSections(args []string) error {
	path := args[0]

	printVerbose("Reading %s\n", path)
	doc, _, err := core.ReadDocument(path)
	if err != nil {
		return err
	}

	if jsonOut {
		type sectionInfo struct {
			Name    string `json:"name"`
			Line    int    `json:"line"`
			Entries int    `json:"entries"`
		}
		infos := make([]sectionInfo, len(doc.Sections))
		for i, s := range doc.Sections {
			infos[i] = sectionInfo{Name: s.Name, Line: s.Line + 1, Entries: len(s.Entries)}
		}
		return printJSON(map[string]interface{}{
			"file":     path,
			"sections": infos,
			"count":    len(infos),
		})
	}

	for _, s := range doc.Sections {
		printInfo("  [%s]  line %d, %d entries\n", s.Name, s.Line+1, len(s.Entries))
	}
	printInfo("\nTotal: %d sections\n", len(doc.Sections))
	return nil
}
