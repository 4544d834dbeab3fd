package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ckpecfg/internal/classify"
	"ckpecfg/internal/core"
)

func init() {
	rootCmd.AddCommand(newKeysCmd())
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file> <section>",
		Short: "List the entries of a section",
		Long: `The keys command lists every entry of a section with its current value.
When the section name occurs more than once, the first occurrence is listed.

Example:
  ckpecfg keys CreationKitPlatformExtended.ini CrashDumps
  ckpecfg keys CreationKitPlatformExtended.ini Log --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

func runKeys(args []string) error {
	path, section := args[0], args[1]

	printVerbose("Reading %s\n", path)
	doc, _, err := core.ReadDocument(path)
	if err != nil {
		return err
	}
	sec := doc.Section(section)
	if sec == nil {
		return fmt.Errorf("no section [%s] in %s", section, path)
	}

	if jsonOut {
		type entryInfo struct {
			Key     string `json:"key"`
			Value   string `json:"value"`
			Line    int    `json:"line"`
			Kind    string `json:"kind"`
			Comment string `json:"comment,omitempty"`
		}
		rules := classify.DefaultRules()
		infos := make([]entryInfo, len(sec.Entries))
		for i, e := range sec.Entries {
			infos[i] = entryInfo{
				Key:     e.Name,
				Value:   e.Value,
				Line:    e.Line + 1,
				Kind:    classify.Classify(rules, sec.Name, e.Name, e.Value).Kind.String(),
				Comment: e.Comment,
			}
		}
		return printJSON(map[string]interface{}{
			"file":    path,
			"section": sec.Name,
			"entries": infos,
			"count":   len(infos),
		})
	}

	for _, e := range sec.Entries {
		printInfo("  %s = %s\n", e.Name, e.Value)
	}
	printInfo("\nTotal: %d entries\n", len(sec.Entries))
	return nil
}
