package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ckpecfg/internal/core"
	"ckpecfg/pkg/ini"
)

var getComment bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getComment, "comment", false, "Also print the entry's comment block")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <section> <key>",
		Short: "Print the value of one entry",
		Long: `The get command prints the value of a single entry. When the same section
and key occur more than once, the last occurrence wins, matching how the
Creation Kit reads the file.

Example:
  ckpecfg get CreationKitPlatformExtended.ini CrashDumps bGenerateCrashDumps
  ckpecfg get CreationKitPlatformExtended.ini Log sOutputFile --comment
  ckpecfg get CreationKitPlatformExtended.ini FaceGen nCharset --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	path, section, name := args[0], args[1], args[2]

	printVerbose("Reading %s\n", path)
	doc, _, err := core.ReadDocument(path)
	if err != nil {
		return err
	}
	entry, ok := doc.Get(section, name)
	if !ok {
		return fmt.Errorf("no entry %s in %s", ini.Key{Section: section, Name: name}, path)
	}

	if jsonOut {
		result := map[string]interface{}{
			"file":    path,
			"section": section,
			"key":     entry.Name,
			"value":   entry.Value,
			"line":    entry.Line + 1,
		}
		if getComment {
			result["comment"] = entry.Comment
		}
		return printJSON(result)
	}

	fmt.Println(entry.Value)
	if getComment && entry.Comment != "" {
		printInfo("%s\n", entry.Comment)
	}
	return nil
}
