package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"ckpecfg/internal/core"
	"ckpecfg/internal/session"
)

var setBackup bool

func init() {
	cmd := newSetCmd()
	cmd.Flags().BoolVar(&setBackup, "backup", false, "Copy the file to file.bak before writing")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <section> <key> <value>",
		Short: "Update one entry in place",
		Long: `The set command rewrites the value of a single existing entry and leaves
every other byte of the file as it was, including a trailing comment on the
same line. Entries the file does not contain are an error: the writer never
invents lines.

Example:
  ckpecfg set CreationKitPlatformExtended.ini CrashDumps bGenerateCrashDumps false
  ckpecfg set CreationKitPlatformExtended.ini Log uLevel 4 --backup`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	path, section, name, value := args[0], args[1], args[2], args[3]
	ctx := context.Background()

	if setBackup {
		backupPath, err := core.Backup(path)
		if err != nil {
			return err
		}
		printVerbose("Backup written to %s\n", backupPath)
	}

	sess, err := session.Open(ctx, path)
	if err != nil {
		return err
	}
	if err := sess.Set(section, name, value); err != nil {
		return err
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":    path,
			"section": section,
			"key":     name,
			"value":   value,
			"success": true,
		})
	}
	printInfo("[%s] %s = %s\n", section, name, value)
	return nil
}
