package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"venicesync/config"
	"venicesync/config/storage"
	"venicesync/internal/utils"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the Continue config from the latest backup",
	Long:  "Restore the Continue config from the most recent backup created with --backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := utils.ExpandHome(config.ResolveConfigPath(configPathFlag).Value)

		bm := storage.NewBackupManager(storage.DefaultBackupRetention)
		backup, err := bm.RestoreFromLatestBackup(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Restored %s from %s\n", path, backup)
		return nil
	},
}
