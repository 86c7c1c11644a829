package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Remove temp files left behind by crashed writers",
	Long: `Opens the storage root, which removes every orphaned temp file
(.tmp.<n>.internal.part) directly below it, and reports how many were found.

Run this only while no other process is writing to the same root.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fsys, logger, err := openFileSystem(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	defer fsys.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d orphaned temp files from %s\n", fsys.RemovedOrphans(), fsys.Root())
	return nil
}
