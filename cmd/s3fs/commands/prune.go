package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove sidecars of objects that no longer exist",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
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

	removed, err := fsys.PruneSidecars(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d orphaned sidecars from %s\n", removed, fsys.Root())
	return nil
}
