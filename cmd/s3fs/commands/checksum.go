package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <bucket> <key>",
	Short: "Print the MD5 checksum of an object",
	Args:  cobra.ExactArgs(2),
	RunE:  runChecksum,
}

func runChecksum(cmd *cobra.Command, args []string) error {
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

	sum, err := fsys.ContentChecksum(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sum)
	return nil
}
