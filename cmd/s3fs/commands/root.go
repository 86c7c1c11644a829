// Package commands implements the operator CLI for an s3fs root.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "s3fs",
	Short: "Maintenance tool for an s3fs storage root",
	Long: `s3fs inspects and repairs the directory tree behind an S3-compatible
storage layer: it removes orphaned temp files and sidecars, computes
content checksums, manages multipart upload sessions and exposes
storage metrics.

Every flag can also be set through an S3FS_* environment variable,
for example S3FS_ROOT=/srv/s3 or S3FS_LOG_LEVEL=debug.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	rootCmd.Version = Version + " (" + Commit + ")"
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", "", "Storage root directory")
	flags.String("log-level", "info", "Log level (debug|info|warn|error|fatal)")
	flags.String("log-file", "", "Write logs to a rotated file")
	flags.Bool("strict-names", false, "Enforce S3 bucket and key naming rules")
	flags.Bool("sync", false, "fsync content and directories on commit")

	bindFlags(flags)

	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(checksumCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(serveMetricsCmd)
}
