package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwantia/s3fs"
	"github.com/mwantia/s3fs/data"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Manage multipart upload sessions",
}

var uploadCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start an upload session and print its id",
	Args:  cobra.NoArgs,
	RunE:  runUploadCreate,
}

var uploadVerifyCmd = &cobra.Command{
	Use:   "verify <upload-id>",
	Short: "Check that an upload session exists and belongs to the access key",
	Long: `Exits with an error unless the session exists and was created with the
same --access-key. Without --access-key the caller is anonymous.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadVerify,
}

var uploadDeleteCmd = &cobra.Command{
	Use:   "delete <upload-id>",
	Short: "End an upload session",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{uploadCreateCmd, uploadVerifyCmd} {
		cmd.Flags().String("access-key", "", "Access key of the caller (anonymous when unset)")
	}

	uploadCmd.AddCommand(uploadCreateCmd)
	uploadCmd.AddCommand(uploadVerifyCmd)
	uploadCmd.AddCommand(uploadDeleteCmd)
}

// credentials maps the --access-key flag to a caller identity.
func credentials(cmd *cobra.Command) *data.Credentials {
	if !cmd.Flags().Changed("access-key") {
		return nil
	}

	accessKey, _ := cmd.Flags().GetString("access-key")
	return &data.Credentials{AccessKey: accessKey}
}

func runUploadCreate(cmd *cobra.Command, args []string) error {
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

	id, err := fsys.CreateUploadID(cmd.Context(), credentials(cmd))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id.String())
	return nil
}

func runUploadVerify(cmd *cobra.Command, args []string) error {
	id, err := s3fs.ParseUploadID(args[0])
	if err != nil {
		return err
	}

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

	ok, err := fsys.VerifyUploadID(cmd.Context(), credentials(cmd), id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("upload %s does not exist or belongs to another identity", id)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Upload %s is valid\n", id)
	return nil
}

func runUploadDelete(cmd *cobra.Command, args []string) error {
	id, err := s3fs.ParseUploadID(args[0])
	if err != nil {
		return err
	}

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

	return fsys.DeleteUploadID(cmd.Context(), id)
}
