package cmd

import (
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewArchiveCmd creates the archive command.
func NewArchiveCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Save a gist as <id>.tar.gz",
		Long: `Save the files of a gist as a gzip compressed tar archive named <id>.tar.gz.

The archive holds a single <id>/ directory and is written to the current
directory, or to --dir. An existing archive is never overwritten.`,
		Args:         validated(cobra.ExactArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			path, err := service.Archive(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}

			notify.Successf(cmd.OutOrStdout(), "archived gist %s to %s", args[0], path)

			return nil
		}),
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write the archive to")

	return cmd
}
