package cmd

import (
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewCloneCmd creates the clone command.
func NewCloneCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var decrypt bool

	cmd := &cobra.Command{
		Use:   "clone <id> [name]",
		Short: "Copy the files of a gist into a new directory",
		Long: `Copy the files of a gist into ./<name>, or ./<id> when no name is given.

The directory must not exist. With --decrypt, encrypted files are written
decrypted, without their encryption suffix.`,
		Args:         validated(cobra.RangeArgs(1, 2)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			var dest string
			if len(args) > 1 {
				dest = args[1]
			}

			dir, err := service.Clone(cmd.Context(), args[0], dest, decrypt)
			if err != nil {
				return err
			}

			notify.Successf(cmd.OutOrStdout(), "cloned gist %s into %s", args[0], dir)

			return nil
		}),
	}

	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "write encrypted files decrypted")

	return cmd
}
