package cmd

import (
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command.
func NewDeleteCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete gists",
		Long: `Delete one or more gists.

Gists are deleted in the given order. The first failure stops the command;
gists deleted before it stay deleted.`,
		Args:         validated(cobra.MinimumNArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			deleted, err := service.Delete(cmd.Context(), args...)

			for _, id := range deleted {
				notify.Successf(cmd.OutOrStdout(), "deleted gist %s", id)
			}

			return err
		}),
	}
}
