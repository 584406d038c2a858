package cmd

import (
	"strings"

	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewDescriptionCmd creates the description command.
func NewDescriptionCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "description <id> <text>",
		Short:        "Change the description of a gist",
		Long:         "Change the description of a gist. Remaining arguments are joined with spaces.",
		Args:         validated(cobra.MinimumNArgs(2)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			_, err := service.Describe(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			notify.Successf(cmd.OutOrStdout(), "updated the description of gist %s", args[0])

			return nil
		}),
	}
}
