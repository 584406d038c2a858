package cmd

import (
	"fmt"

	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/spf13/cobra"
)

// NewForkCmd creates the fork command.
func NewForkCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "fork <id>",
		Short:        "Fork another user's gist",
		Long:         "Fork another user's gist and print the new gist's id and URL.",
		Args:         validated(cobra.ExactArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			forked, err := service.Fork(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", forked.ID, forked.HTMLURL)

			return err
		}),
	}
}
