package cmd

import (
	"fmt"

	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/spf13/cobra"
)

// NewFilesCmd creates the files command.
func NewFilesCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:          "files <id>",
		Short:        "List the file names of a gist",
		Args:         validated(cobra.ExactArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			names, err := service.Files(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, name := range names {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
				if err != nil {
					return err
				}
			}

			return nil
		}),
	}
}
