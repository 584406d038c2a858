package cmd

import (
	"fmt"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/cli/ui"
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/spf13/cobra"
)

const listLongDesc = `List gists, one per line: <id> <+|-> <description>.

A "+" marks a public gist and "-" a secret one. Without --user the
authenticated user's gists are listed, secret ones included; with --user
only that user's public gists are visible. Lines are shortened to the
terminal width.`

// NewListCmd creates the list command.
func NewListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List gists",
		Long:         listLongDesc,
		Args:         validated(cobra.NoArgs),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, _ []string) error {
			gists, err := service.List(cmd.Context(), user)
			if err != nil {
				return err
			}

			return writeList(cmd, gists)
		}),
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "list the public gists of this user")

	return cmd
}

// FormatListLine renders one gist as shown by list.
func FormatListLine(gist v1alpha1.Gist) string {
	return fmt.Sprintf("%s %s %s", gist.ID, gist.Visibility.Marker(), gist.Description)
}

func writeList(cmd *cobra.Command, gists []v1alpha1.Gist) error {
	out := cmd.OutOrStdout()
	width, _ := ui.Width(out)

	for _, gist := range gists {
		_, err := fmt.Fprintln(out, ui.Elide(FormatListLine(gist), width))
		if err != nil {
			return err
		}
	}

	return nil
}
