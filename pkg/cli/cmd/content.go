package cmd

import (
	"fmt"
	"io"

	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/spf13/cobra"
)

const contentLongDesc = `Print the content of a gist.

Without a file name every file is printed as "<name>:" followed by its
content, in name order. With a file name only that file's content is
printed. With --decrypt, encrypted files are decrypted and labelled
"<name> (decrypted):".`

// NewContentCmd creates the content command.
func NewContentCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var decrypt bool

	cmd := &cobra.Command{
		Use:          "content <id> [filename]",
		Short:        "Print the content of a gist",
		Long:         contentLongDesc,
		Args:         validated(cobra.RangeArgs(1, 2)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			var filename string
			if len(args) > 1 {
				filename = args[1]
			}

			files, err := service.Content(cmd.Context(), args[0], filename, decrypt)
			if err != nil {
				return err
			}

			return writeContent(cmd.OutOrStdout(), files, filename != "")
		}),
	}

	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "decrypt encrypted files")

	return cmd
}

func writeContent(out io.Writer, files []gistsvc.FileContent, bare bool) error {
	if bare {
		for _, file := range files {
			_, err := io.WriteString(out, file.Content)
			if err != nil {
				return err
			}
		}

		return nil
	}

	for _, file := range files {
		label := file.Name
		if file.Decrypted {
			label += " (decrypted)"
		}

		_, err := fmt.Fprintf(out, "%s:\n%s\n", label, file.Content)
		if err != nil {
			return err
		}
	}

	return nil
}
