package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/cli/ui"
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/spf13/cobra"
)

// DefaultFilename names the file read from stdin or composed in the editor.
const DefaultFilename = "file1.txt"

const createLongDesc = `Create a gist with the given description.

File contents come from, in order of preference:
  - the file arguments (each file keeps its base name)
  - stdin, when it is not a terminal
  - the editor, on an empty file

Examples:
  # Create a private gist from two files
  gist create "dotfiles" .bashrc .vimrc

  # Create a public gist from stdin
  echo hello | gist create --public --filename hello.txt "greeting"

  # Encrypt every file before upload
  gist create --encrypt "secrets" token.txt`

type createOptions struct {
	public   bool
	encrypt  bool
	filename string
}

// NewCreateCmd creates the create command.
func NewCreateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:          "create <description> [files...]",
		Short:        "Create a gist",
		Long:         createLongDesc,
		Args:         validateCreateArgs,
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			return handleCreateRunE(cmd, service, args, opts)
		}),
	}

	cmd.Flags().BoolVar(&opts.public, "public", false, "list the gist publicly")
	cmd.Flags().BoolVar(&opts.encrypt, "encrypt", false, "encrypt every file before upload")
	cmd.Flags().StringVar(&opts.filename, "filename", DefaultFilename, "name of the file read from stdin or the editor")
	cmd.Flags().String(di.FlagEditor, "", "editor command (overrides the config file)")

	return cmd
}

func validateCreateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return gisterr.Validationf("create requires a description")
	}

	if len(args) > 1 && cmd.Flags().Changed("filename") {
		return gisterr.Validationf("--filename cannot be combined with file arguments")
	}

	return nil
}

func handleCreateRunE(cmd *cobra.Command, service *gistsvc.Service, args []string, opts createOptions) error {
	if opts.encrypt {
		_, err := service.RequireCipher()
		if err != nil {
			return err
		}
	}

	files, err := collectFiles(cmd, service, args[1:], opts.filename)
	if err != nil {
		return err
	}

	gist, err := service.Create(cmd.Context(), gistsvc.CreateRequest{
		Description: args[0],
		Public:      opts.public,
		Encrypt:     opts.encrypt,
		Files:       files,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), gist.HTMLURL)

	return err
}

func collectFiles(
	cmd *cobra.Command,
	service *gistsvc.Service,
	paths []string,
	filename string,
) ([]v1alpha1.File, error) {
	if len(paths) > 0 {
		return readFiles(paths)
	}

	if !ui.IsTerminal(cmd.InOrStdin()) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return []v1alpha1.File{{Name: filename, Content: string(content)}}, nil
	}

	file, err := service.Compose(cmd.Context(), filename)
	if err != nil {
		return nil, err
	}

	return []v1alpha1.File{file}, nil
}

func readFiles(paths []string) ([]v1alpha1.File, error) {
	files := make([]v1alpha1.File, 0, len(paths))

	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // reading user-named files is the point
		if err != nil {
			return nil, gisterr.Validationf("cannot read %s: %v", path, err)
		}

		files = append(files, v1alpha1.File{Name: filepath.Base(path), Content: string(content)})
	}

	return files, nil
}
