package cmd

import (
	"context"
	"fmt"

	"github.com/devantler-tech/gist/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/gist/pkg/di"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/spf13/cobra"
)

const rootLongDesc = `gist manages GitHub gists from the command line.

The configuration is an INI file with a [gist] section. The first readable
file among these locations is used:
  --config <path>
  $GIST_CONFIG
  $XDG_DATA_HOME/gist
  ~/.config/gist
  ~/.gist

Keys:
  token              API token, !<command> to read it from a command, or @gh
                     to reuse the GitHub CLI login
  editor             editor for edit and create
  log-level          diagnostic log level (default error)
  delete-tempfiles   remove working copies after edit (default yes)
  api-url            GitHub Enterprise API base URL
  encryption         gpg (default), openpgp or age
  gnupg-command      gpg binary (default gpg)
  gnupg-homedir      GnuPG home directory
  gnupg-fingerprint  recipient key fingerprint
  age-recipients     comma separated age recipients
  age-identity       age identity file`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:          "gist",
		Short:        "Manage GitHub gists",
		Long:         rootLongDesc,
		Args:         rejectUnknownCommand,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(di.FlagConfig, "", "path to the config file")
	cmd.PersistentFlags().String(di.FlagLogLevel, "", "diagnostic log level (overrides the config file)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", gisterr.ErrValidation, err)
	})

	cmd.AddCommand(
		NewCreateCmd(runtimeContainer),
		NewEditCmd(runtimeContainer),
		NewListCmd(runtimeContainer),
		NewCloneCmd(runtimeContainer),
		NewArchiveCmd(runtimeContainer),
		NewDeleteCmd(runtimeContainer),
		NewFilesCmd(runtimeContainer),
		NewContentCmd(runtimeContainer),
		NewInfoCmd(runtimeContainer),
		NewDescriptionCmd(runtimeContainer),
		NewForkCmd(runtimeContainer),
		NewVersionCmd(version),
	)

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	return executor.Execute(ctx, cmd)
}

// --- internals ---

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help never fails when writing to the command's output.
	_ = cmd.Help()

	return nil
}

func rejectUnknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return gisterr.Validationf("unknown command %q for %q", args[0], cmd.CommandPath())
	}

	return nil
}
