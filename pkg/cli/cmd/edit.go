package cmd

import (
	"github.com/devantler-tech/gist/pkg/cli/ui/confirm"
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/staging"
	"github.com/devantler-tech/gist/pkg/ui/notify"
	"github.com/spf13/cobra"
)

const editLongDesc = `Edit the files of a gist in your editor.

The files are copied to a temporary directory and the editor is started on
them. When it exits, only the files whose content changed are pushed back,
in a single update. Encrypted files are decrypted for editing when
encryption is configured, and encrypted again before upload.

Files removed or added in the directory are reported but never deleted from
or added to the gist.

Editor precedence: --editor, the config file, $EDITOR, $VISUAL,
/usr/bin/editor, then vim, nano or vi.

You are asked before anything is pushed unless --yes is given or stdin is
not a terminal.`

// NewEditCmd creates the edit command.
func NewEditCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "edit <id>",
		Short:        "Edit a gist in your editor",
		Long:         editLongDesc,
		Args:         validated(cobra.ExactArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			return handleEditRunE(cmd, service, args[0], confirm.ForFlag(yes, cmd.OutOrStdout()))
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "push changes without asking")
	cmd.Flags().String(di.FlagEditor, "", "editor command (overrides the config file)")

	return cmd
}

func handleEditRunE(cmd *cobra.Command, service *gistsvc.Service, id string, policy confirm.Policy) error {
	notify.Activityf(cmd.OutOrStdout(), "opening gist %s in the editor", id)

	result, err := service.Edit(cmd.Context(), id, policy)
	if err != nil {
		return err
	}

	reportEdit(cmd, id, result)

	return nil
}

func reportEdit(cmd *cobra.Command, id string, result staging.Result) {
	out := cmd.OutOrStdout()

	for _, name := range result.Undecrypted {
		notify.Warningf(out, "'%s' could not be decrypted and was edited as is", name)
	}

	for _, name := range result.Missing {
		notify.Warningf(out, "'%s' was removed locally and is kept in the gist", name)
	}

	for _, name := range result.Untracked {
		notify.Warningf(out, "'%s' is not part of the gist and was not uploaded", name)
	}

	switch {
	case result.Pushed:
		notify.Successf(out, "updated %d file(s) in gist %s", len(result.Changed), id)
	case result.Declined:
		notify.Infof(out, "changes to gist %s were not pushed", id)
	default:
		notify.Infof(out, "no changes to gist %s", id)
	}
}
