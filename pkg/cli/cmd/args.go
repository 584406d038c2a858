package cmd

import (
	"fmt"

	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/spf13/cobra"
)

// validated marks argument errors from cobra's validators as validation errors.
func validated(validator cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := validator(cmd, args)
		if err != nil {
			return fmt.Errorf("%w: %w", gisterr.ErrValidation, err)
		}

		return nil
	}
}

// runE resolves the gist service for handler and passes the positional arguments through.
func runE(
	runtimeContainer *di.Runtime,
	handler func(cmd *cobra.Command, service *gistsvc.Service, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		run := di.RunEWithRuntime(runtimeContainer, di.WithService(
			func(cmd *cobra.Command, service *gistsvc.Service) error {
				return handler(cmd, service, args)
			},
		))

		return run(cmd, args)
	}
}
