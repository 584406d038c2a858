package cmd

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print the version",
		Args:         validated(cobra.NoArgs),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), FormatVersion(version))

			return err
		},
	}
}

// FormatVersion renders a semantic version as v<major>.<minor>.<patch>[...].
// Versions that do not parse, such as "dev", are returned unchanged.
func FormatVersion(version string) string {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return version
	}

	return "v" + parsed.String()
}
