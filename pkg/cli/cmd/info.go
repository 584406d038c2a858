package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/gist/pkg/apis/gist/v1alpha1"
	"github.com/devantler-tech/gist/pkg/di"
	gistsvc "github.com/devantler-tech/gist/pkg/svc/gist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

// ErrInvalidOutputFormat is returned for an unknown --output value.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// OutputFormat selects how info renders a gist.
type OutputFormat string

const (
	// OutputJSON renders indented JSON.
	OutputJSON OutputFormat = "json"
	// OutputYAML renders YAML.
	OutputYAML OutputFormat = "yaml"
)

var _ pflag.Value = (*OutputFormat)(nil)

// Set for OutputFormat (pflag.Value interface).
func (o *OutputFormat) Set(value string) error {
	for _, format := range []OutputFormat{OutputJSON, OutputYAML} {
		if strings.EqualFold(value, string(format)) {
			*o = format

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s, %s)", ErrInvalidOutputFormat, value, OutputJSON, OutputYAML)
}

// String returns the string representation of the OutputFormat.
func (o *OutputFormat) String() string {
	return string(*o)
}

// Type returns the type of the OutputFormat.
func (o *OutputFormat) Type() string {
	return "OutputFormat"
}

// NewInfoCmd creates the info command.
func NewInfoCmd(runtimeContainer *di.Runtime) *cobra.Command {
	format := OutputJSON

	cmd := &cobra.Command{
		Use:          "info <id>",
		Short:        "Show everything known about a gist",
		Args:         validated(cobra.ExactArgs(1)),
		SilenceUsage: true,
		RunE: runE(runtimeContainer, func(cmd *cobra.Command, service *gistsvc.Service, args []string) error {
			gist, err := service.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data, err := renderGist(gist, format)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		}),
	}

	cmd.Flags().VarP(&format, "output", "o", "output format: json or yaml")

	return cmd
}

func renderGist(gist *v1alpha1.Gist, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputYAML:
		data, err := yaml.Marshal(gist)
		if err != nil {
			return nil, fmt.Errorf("failed to render gist as yaml: %w", err)
		}

		return data, nil
	default:
		data, err := json.MarshalIndent(gist, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to render gist as json: %w", err)
		}

		return append(data, '\n'), nil
	}
}
