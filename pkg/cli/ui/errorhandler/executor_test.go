package errorhandler_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/devantler-tech/gist/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/spf13/cobra"
)

var (
	errTestBoom        = errors.New("boom")
	errOriginalFailure = errors.New("original failure")
	errBoomOriginal    = errors.New("boom: original failure")
	errWrapped         = errors.New("wrapped")
)

func TestExecutorExecuteSuccess(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	err := errorhandler.NewExecutor().Execute(t.Context(), cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestExecutorExecuteNilCommand(t *testing.T) {
	t.Parallel()

	err := errorhandler.NewExecutor().Execute(t.Context(), nil)
	if err != nil {
		t.Fatalf("expected nil command to succeed, got %v", err)
	}
}

func TestExecutorPassesContext(t *testing.T) {
	t.Parallel()

	type key struct{}

	ctx := t.Context()

	var seen any

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seen = cmd.Context().Value(key{})

			return nil
		},
	}

	err := errorhandler.NewExecutor().Execute(context.WithValue(ctx, key{}, "marker"), cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if seen != "marker" {
		t.Fatalf("expected command to receive context value, got %v", seen)
	}
}

func TestExecutorExecuteInvalidSubcommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "test"}
	root.AddCommand(&cobra.Command{Use: "valid"})
	root.SetArgs([]string{"invalid"})

	err := errorhandler.NewExecutor().Execute(t.Context(), root)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	message := err.Error()
	if !strings.Contains(message, "unknown command \"invalid\" for \"test\"") {
		t.Fatalf("expected error message to contain unknown command text, got %q", message)
	}

	if strings.Contains(message, "Error: ") {
		t.Fatalf("expected message to strip 'Error:' prefix, got %q", message)
	}
}

func TestCommandErrorString(t *testing.T) {
	t.Parallel()

	var nilErr *errorhandler.CommandError
	if nilErr.Error() != "" {
		t.Fatalf("expected empty string for nil receiver, got %q", nilErr.Error())
	}

	if (&errorhandler.CommandError{}).Error() != "" {
		t.Fatal("expected empty string for empty struct")
	}

	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil receiver unwrap to return nil")
	}
}

func TestCommandErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		printed string
		cause   error
		want    string
	}{
		{name: "cause only when nothing printed", cause: errTestBoom, want: "boom"},
		{
			name:    "message and cause concatenated when distinct",
			printed: "normalized",
			cause:   errOriginalFailure,
			want:    "normalized: original failure",
		},
		{
			name:    "message retained when it already includes cause",
			printed: "boom: original failure",
			cause:   errBoomOriginal,
			want:    "boom: original failure",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{
				Use:           "test",
				SilenceErrors: true,
				SilenceUsage:  true,
				RunE: func(cmd *cobra.Command, _ []string) error {
					if testCase.printed != "" {
						cmd.PrintErrln(testCase.printed)
					}

					return testCase.cause
				},
			}

			cmdErr := executeAndRequireCommandError(t, cmd)
			if cmdErr.Error() != testCase.want {
				t.Fatalf("expected %q, got %q", testCase.want, cmdErr.Error())
			}
		})
	}
}

func TestCommandErrorUnwrapAndHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cause error
		hint  string
	}{
		{name: "plain", cause: errWrapped, hint: ""},
		{name: "auth", cause: &gisterr.APIError{Op: "list", StatusCode: 401, Kind: gisterr.ErrAuth}, hint: "token"},
		{name: "config", cause: gisterr.Configf("missing token"), hint: "config file"},
		{name: "transient", cause: &gisterr.APIError{Op: "get", Kind: gisterr.ErrTransient}, hint: "not retried"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{
				Use:           "test",
				SilenceErrors: true,
				RunE: func(_ *cobra.Command, _ []string) error {
					return testCase.cause
				},
			}

			cmdErr := executeAndRequireCommandError(t, cmd)
			if !errors.Is(cmdErr, testCase.cause) {
				t.Fatal("expected errors.Is to match original cause")
			}

			hint := cmdErr.Hint()
			if testCase.hint == "" && hint != "" {
				t.Fatalf("expected no hint, got %q", hint)
			}

			if !strings.Contains(hint, testCase.hint) {
				t.Fatalf("expected hint to contain %q, got %q", testCase.hint, hint)
			}
		})
	}
}

func TestDefaultNormalizerNormalize(t *testing.T) {
	t.Parallel()

	normalizer := errorhandler.DefaultNormalizer{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input returns empty string", input: "   \n\t  ", expected: ""},
		{name: "strips error prefix and trims", input: "  Error: something bad \nRun help\n", expected: "something bad\nRun help"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			actual := normalizer.Normalize(testCase.input)
			if actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func executeAndRequireCommandError(t *testing.T, cmd *cobra.Command) *errorhandler.CommandError {
	t.Helper()

	err := errorhandler.NewExecutor().Execute(t.Context(), cmd)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cmdErr *errorhandler.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected error to be *CommandError, got %T (%v)", err, err)
	}

	return cmdErr
}
