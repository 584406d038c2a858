// Package errorhandler runs the root command and turns failures into a single
// user-facing error.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/spf13/cobra"
)

// Executor runs Cobra commands, capturing stderr output and surfacing one normalized error.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd with ctx while intercepting Cobra's error stream.
// It returns nil on success, or a *CommandError holding the normalized
// message and the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError is a command failure augmented with normalized stderr output.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Hint returns a follow-up suggestion for the error kind, or "".
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	switch gisterr.KindOf(e.cause) {
	case gisterr.ErrAuth:
		return "check the token in your gist config file"
	case gisterr.ErrConfig:
		return "see `gist help` for config file locations and keys"
	case gisterr.ErrTransient:
		return "the request was not retried; run the command again"
	default:
		return ""
	}
}

// DefaultNormalizer trims cobra's stderr output into a one-line-first message.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes redundant "Error:" prefixes, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
