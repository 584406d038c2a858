package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/devantler-tech/gist/pkg/svc/gisterr"
	"github.com/google/shlex"
)

// ErrEditorFailed is returned when the editor exits unsuccessfully.
var ErrEditorFailed = errors.New("editor exited with an error")

// Editor opens files for interactive editing and blocks until the user is done.
type Editor interface {
	Open(ctx context.Context, dir string, files []string) error
}

// Launcher runs an editor command line with the terminal attached.
type Launcher struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewLauncher creates a launcher bound to the process's standard streams.
func NewLauncher(command string) *Launcher {
	return &Launcher{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open runs the editor with files as arguments and dir as working directory.
func (l *Launcher) Open(ctx context.Context, dir string, files []string) error {
	if l.Command == "" {
		return gisterr.Configf("no editor found: set `editor` in the config file or $EDITOR")
	}

	args, err := shlex.Split(l.Command)
	if err != nil || len(args) == 0 {
		return gisterr.Configf("invalid editor command %q", l.Command)
	}

	args = append(args, files...)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // the editor is user configured
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEditorFailed, args[0], err)
	}

	return nil
}
