// Package main is the entry point for the gist CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/devantler-tech/gist/internal/buildmeta"
	"github.com/devantler-tech/gist/pkg/cli/cmd"
	"github.com/devantler-tech/gist/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/gist/pkg/ui/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	return reportError(rootCmd.ErrOrStderr(), cmd.Execute(ctx, rootCmd))
}

// reportError prints err with its hint and returns the process exit code.
func reportError(errWriter io.Writer, err error) int {
	if err == nil {
		return 0
	}

	notify.Errorf(errWriter, "%v", err)

	var cmdErr *errorhandler.CommandError
	if errors.As(err, &cmdErr) {
		hint := cmdErr.Hint()
		if hint != "" {
			notify.Infof(errWriter, "%s", hint)
		}
	}

	return 1
}
