// Package confirm provides the confirmation policy used before pushing changes.
package confirm

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/devantler-tech/gist/pkg/ui/notify"
	"golang.org/x/term"
)

// Policy decides whether the action described by question may proceed.
type Policy func(question string) bool

// AutoApprove approves every question.
func AutoApprove(string) bool {
	return true
}

// Interactive asks on writer and reads the answer from stdin.
func Interactive(writer io.Writer) Policy {
	return func(question string) bool {
		return PromptForConfirmation(writer, question)
	}
}

// ForFlag returns AutoApprove when yes is set or stdin is not a terminal,
// otherwise an Interactive policy.
func ForFlag(yes bool, writer io.Writer) Policy {
	if ShouldSkipPrompt(yes) {
		return AutoApprove
	}

	return Interactive(writer)
}

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// ShouldSkipPrompt returns true if the confirmation prompt should be skipped.
// This happens when:
// - force flag is set, OR
// - stdin is not a TTY (non-interactive environment)
func ShouldSkipPrompt(force bool) bool {
	return force || !IsTTY()
}

// PromptForConfirmation writes "<question> [y/N]" and returns true only for
// "y" or "yes" (case-insensitive).
func PromptForConfirmation(writer io.Writer, question string) bool {
	notify.WriteMessage(notify.Message{
		Type:    notify.WarningType,
		Content: question + " [y/N]",
		Writer:  writer,
	})

	reader := bufio.NewReader(getStdinReader())

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	input = strings.TrimSpace(input)

	return strings.EqualFold(input, "y") || strings.EqualFold(input, "yes")
}
