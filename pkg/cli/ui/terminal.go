package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const ellipsis = "..."

// Width returns the column count of w when it is a terminal.
func Width(w io.Writer) (int, bool) {
	file, ok := w.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(file.Fd()) //nolint:gosec // fd fits in int
	if !term.IsTerminal(fd) {
		return 0, false
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}

	return width, true
}

// Elide shortens text to at most width runes, ending in "..." when cut.
// A non-positive width disables elision.
func Elide(text string, width int) string {
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}

	if width <= len(ellipsis) {
		return string(runes[:width])
	}

	return string(runes[:width-len(ellipsis)]) + ellipsis
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)

	return ok && term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int
}
