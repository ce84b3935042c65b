package format

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the current width of stdout, or 0 when stdout is not
// a terminal or the size cannot be determined.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
