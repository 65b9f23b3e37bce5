//go:build !linux && !darwin

package terminal

import (
	"golang.org/x/term"
)

// isatty falls back to x/term, which covers Windows consoles and the BSDs.
func isatty(fd int) bool {
	return term.IsTerminal(fd)
}
