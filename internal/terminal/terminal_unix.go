//go:build linux || darwin

package terminal

import (
	"golang.org/x/sys/unix"
)

// isatty asks the tty driver for the window size; only terminals answer.
func isatty(fd int) bool {
	_, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	return err == nil
}
