// Package terminal reports whether the standard streams are attached to a
// terminal or redirected to a pipe or file.
package terminal

import "os"

// Prober answers whether stdin and stdout are piped.
type Prober interface {
	StdinPiped() bool
	StdoutPiped() bool
}

// OS probes the real process file descriptors.
type OS struct{}

// StdinPiped reports whether stdin (fd 0) is not a terminal.
func (OS) StdinPiped() bool { return !IsTerminal(os.Stdin.Fd()) }

// StdoutPiped reports whether stdout (fd 1) is not a terminal.
func (OS) StdoutPiped() bool { return !IsTerminal(os.Stdout.Fd()) }

// Fixed is a Prober with preset answers, used by tests and by callers that
// already know how the streams are wired.
type Fixed struct {
	Stdin  bool
	Stdout bool
}

func (f Fixed) StdinPiped() bool  { return f.Stdin }
func (f Fixed) StdoutPiped() bool { return f.Stdout }

// IsTerminal checks if fd refers to a terminal.
// isatty() is implemented in platform-specific files (terminal_unix.go, terminal_other.go)
func IsTerminal(fd uintptr) bool {
	return isatty(int(fd))
}

// IsInteractive checks if stdin and stdout are both terminals
func IsInteractive() bool {
	return isatty(0) && isatty(1)
}
