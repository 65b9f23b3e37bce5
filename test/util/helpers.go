package testutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/creack/pty"
)

// GetTypedpipeBinary builds the typedpipe binary into a temp dir so tests
// run against the current code.
func GetTypedpipeBinary(t *testing.T) string {
	t.Helper()

	// Resolve repo root: this file is at test/util/helpers.go
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	binaryPath := filepath.Join(t.TempDir(), "typedpipe")

	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to build typedpipe binary: %v\n%s", err, string(output))
	}
	return binaryPath
}

// IsolateConfig points config lookups at empty temp dirs.
func IsolateConfig(t *testing.T) []string {
	t.Helper()
	return append(os.Environ(),
		"TYPEDPIPE_CONFIG_DIR="+t.TempDir(),
		"TYPEDPIPE_COMPRESS=",
		"TYPEDPIPE_LOG_LEVEL=",
		"TYPEDPIPE_LOG_FILE=",
	)
}

// Terminal is a pseudo terminal pair. Tty is handed to the child; output
// written to it is read back from the master side.
type Terminal struct {
	Master *os.File
	Tty    *os.File
}

// OpenTerminal opens a pty and closes it when the test ends.
func OpenTerminal(t *testing.T) *Terminal {
	t.Helper()
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		tty.Close()
	})
	return &Terminal{Master: master, Tty: tty}
}

// RunWithTerminal starts c, closes the parent's copy of the tty and
// collects everything the child wrote to the terminal. Line endings are
// normalized from the tty's \r\n.
func RunWithTerminal(t *testing.T, c *exec.Cmd, term *Terminal) (string, error) {
	t.Helper()

	if err := c.Start(); err != nil {
		t.Fatalf("Failed to start %s: %v", c.Path, err)
	}
	term.Tty.Close()

	var buf bytes.Buffer
	_, copyErr := io.Copy(&buf, term.Master)
	// Linux reports EIO on the master once the last slave fd closes.
	if copyErr != nil && !errors.Is(copyErr, syscall.EIO) {
		t.Logf("reading terminal: %v", copyErr)
	}

	err := c.Wait()
	return strings.ReplaceAll(buf.String(), "\r\n", "\n"), err
}

// ExitCode returns the process exit status carried by err, or 0.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 0
}
