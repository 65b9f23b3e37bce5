package cmd

import (
	"fmt"
	"io"

	"github.com/jedi4ever/typedpipe/wire"
)

// PrintVersion prints the typedpipe version and the frame version it speaks
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintf(w, "typedpipe %s\n", version)
	fmt.Fprintf(w, "  frame version: %d\n", wire.Version)
}
