package cmd

import (
	"fmt"
	"io"

	"github.com/jedi4ever/typedpipe/core"
)

// PrintHelp displays usage information
func PrintHelp(w io.Writer, version string) {
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprint(w, core.Usage)
}
