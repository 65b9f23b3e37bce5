package cmd

import (
	"fmt"
	"io"

	"github.com/jedi4ever/typedpipe/internal/terminal"
	"github.com/jedi4ever/typedpipe/pipeline"
)

// PrintWhere reports the detected pipeline position without touching stdin.
func PrintWhere(w io.Writer, prober terminal.Prober) {
	pos := pipeline.Detect(prober)
	fmt.Fprintf(w, "Invoked within pipeline:\n    %s\n", pos.Diagram())
}
