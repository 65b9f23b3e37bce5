package main

import (
	"github.com/jedi4ever/typedpipe/cmd"
	"github.com/jedi4ever/typedpipe/internal/util"
)

// Version can be overridden at build time with -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0"

func main() {
	// Close the log file if a signal interrupts a blocked read
	util.SetupCleanup(cmd.Shutdown)

	// Execute CLI
	cmd.Execute(Version)
}
