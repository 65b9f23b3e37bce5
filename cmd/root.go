package cmd

import (
	"fmt"
	"os"

	"github.com/jedi4ever/typedpipe/config"
	"github.com/jedi4ever/typedpipe/core"
	"github.com/jedi4ever/typedpipe/internal/terminal"
	"github.com/jedi4ever/typedpipe/pipeline"
	"github.com/jedi4ever/typedpipe/util"
	"github.com/jedi4ever/typedpipe/wire"
)

// Execute is the main entry point for the CLI
func Execute(version string) {
	streams := core.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	code := Main(version, os.Args[1:], terminal.OS{}, streams)
	Shutdown()
	os.Exit(code)
}

// Shutdown flushes and closes the logger
func Shutdown() {
	util.CloseLogger()
}

// Main runs typedpipe with explicit arguments, prober and streams and
// returns the exit code.
func Main(version string, args []string, prober terminal.Prober, streams core.Streams) int {
	cfg := config.LoadConfig(version)
	if err := util.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(streams.Err, "Warning: %v\n", err)
	}
	log := util.Log("cmd")

	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			PrintHelp(streams.Out, version)
			return core.ExitOK
		case "--version", "version":
			PrintVersion(streams.Out, version)
			return core.ExitOK
		case "where":
			PrintWhere(streams.Out, prober)
			return core.ExitOK
		default:
			fmt.Fprintf(streams.Err, "Unknown command: %s\n\n", args[0])
			PrintHelp(streams.Err, version)
			return core.ExitUsage
		}
	}

	pos := pipeline.Detect(prober)
	log.Debug("stdin piped=%v stdout piped=%v -> %s", prober.StdinPiped(), prober.StdoutPiped(), pos)

	runner := core.NewRunner(streams, wire.Options{Compress: cfg.Compress})
	return runner.Run(pos)
}
