// Package pipeline classifies where a process sits in a shell pipeline.
package pipeline

import "github.com/jedi4ever/typedpipe/internal/terminal"

// Position is the role of this process within a pipe chain.
type Position int

const (
	// Standalone: `$ SELF`, neither side piped.
	Standalone Position = iota

	// ChainStart: `$ SELF | A0 | B0`, stdin interactive, stdout piped.
	ChainStart

	// ChainMiddle: `$ A0 | SELF | B0`, both sides piped.
	ChainMiddle

	// ChainEnd: `$ A0 | B0 | SELF`, stdin piped, stdout interactive.
	ChainEnd
)

// Classify maps the two pipe probes to a position.
func Classify(stdinPiped, stdoutPiped bool) Position {
	switch {
	case !stdinPiped && stdoutPiped:
		return ChainStart
	case stdinPiped && stdoutPiped:
		return ChainMiddle
	case stdinPiped && !stdoutPiped:
		return ChainEnd
	default:
		return Standalone
	}
}

// Detect probes the streams once and classifies the result.
func Detect(p terminal.Prober) Position {
	return Classify(p.StdinPiped(), p.StdoutPiped())
}

func (p Position) String() string {
	switch p {
	case ChainStart:
		return "chain-start"
	case ChainMiddle:
		return "chain-middle"
	case ChainEnd:
		return "chain-end"
	case Standalone:
		return "standalone"
	default:
		return "unknown"
	}
}

// Diagram shows the position as a pipeline sketch, for the `where` command.
func (p Position) Diagram() string {
	switch p {
	case ChainStart:
		return "<PipeOut: SELF | A0>"
	case ChainMiddle:
		return "<PipeInOut: A0 | SELF | B0>"
	case ChainEnd:
		return "<PipeIn: A0 | SELF>"
	default:
		return "<NoPipe>"
	}
}

// Diagnostic is the line written to stderr before acting on the position.
func (p Position) Diagnostic() string {
	switch p {
	case ChainStart:
		return "Start of pipe chain: THIS | other"
	case ChainMiddle:
		return "Middle of pipe chain: other | THIS | other"
	case ChainEnd:
		return "End of pipe chain: other | THIS"
	default:
		return "Standalone execution: THIS"
	}
}

// ReadsInput reports whether the position consumes a frame from stdin.
func (p Position) ReadsInput() bool {
	return p == ChainMiddle || p == ChainEnd
}

// WritesFrame reports whether the position writes a frame to stdout.
func (p Position) WritesFrame() bool {
	return p == ChainStart || p == ChainMiddle
}
