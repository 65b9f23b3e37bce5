package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedi4ever/typedpipe/pipeline"
	"github.com/jedi4ever/typedpipe/record"
	"github.com/jedi4ever/typedpipe/util"
	"github.com/jedi4ever/typedpipe/wire"
)

// Exit codes. The non-zero ones follow sysexits.h.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitMalformed   = 65 // EX_DATAERR
	ExitNoInput     = 66 // EX_NOINPUT
	ExitIOError     = 74 // EX_IOERR
	ExitInterrupted = 130
)

// Streams are the three standard streams of the process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Runner performs the action for one pipeline position
type Runner struct {
	streams Streams
	opts    wire.Options
}

// NewRunner creates a new runner. opts controls frames written at chain start.
func NewRunner(streams Streams, opts wire.Options) *Runner {
	return &Runner{
		streams: streams,
		opts:    opts,
	}
}

// Run writes the position's diagnostic to stderr, performs its I/O and
// returns the process exit code. Nothing is written to stdout on error.
func (r *Runner) Run(pos pipeline.Position) int {
	log := util.Log("relay")
	log.Debug("position %s", pos)

	fmt.Fprintln(r.streams.Err, pos.Diagnostic())

	switch pos {
	case pipeline.ChainStart:
		return r.start()
	case pipeline.ChainMiddle:
		return r.middle()
	case pipeline.ChainEnd:
		return r.end()
	default:
		fmt.Fprint(r.streams.Out, Usage)
		return ExitOK
	}
}

func (r *Runner) start() int {
	frame, err := wire.Marshal(record.Sample(), r.opts)
	if err != nil {
		return r.fail(ExitIOError, "encode record: %v", err)
	}
	return r.write(frame)
}

func (r *Runner) middle() int {
	rec, h, code := r.read()
	if code != ExitOK {
		return code
	}

	// Re-encode with the incoming frame's flags so the relay is transparent.
	frame, err := wire.Marshal(rec, wire.OptionsFor(h))
	if err != nil {
		return r.fail(ExitIOError, "encode record: %v", err)
	}
	return r.write(frame)
}

func (r *Runner) end() int {
	rec, h, code := r.read()
	if code != ExitOK {
		return code
	}

	lit, err := wire.Marshal(rec, wire.OptionsFor(h))
	if err != nil {
		return r.fail(ExitIOError, "encode record: %v", err)
	}

	if _, err := fmt.Fprintf(r.streams.Out, "\nlit=%q\n\nobj=%s\n", lit, rec); err != nil {
		return r.fail(ExitIOError, "write stdout: %v", err)
	}
	return ExitOK
}

// read decodes one frame from stdin, mapping failures to exit codes.
func (r *Runner) read() (record.Record, wire.Header, int) {
	rec, h, err := wire.Decode(r.streams.In)
	switch {
	case err == nil:
		util.Log("relay").Debug("read frame: %d byte payload, compressed=%v", h.Length, h.Compressed())
		return rec, h, ExitOK
	case errors.Is(err, wire.ErrEmpty):
		return record.Record{}, wire.Header{}, r.fail(ExitNoInput, "unexpected eof from stdin")
	case errors.Is(err, wire.ErrMalformed):
		return record.Record{}, wire.Header{}, r.fail(ExitMalformed, "stdin sent non-typedpipe data: %v", err)
	default:
		return record.Record{}, wire.Header{}, r.fail(ExitIOError, "read stdin: %v", err)
	}
}

func (r *Runner) write(frame []byte) int {
	if _, err := r.streams.Out.Write(frame); err != nil {
		return r.fail(ExitIOError, "write stdout: %v", err)
	}
	util.Log("relay").Debug("wrote %d byte frame", len(frame))
	return ExitOK
}

func (r *Runner) fail(code int, format string, args ...interface{}) int {
	msg := fmt.Sprintf(format, args...)
	util.Log("relay").Debug("exit %d: %s", code, msg)
	fmt.Fprintln(r.streams.Err, msg)
	return code
}
