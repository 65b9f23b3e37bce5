// Package wire implements the typedpipe binary frame.
//
// A frame is a fixed 10 byte header followed by the payload:
//
//	[magic "TPIP":4][version:1][flags:1][length:4, big endian][payload:length]
//
// The payload is a msgpack map holding one record. Flag bit 0 marks a zstd
// compressed payload; every other flag bit is reserved and must be zero.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// Version is the only frame version this build reads and writes.
	Version byte = 1

	// FlagZstd marks a zstd compressed payload.
	FlagZstd byte = 1 << 0

	// HeaderSize is the size of the fixed frame header in bytes.
	HeaderSize = 10

	// MaxPayload caps the payload length accepted by Decode.
	MaxPayload = 16 << 20

	knownFlags = FlagZstd
)

var magic = [4]byte{'T', 'P', 'I', 'P'}

var (
	// ErrEmpty is returned when the stream ends before a single byte was read.
	ErrEmpty = errors.New("unexpected eof")

	// ErrMalformed is returned when bytes are present but do not form a valid frame.
	ErrMalformed = errors.New("malformed frame")
)

// Header describes a frame without its payload.
type Header struct {
	Version byte
	Flags   byte
	Length  uint32
}

// Compressed reports whether the payload is zstd compressed.
func (h Header) Compressed() bool {
	return h.Flags&FlagZstd != 0
}

// Options controls how a record is encoded.
type Options struct {
	Compress bool
}

// OptionsFor returns the options that reproduce a decoded frame's encoding.
func OptionsFor(h Header) Options {
	return Options{Compress: h.Compressed()}
}

func (o Options) flags() byte {
	if o.Compress {
		return FlagZstd
	}
	return 0
}

func writeHeader(buf *bytes.Buffer, h Header) {
	var hdr [HeaderSize]byte
	copy(hdr[0:4], magic[:])
	hdr[4] = h.Version
	hdr[5] = h.Flags
	binary.BigEndian.PutUint32(hdr[6:10], h.Length)
	buf.Write(hdr[:])
}

// readHeader reads and validates a frame header.
func readHeader(r io.Reader) (Header, error) {
	var hdr [HeaderSize]byte
	n, err := io.ReadFull(r, hdr[:])
	if err != nil {
		switch {
		case n == 0 && errors.Is(err, io.EOF):
			return Header{}, ErrEmpty
		case errors.Is(err, io.ErrUnexpectedEOF):
			if !hasMagicPrefix(hdr[:n]) {
				return Header{}, fmt.Errorf("%w: bad magic %q", ErrMalformed, hdr[:n])
			}
			return Header{}, fmt.Errorf("%w: truncated header (%d of %d bytes)", ErrMalformed, n, HeaderSize)
		default:
			return Header{}, fmt.Errorf("read frame header: %w", err)
		}
	}

	if !hasMagicPrefix(hdr[0:4]) {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrMalformed, hdr[0:4])
	}

	h := Header{
		Version: hdr[4],
		Flags:   hdr[5],
		Length:  binary.BigEndian.Uint32(hdr[6:10]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrMalformed, h.Version)
	}
	if h.Flags&^knownFlags != 0 {
		return Header{}, fmt.Errorf("%w: unknown flags %#02x", ErrMalformed, h.Flags)
	}
	if h.Length > MaxPayload {
		return Header{}, fmt.Errorf("%w: payload too large: %d bytes (max %d)", ErrMalformed, h.Length, MaxPayload)
	}
	return h, nil
}

func hasMagicPrefix(b []byte) bool {
	if len(b) > len(magic) {
		b = b[:len(magic)]
	}
	return bytes.Equal(b, magic[:len(b)])
}
