package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jedi4ever/typedpipe/record"
)

// payload is the msgpack shape of a record. The complex field is split so
// readers in other languages do not need a complex extension type.
type payload struct {
	Name   string  `msgpack:"name"`
	Age    int64   `msgpack:"age"`
	Addr   string  `msgpack:"addr"`
	CallRe float64 `msgpack:"call_re"`
	CallIm float64 `msgpack:"call_im"`
}

func toPayload(r record.Record) payload {
	return payload{
		Name:   r.Name,
		Age:    r.Age,
		Addr:   r.Addr,
		CallRe: real(r.Call),
		CallIm: imag(r.Call),
	}
}

func (p payload) record() record.Record {
	return record.Record{
		Name: p.Name,
		Age:  p.Age,
		Addr: p.Addr,
		Call: complex(p.CallRe, p.CallIm),
	}
}

// Marshal encodes rec as one complete frame.
func Marshal(rec record.Record, opts Options) ([]byte, error) {
	body, err := msgpack.Marshal(toPayload(rec))
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	if opts.Compress {
		body, err = compress(body)
		if err != nil {
			return nil, err
		}
	}
	if len(body) > MaxPayload {
		return nil, fmt.Errorf("payload too large: %d bytes (max %d)", len(body), MaxPayload)
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(body))
	writeHeader(&buf, Header{
		Version: Version,
		Flags:   opts.flags(),
		Length:  uint32(len(body)),
	})
	buf.Write(body)
	return buf.Bytes(), nil
}

// Encode writes rec to w as one frame. The frame is built in memory first so
// a failure never leaves a partial frame on w.
func Encode(w io.Writer, rec record.Record, opts Options) error {
	frame, err := Marshal(rec, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Decode reads exactly one frame from r.
func Decode(r io.Reader) (record.Record, Header, error) {
	h, err := readHeader(r)
	if err != nil {
		return record.Record{}, Header{}, err
	}

	body := make([]byte, h.Length)
	if n, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return record.Record{}, Header{}, fmt.Errorf("%w: truncated payload (%d of %d bytes)", ErrMalformed, n, h.Length)
		}
		return record.Record{}, Header{}, fmt.Errorf("read frame payload: %w", err)
	}

	rec, err := decodeBody(h, body)
	if err != nil {
		return record.Record{}, Header{}, err
	}
	return rec, h, nil
}

// Unmarshal decodes a single frame held in data. Bytes after the frame are
// rejected.
func Unmarshal(data []byte) (record.Record, Header, error) {
	br := bytes.NewReader(data)
	rec, h, err := Decode(br)
	if err != nil {
		return record.Record{}, Header{}, err
	}
	if br.Len() != 0 {
		return record.Record{}, Header{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, br.Len())
	}
	return rec, h, nil
}

func decodeBody(h Header, body []byte) (record.Record, error) {
	if h.Compressed() {
		var err error
		body, err = decompress(body)
		if err != nil {
			return record.Record{}, err
		}
	}

	br := bytes.NewReader(body)
	dec := msgpack.NewDecoder(br)
	var p payload
	if err := dec.Decode(&p); err != nil {
		return record.Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if br.Len() != 0 {
		return record.Record{}, fmt.Errorf("%w: %d bytes after payload", ErrMalformed, br.Len())
	}
	return p.record(), nil
}

func compress(body []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(body, nil), nil
}

func decompress(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(MaxPayload),
	)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrMalformed, err)
	}
	return out, nil
}
