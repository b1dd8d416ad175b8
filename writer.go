package rpcwire

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer emits framed messages to a byte sink, one Write call per message.
type Writer struct {
	w     io.Writer
	codec Codec
	log   Logger
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	o := newOptions(opts...)
	return &Writer{w: w, codec: o.codec, log: o.logger}
}

// WriteMessage frames and writes m, returning the number of bytes written.
// A sink failure is reported with the re-encoded message attached so the
// caller can retry or surface it.
func (wr *Writer) WriteMessage(m Message) (int, *Error) {
	wire, err := encodeWire(wr.codec, m)
	if err != nil {
		return 0, wr.fail(err)
	}
	n, werr := wr.w.Write(wire)
	if werr != nil {
		var data json.RawMessage
		if b, merr := wr.codec.Marshal(m); merr == nil {
			data = b
		}
		return n, wr.fail(errParse(werr.Error(), data))
	}
	wr.log.WithFields(map[string]interface{}{
		"kind":  m.Kind().String(),
		"bytes": n,
	}).Debug("message written")
	return n, nil
}

// fail logs a write failure before returning it.
func (wr *Writer) fail(err *Error) *Error {
	wr.log.WithErr(err).Debug("write failed")
	return err
}

// encodeWire renders the Content-Length framed wire form of v. The length
// counts payload bytes, not characters.
func encodeWire(codec Codec, v interface{}) ([]byte, *Error) {
	payload, err := codec.Marshal(v)
	if err != nil {
		return nil, errParse("encode message: "+err.Error(), nil)
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(payload))
	wire := make([]byte, 0, len(header)+len(payload))
	wire = append(wire, header...)
	wire = append(wire, payload...)
	return wire, nil
}
