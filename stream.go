package rpcwire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// StreamReader parses framed messages from a byte source. Header bytes are
// consumed one at a time and the body is read to its exact declared length,
// so the source is never read past the current frame and stays positioned
// at the start of the next one.
type StreamReader struct {
	src   io.ByteReader
	body  io.Reader
	codec Codec
	log   Logger
}

// NewStreamReader wraps src. Sources that implement io.ByteReader, such as
// bufio.Reader or bytes.Reader, are used directly; anything else is read
// through a single-byte adapter.
func NewStreamReader(src io.Reader, opts ...Option) *StreamReader {
	o := newOptions(opts...)
	br, ok := src.(io.ByteReader)
	if !ok {
		br = &byteReader{src: src}
	}
	return &StreamReader{src: br, body: src, codec: o.codec, log: o.logger}
}

// ReadFrame reads one framed payload and reports the exact number of bytes
// consumed from the source: len+1 for every header line plus the declared
// body length.
//
// Header failures carry the offending line as error data, where ScanHeader
// carries the unconsumed remainder.
func (s *StreamReader) ReadFrame() ([]byte, int, *Error) {
	n := 0
	length := -1

	for length < 0 {
		line, err := s.readLine()
		if err != nil {
			return nil, 0, s.fail(err)
		}
		n += len(line) + 1
		key, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			return nil, 0, s.fail(errInvalidRequest("header line missing ':' separator", textData(line)))
		}
		if !bytes.EqualFold(bytes.TrimSpace(key), contentLengthKey) {
			continue
		}
		v, convErr := strconv.Atoi(string(bytes.TrimSpace(value)))
		if convErr != nil || v < 0 {
			return nil, 0, s.fail(errInvalidRequest("invalid Content-Length value", textData(line)))
		}
		length = v
	}

	for {
		line, err := s.readLine()
		if err != nil {
			return nil, 0, s.fail(err)
		}
		n += len(line) + 1
		if len(bytes.TrimSpace(line)) == 0 {
			break
		}
	}

	// The declared length caps the copy; the buffer grows only as body
	// bytes actually arrive.
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, s.body, int64(length))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, s.fail(errInvalidRequest(
				fmt.Sprintf("truncated payload: declared %d bytes, %d available", length, copied),
				textData(buf.Bytes())))
		}
		return nil, 0, s.fail(errInvalidRequest(err.Error(), nil))
	}
	payload := buf.Bytes()
	n += length
	if err := checkText(payload); err != nil {
		return nil, 0, s.fail(err)
	}
	s.log.WithFields(map[string]interface{}{"bytes": n}).Debug("frame read")
	return payload, n, nil
}

// ReadMessage reads one frame and decodes it into a message, returning the
// consumed byte count alongside.
func (s *StreamReader) ReadMessage() (Message, int, *Error) {
	payload, n, err := s.ReadFrame()
	if err != nil {
		return nil, 0, err
	}
	msg, err := decodeMessage(s.codec, payload)
	if err != nil {
		return nil, 0, s.fail(err)
	}
	s.log.WithFields(map[string]interface{}{
		"kind":  msg.Kind().String(),
		"bytes": n,
	}).Debug("message read")
	return msg, n, nil
}

// ReadRequest reads one frame and decodes it against the request schema
// directly, without classification.
func (s *StreamReader) ReadRequest() (Request, int, *Error) {
	payload, n, err := s.ReadFrame()
	if err != nil {
		return Request{}, 0, err
	}
	req, derr := decodeRequest(s.codec, payload)
	if derr != nil {
		return Request{}, 0, s.fail(derr)
	}
	return req, n, nil
}

// ReadNotification reads one frame and decodes it against the notification
// schema.
func (s *StreamReader) ReadNotification() (Notification, int, *Error) {
	payload, n, err := s.ReadFrame()
	if err != nil {
		return Notification{}, 0, err
	}
	not, derr := decodeNotification(s.codec, payload)
	if derr != nil {
		return Notification{}, 0, s.fail(derr)
	}
	return not, n, nil
}

// ReadResponse reads one frame and decodes it against the response schema.
func (s *StreamReader) ReadResponse() (Response, int, *Error) {
	payload, n, err := s.ReadFrame()
	if err != nil {
		return Response{}, 0, err
	}
	res, derr := decodeResponse(s.codec, payload)
	if derr != nil {
		return Response{}, 0, s.fail(derr)
	}
	return res, n, nil
}

// fail logs a read failure before returning it.
func (s *StreamReader) fail(err *Error) *Error {
	s.log.WithErr(err).Debug("read failed")
	return err
}

// readLine accumulates bytes up to \n. The terminator is consumed but not
// returned. Running out of input before the terminator is an error: every
// header line, including the blank one, must be newline-terminated.
func (s *StreamReader) readLine() ([]byte, *Error) {
	var line []byte
	for {
		b, err := s.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errInvalidRequest("unexpected end of input in header block", textData(line))
			}
			return nil, errInvalidRequest(err.Error(), nil)
		}
		if b == '\n' {
			return line, nil
		}
		line = append(line, b)
	}
}

// byteReader adapts a plain io.Reader to io.ByteReader with single-byte
// reads.
type byteReader struct {
	src io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	for {
		n, err := b.src.Read(b.buf[:])
		if n > 0 {
			return b.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
