package rpcwire

import (
	"bytes"
	"fmt"
	"strconv"
)

var contentLengthKey = []byte("Content-Length")

// ScanHeader reads the header block at the start of buf and returns the
// declared content length together with the bytes remaining after the
// blank line that terminates the block.
//
// Header lines are "Key: Value" pairs separated by \n, with an optional
// trailing \r. Keys are matched case-insensitively after trimming; the
// first Content-Length wins, and the lines after it are skipped without
// inspection until the terminator. Failures carry the unconsumed remainder
// as error data.
func ScanHeader(buf []byte) (int, []byte, *Error) {
	rest := buf
	length := -1

	for length < 0 {
		line, next, ok := cutLine(rest)
		if !ok {
			return 0, nil, errInvalidRequest("header line missing newline terminator", textData(rest))
		}
		rest = next
		key, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			return 0, nil, errInvalidRequest("header line missing ':' separator", textData(rest))
		}
		if !bytes.EqualFold(bytes.TrimSpace(key), contentLengthKey) {
			continue
		}
		n, err := strconv.Atoi(string(bytes.TrimSpace(value)))
		if err != nil || n < 0 {
			return 0, nil, errInvalidRequest("invalid Content-Length value", textData(rest))
		}
		length = n
	}

	for {
		line, next, ok := cutLine(rest)
		if !ok {
			return 0, nil, errInvalidRequest("header block missing blank line terminator", textData(rest))
		}
		rest = next
		if len(bytes.TrimSpace(line)) == 0 {
			return length, rest, nil
		}
	}
}

// ExtractPayload slices the declared payload out of rest, returning the
// payload and whatever follows it. The remainder belongs to the next frame
// when messages arrive pipelined.
func ExtractPayload(length int, rest []byte) ([]byte, []byte, *Error) {
	if length < 0 {
		return nil, nil, errInvalidRequest("negative content length", nil)
	}
	if len(rest) < length {
		return nil, nil, errInvalidRequest(
			fmt.Sprintf("truncated payload: declared %d bytes, %d available", length, len(rest)),
			textData(rest))
	}
	return rest[:length:length], rest[length:], nil
}

// cutLine splits buf at the first \n. The terminator is consumed but not
// included in line.
func cutLine(buf []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return nil, nil, false
	}
	return buf[:i], buf[i+1:], true
}
