// Package rpcwire frames and parses JSON-RPC 2.0 messages carried over
// Content-Length header blocks, the wire format used by LSP-style and
// MCP-style stdio protocols.
//
// A frame is a header block of "Key: Value" lines terminated by a blank
// line, followed by exactly Content-Length bytes of JSON payload:
//
//	Content-Length: 18\r\n
//	\r\n
//	{"jsonrpc":"2.0",...}
//
// The package offers two parsing surfaces. Buffer functions slice frames
// out of []byte and hand back the unconsumed remainder, so pipelined
// frames parse in sequence:
//
//	msg, rest, err := rpcwire.Parse(buf)
//	if err != nil {
//		// err is a *rpcwire.Error and can be sent back to the peer as-is
//	}
//	switch m := msg.(type) {
//	case rpcwire.Request:
//		reply := rpcwire.NewResponse(m.ID)
//	case rpcwire.Notification:
//	case rpcwire.Response:
//	}
//
// A StreamReader performs the same parse against an io.Reader without ever
// reading past the current frame, reporting the exact count of consumed
// bytes:
//
//	r := rpcwire.NewStreamReader(bufio.NewReader(conn))
//	msg, n, err := r.ReadMessage()
//
// Messages are immutable values built with chained constructors and framed
// with Encode or a Writer:
//
//	req, _ := rpcwire.NewRequest("textDocument/hover").WithParams(params)
//	wire, err := req.Encode()
//
// Parsing, classification and serialization are pure and reentrant; the
// package starts no goroutines and applies no timeouts of its own.
package rpcwire
