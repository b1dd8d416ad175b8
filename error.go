package rpcwire

import (
	"encoding/json"
	"fmt"
)

// Reserved JSON-RPC 2.0 error codes produced by this package. Every other
// code is method-defined and passes through untouched.
const (
	// CodeParseError reports payload text that could not be decoded.
	CodeParseError = -32700
	// CodeInvalidRequest reports a malformed header block, a truncated
	// payload, or a message that does not match its variant schema.
	CodeInvalidRequest = -32600
)

// Error is the JSON-RPC error object. It doubles as the failure result of
// every parse and serialize operation, so a failed parse can be written
// back to the peer unchanged.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: %s (code %d)", e.Message, e.Code)
}

// WithData returns a copy of the error carrying raw diagnostic data.
func (e *Error) WithData(data json.RawMessage) *Error {
	return &Error{Code: e.Code, Message: e.Message, Data: data}
}

func errInvalidRequest(message string, data json.RawMessage) *Error {
	return &Error{Code: CodeInvalidRequest, Message: message, Data: data}
}

func errParse(message string, data json.RawMessage) *Error {
	return &Error{Code: CodeParseError, Message: message, Data: data}
}

// textData encodes raw input as a JSON string so it can ride along as
// diagnostic data on a failed parse.
func textData(text []byte) json.RawMessage {
	b, err := json.Marshal(string(text))
	if err != nil {
		return nil
	}
	return b
}
