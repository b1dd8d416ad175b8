package rpcwire

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// Version is the protocol version carried by every message.
const Version = "2.0"

// MessageKind identifies which variant a Message holds.
type MessageKind int

const (
	KindRequest MessageKind = iota + 1
	KindNotification
	KindResponse
)

// String returns the lowercase variant name.
func (k MessageKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Message is the variant type produced by parsing: exactly one of Request,
// Notification or Response. The variant is decided once, at parse time;
// narrow it with AsRequest, AsNotification or AsResponse, or switch on the
// concrete type directly.
type Message interface {
	// Kind identifies the concrete variant.
	Kind() MessageKind
	// Encode renders the framed wire form of the message.
	Encode() ([]byte, *Error)

	message()
}

// classify applies the dispatch rules to a decoded payload, in order: a
// method with an id is a request, a method alone is a notification, and
// everything else is treated as a response. An id without a method falls
// through to the response rule and fails its schema check there.
func classify(v interface{}) MessageKind {
	obj, _ := v.(map[string]interface{})
	_, hasMethod := obj["method"]
	_, hasID := obj["id"]
	switch {
	case hasMethod && hasID:
		return KindRequest
	case hasMethod:
		return KindNotification
	default:
		return KindResponse
	}
}

// decodeMessage classifies payload and strictly decodes it into the chosen
// variant.
func decodeMessage(codec Codec, payload []byte) (Message, *Error) {
	if err := checkText(payload); err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := codec.Unmarshal(payload, &decoded); err != nil {
		return nil, errInvalidRequest(err.Error(), textData(payload))
	}
	switch classify(decoded) {
	case KindRequest:
		req, err := decodeRequest(codec, payload)
		if err != nil {
			return nil, err
		}
		return req, nil
	case KindNotification:
		not, err := decodeNotification(codec, payload)
		if err != nil {
			return nil, err
		}
		return not, nil
	default:
		res, err := decodeResponse(codec, payload)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

// AsRequest narrows m to a Request. The wrong variant is rejected with the
// re-encoded message attached, never coerced.
func AsRequest(m Message) (Request, *Error) {
	if req, ok := m.(Request); ok {
		return req, nil
	}
	return Request{}, narrowingError(m, "request")
}

// AsNotification narrows m to a Notification.
func AsNotification(m Message) (Notification, *Error) {
	if not, ok := m.(Notification); ok {
		return not, nil
	}
	return Notification{}, narrowingError(m, "notification")
}

// AsResponse narrows m to a Response.
func AsResponse(m Message) (Response, *Error) {
	if res, ok := m.(Response); ok {
		return res, nil
	}
	return Response{}, narrowingError(m, "response")
}

func narrowingError(m Message, want string) *Error {
	var data json.RawMessage
	if b, err := defaultCodec.Marshal(m); err == nil {
		data = b
	}
	return errInvalidRequest("the provided message is not a "+want, data)
}

// NumberID renders an integer wire id.
func NumberID(id int64) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(id, 10))
}

// StringID renders a string wire id.
func StringID(id string) json.RawMessage {
	b, _ := json.Marshal(id)
	return b
}

// validID reports whether id holds a JSON string or number. allowNull also
// accepts the null literal, which error responses use when the request id
// could not be recovered.
func validID(id json.RawMessage, allowNull bool) bool {
	if len(id) == 0 {
		return false
	}
	if isNull(id) {
		return allowNull
	}
	var v interface{}
	if json.Unmarshal(id, &v) != nil {
		return false
	}
	switch v.(type) {
	case string, float64:
		return true
	default:
		return false
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) > 0 && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// checkText rejects payload bytes that are not valid UTF-8. Both the buffer
// and the streaming paths run this before any JSON decoding, so malformed
// text surfaces with the same code everywhere.
func checkText(payload []byte) *Error {
	if !utf8.Valid(payload) {
		return errParse("payload is not valid UTF-8 text", nil)
	}
	return nil
}

// nullToAbsent folds a JSON null into an absent field, matching how every
// optional field behaves on the wire.
func nullToAbsent(raw json.RawMessage) json.RawMessage {
	if isNull(raw) {
		return nil
	}
	return raw
}
