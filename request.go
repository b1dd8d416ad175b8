package rpcwire

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RequestIDGenerator produces wire ids for requests built without an
// explicit one. It defaults to random UUIDs; set it to nil to fall back to
// the fixed id 0.
var RequestIDGenerator = func() string { return uuid.NewString() }

// Request is a JSON-RPC request: a method invocation the peer must answer,
// correlated by a non-null string or number id.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds a request for the given method. The id comes from
// RequestIDGenerator when one is installed.
func NewRequest(method string) Request {
	id := NumberID(0)
	if RequestIDGenerator != nil {
		id = StringID(RequestIDGenerator())
	}
	return Request{JSONRPC: Version, ID: id, Method: method}
}

// WithID returns a copy of the request with a numeric id.
func (r Request) WithID(id int64) Request {
	r.ID = NumberID(id)
	return r
}

// WithStringID returns a copy of the request with a string id.
func (r Request) WithStringID(id string) Request {
	r.ID = StringID(id)
	return r
}

// WithRawID returns a copy of the request with a caller-supplied wire id.
func (r Request) WithRawID(id json.RawMessage) Request {
	r.ID = id
	return r
}

// WithParams returns a copy of the request with params set to the JSON
// encoding of v.
func (r Request) WithParams(v interface{}) (Request, *Error) {
	raw, err := defaultCodec.Marshal(v)
	if err != nil {
		return r, errParse("encode params: "+err.Error(), nil)
	}
	r.Params = raw
	return r, nil
}

// WithRawParams returns a copy of the request with pre-encoded params. The
// bytes end up on the wire in compact form.
func (r Request) WithRawParams(params json.RawMessage) Request {
	r.Params = params
	return r
}

// Kind reports KindRequest.
func (r Request) Kind() MessageKind { return KindRequest }

func (r Request) message() {}

// Encode renders the framed wire form of the request.
func (r Request) Encode() ([]byte, *Error) {
	return encodeWire(defaultCodec, r)
}

// Prepare returns the request id together with the framed wire form: the
// two pieces a caller needs to transmit the request and later match the
// response to it.
func (r Request) Prepare() (json.RawMessage, []byte, *Error) {
	wire, err := r.Encode()
	if err != nil {
		return nil, nil, err
	}
	return r.ID, wire, nil
}

type rawRequest struct {
	JSONRPC *string         `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  *string         `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// decodeRequest strictly decodes payload into a Request.
func decodeRequest(codec Codec, payload []byte) (Request, *Error) {
	if err := checkText(payload); err != nil {
		return Request{}, err
	}
	var raw rawRequest
	if err := codec.Unmarshal(payload, &raw); err != nil {
		return Request{}, errInvalidRequest(err.Error(), textData(payload))
	}
	if raw.JSONRPC == nil {
		return Request{}, errInvalidRequest(`request missing "jsonrpc" field`, textData(payload))
	}
	if raw.Method == nil {
		return Request{}, errInvalidRequest(`request missing "method" field`, textData(payload))
	}
	if !validID(raw.ID, false) {
		return Request{}, errInvalidRequest("request requires a non-null string or number id", textData(payload))
	}
	return Request{
		JSONRPC: *raw.JSONRPC,
		ID:      raw.ID,
		Method:  *raw.Method,
		Params:  nullToAbsent(raw.Params),
	}, nil
}
