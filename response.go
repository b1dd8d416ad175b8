package rpcwire

import "encoding/json"

// Response is a JSON-RPC response: the outcome of a request, carrying
// either a result value or an error, never both.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// NewResponse builds an empty response for the given id; chain WithResult
// or WithError to complete it. The id of a parsed Request passes through
// unchanged, or use NumberID and StringID to build one.
func NewResponse(id json.RawMessage) Response {
	return Response{JSONRPC: Version, ID: id}
}

// WithResult returns a copy of the response carrying the JSON encoding of
// v and no error.
func (r Response) WithResult(v interface{}) (Response, *Error) {
	raw, err := defaultCodec.Marshal(v)
	if err != nil {
		return r, errParse("encode result: "+err.Error(), nil)
	}
	r.Result = raw
	r.Error = nil
	return r, nil
}

// WithRawResult returns a copy of the response carrying a pre-encoded
// result and no error.
func (r Response) WithRawResult(result json.RawMessage) Response {
	r.Result = result
	r.Error = nil
	return r
}

// WithError returns a copy of the response carrying e and no result.
func (r Response) WithError(e *Error) Response {
	r.Error = e
	r.Result = nil
	return r
}

// Unwrap returns the result value, or the carried error when the peer
// reported one. A response with neither is rejected.
func (r Response) Unwrap() (json.RawMessage, *Error) {
	if len(r.Result) > 0 {
		return r.Result, nil
	}
	if r.Error != nil {
		return nil, r.Error
	}
	return nil, errInvalidRequest("response carries neither result nor error", nil)
}

// Kind reports KindResponse.
func (r Response) Kind() MessageKind { return KindResponse }

func (r Response) message() {}

// Encode renders the framed wire form of the response.
func (r Response) Encode() ([]byte, *Error) {
	return encodeWire(defaultCodec, r)
}

type rawResponse struct {
	JSONRPC *string         `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   json.RawMessage `json:"error"`
	ID      json.RawMessage `json:"id"`
}

type rawError struct {
	Code    *int            `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeResponse strictly decodes payload into a Response. Exactly one of
// result and error must be present; a null under either key counts as
// absent.
func decodeResponse(codec Codec, payload []byte) (Response, *Error) {
	if err := checkText(payload); err != nil {
		return Response{}, err
	}
	var raw rawResponse
	if err := codec.Unmarshal(payload, &raw); err != nil {
		return Response{}, errInvalidRequest(err.Error(), textData(payload))
	}
	if raw.JSONRPC == nil {
		return Response{}, errInvalidRequest(`response missing "jsonrpc" field`, textData(payload))
	}
	if !validID(raw.ID, true) {
		return Response{}, errInvalidRequest("response requires a string, number or null id", textData(payload))
	}
	result := nullToAbsent(raw.Result)
	errValue := nullToAbsent(raw.Error)
	if len(result) > 0 && len(errValue) > 0 {
		return Response{}, errInvalidRequest("response carries both result and error", textData(payload))
	}
	if len(result) == 0 && len(errValue) == 0 {
		return Response{}, errInvalidRequest("response carries neither result nor error", textData(payload))
	}
	var respErr *Error
	if len(errValue) > 0 {
		e, derr := decodeErrorObject(codec, errValue, payload)
		if derr != nil {
			return Response{}, derr
		}
		respErr = e
	}
	return Response{
		JSONRPC: *raw.JSONRPC,
		Result:  result,
		Error:   respErr,
		ID:      raw.ID,
	}, nil
}

func decodeErrorObject(codec Codec, raw, payload []byte) (*Error, *Error) {
	var re rawError
	if err := codec.Unmarshal(raw, &re); err != nil {
		return nil, errInvalidRequest(err.Error(), textData(payload))
	}
	if re.Code == nil {
		return nil, errInvalidRequest(`error object missing "code" field`, textData(payload))
	}
	if re.Message == nil {
		return nil, errInvalidRequest(`error object missing "message" field`, textData(payload))
	}
	return &Error{Code: *re.Code, Message: *re.Message, Data: nullToAbsent(re.Data)}, nil
}
