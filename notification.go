package rpcwire

import "encoding/json"

// Notification is a JSON-RPC notification: a method invocation with no
// reply expected. It never carries an id; an id key on the wire turns the
// message into a request.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewNotification builds a notification for the given method.
func NewNotification(method string) Notification {
	return Notification{JSONRPC: Version, Method: method}
}

// WithParams returns a copy of the notification with params set to the
// JSON encoding of v.
func (n Notification) WithParams(v interface{}) (Notification, *Error) {
	raw, err := defaultCodec.Marshal(v)
	if err != nil {
		return n, errParse("encode params: "+err.Error(), nil)
	}
	n.Params = raw
	return n, nil
}

// WithRawParams returns a copy of the notification with pre-encoded params.
func (n Notification) WithRawParams(params json.RawMessage) Notification {
	n.Params = params
	return n
}

// Kind reports KindNotification.
func (n Notification) Kind() MessageKind { return KindNotification }

func (n Notification) message() {}

// Encode renders the framed wire form of the notification.
func (n Notification) Encode() ([]byte, *Error) {
	return encodeWire(defaultCodec, n)
}

type rawNotification struct {
	JSONRPC *string         `json:"jsonrpc"`
	Method  *string         `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// decodeNotification strictly decodes payload into a Notification. Unknown
// keys are ignored, so a payload carrying an id decodes fine here; routing
// on the id is the classifier's job.
func decodeNotification(codec Codec, payload []byte) (Notification, *Error) {
	if err := checkText(payload); err != nil {
		return Notification{}, err
	}
	var raw rawNotification
	if err := codec.Unmarshal(payload, &raw); err != nil {
		return Notification{}, errInvalidRequest(err.Error(), textData(payload))
	}
	if raw.JSONRPC == nil {
		return Notification{}, errInvalidRequest(`notification missing "jsonrpc" field`, textData(payload))
	}
	if raw.Method == nil {
		return Notification{}, errInvalidRequest(`notification missing "method" field`, textData(payload))
	}
	return Notification{
		JSONRPC: *raw.JSONRPC,
		Method:  *raw.Method,
		Params:  nullToAbsent(raw.Params),
	}, nil
}
