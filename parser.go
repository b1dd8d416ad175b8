package rpcwire

// Parser decodes framed messages from byte buffers. A zero-configuration
// parser backs the package-level Parse functions; build one with NewParser
// to swap the codec or to get debug logging.
type Parser struct {
	codec  Codec
	logger Logger
}

var defaultParser = &Parser{codec: defaultCodec, logger: NewNullLogger()}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	o := newOptions(opts...)
	return &Parser{codec: o.codec, logger: o.logger}
}

// Parse extracts one framed message from buf and returns it together with
// the unconsumed remainder, so pipelined frames can be parsed in sequence.
func (p *Parser) Parse(buf []byte) (Message, []byte, *Error) {
	payload, remainder, err := p.frame(buf)
	if err != nil {
		return nil, nil, p.fail(err)
	}
	msg, err := decodeMessage(p.codec, payload)
	if err != nil {
		return nil, nil, p.fail(err)
	}
	p.logger.WithFields(map[string]interface{}{
		"kind":  msg.Kind().String(),
		"bytes": len(buf) - len(remainder),
	}).Debug("message parsed")
	return msg, remainder, nil
}

// ParseRequest extracts one framed request from buf. The payload is decoded
// against the request schema directly, without classification.
func (p *Parser) ParseRequest(buf []byte) (Request, []byte, *Error) {
	payload, remainder, err := p.frame(buf)
	if err != nil {
		return Request{}, nil, p.fail(err)
	}
	req, derr := decodeRequest(p.codec, payload)
	if derr != nil {
		return Request{}, nil, p.fail(derr)
	}
	return req, remainder, nil
}

// ParseNotification extracts one framed notification from buf.
func (p *Parser) ParseNotification(buf []byte) (Notification, []byte, *Error) {
	payload, remainder, err := p.frame(buf)
	if err != nil {
		return Notification{}, nil, p.fail(err)
	}
	not, derr := decodeNotification(p.codec, payload)
	if derr != nil {
		return Notification{}, nil, p.fail(derr)
	}
	return not, remainder, nil
}

// ParseResponse extracts one framed response from buf.
func (p *Parser) ParseResponse(buf []byte) (Response, []byte, *Error) {
	payload, remainder, err := p.frame(buf)
	if err != nil {
		return Response{}, nil, p.fail(err)
	}
	res, derr := decodeResponse(p.codec, payload)
	if derr != nil {
		return Response{}, nil, p.fail(derr)
	}
	return res, remainder, nil
}

// DecodeMessage classifies and decodes a bare payload with no framing
// headers around it.
func (p *Parser) DecodeMessage(payload []byte) (Message, *Error) {
	msg, err := decodeMessage(p.codec, payload)
	if err != nil {
		return nil, p.fail(err)
	}
	return msg, nil
}

func (p *Parser) frame(buf []byte) ([]byte, []byte, *Error) {
	length, rest, err := ScanHeader(buf)
	if err != nil {
		return nil, nil, err
	}
	return ExtractPayload(length, rest)
}

// fail logs a parse failure before returning it.
func (p *Parser) fail(err *Error) *Error {
	p.logger.WithErr(err).Debug("parse failed")
	return err
}

// Parse extracts one framed message from buf using the default parser.
func Parse(buf []byte) (Message, []byte, *Error) {
	return defaultParser.Parse(buf)
}

// ParseRequest extracts one framed request from buf using the default
// parser.
func ParseRequest(buf []byte) (Request, []byte, *Error) {
	return defaultParser.ParseRequest(buf)
}

// ParseNotification extracts one framed notification from buf using the
// default parser.
func ParseNotification(buf []byte) (Notification, []byte, *Error) {
	return defaultParser.ParseNotification(buf)
}

// ParseResponse extracts one framed response from buf using the default
// parser.
func ParseResponse(buf []byte) (Response, []byte, *Error) {
	return defaultParser.ParseResponse(buf)
}

// DecodeMessage classifies and decodes a bare payload using the default
// parser.
func DecodeMessage(payload []byte) (Message, *Error) {
	return defaultParser.DecodeMessage(payload)
}
