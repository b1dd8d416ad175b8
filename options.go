package rpcwire

// Option configures a Parser, StreamReader, Writer or ParamsValidator.
type Option func(*options)

type options struct {
	codec  Codec
	logger Logger
}

func newOptions(opts ...Option) options {
	o := options{
		codec:  defaultCodec,
		logger: NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCodec replaces the JSON codec used to decode and encode payloads.
func WithCodec(codec Codec) Option {
	return func(o *options) {
		if codec != nil {
			o.codec = codec
		}
	}
}

// WithLogger installs a logger for debug output. Components are silent by
// default.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
