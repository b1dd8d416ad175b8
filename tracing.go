package rpcwire

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts a new span with the given name and options.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return trace.SpanFromContext(ctx).TracerProvider().
		Tracer("github.com/shaharia-lab/rpcwire").
		Start(ctx, name, opts...)
}

// TracedStreamReader implements the decorator pattern for tracing reads.
// The context parameter carries span parentage only; cancelling it does not
// interrupt a blocked source.
type TracedStreamReader struct {
	reader *StreamReader
}

// NewTracedStreamReader creates a tracing decorator around reader.
func NewTracedStreamReader(reader *StreamReader) *TracedStreamReader {
	return &TracedStreamReader{reader: reader}
}

// ReadFrame reads one framed payload with an active span.
func (t *TracedStreamReader) ReadFrame(ctx context.Context) ([]byte, int, *Error) {
	_, span := StartSpan(ctx, "StreamReader.ReadFrame")
	defer span.End()

	payload, n, err := t.reader.ReadFrame()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)
		return nil, 0, err
	}

	span.SetAttributes(attribute.Int("consumed_bytes", n))
	return payload, n, nil
}

// ReadMessage reads one message with an active span.
func (t *TracedStreamReader) ReadMessage(ctx context.Context) (Message, int, *Error) {
	_, span := StartSpan(ctx, "StreamReader.ReadMessage")
	defer span.End()

	msg, n, err := t.reader.ReadMessage()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.String("message_kind", msg.Kind().String()),
		attribute.Int("consumed_bytes", n),
	)
	return msg, n, nil
}

// TracedWriter implements the decorator pattern for tracing writes.
type TracedWriter struct {
	writer *Writer
}

// NewTracedWriter creates a tracing decorator around writer.
func NewTracedWriter(writer *Writer) *TracedWriter {
	return &TracedWriter{writer: writer}
}

// WriteMessage frames and writes m with an active span.
func (t *TracedWriter) WriteMessage(ctx context.Context, m Message) (int, *Error) {
	_, span := StartSpan(ctx, "Writer.WriteMessage")
	defer span.End()

	n, err := t.writer.WriteMessage(m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Message)
		return n, err
	}

	span.SetAttributes(
		attribute.String("message_kind", m.Kind().String()),
		attribute.Int("written_bytes", n),
	)
	return n, nil
}
