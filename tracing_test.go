package rpcwire

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.operation")
	defer span.End()

	require.NotNil(t, ctx)
	require.NotNil(t, span)
	assert.Equal(t, span, trace.SpanFromContext(ctx))
}

func TestTracedStreamReaderReadFrame(t *testing.T) {
	src := strings.NewReader("Foo: HTTP/1.1\r\nContent-Length: 5\r\n\r\nHelloEXTRA")
	r := NewTracedStreamReader(NewStreamReader(src))

	payload, n, err := r.ReadFrame(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "Hello", string(payload))
	assert.Equal(t, 41, n)
}

func TestTracedStreamReaderReadMessage(t *testing.T) {
	wire, encErr := NewRequest("ping").WithID(1).Encode()
	require.Nil(t, encErr)

	r := NewTracedStreamReader(NewStreamReader(bytes.NewReader(wire)))
	msg, n, err := r.ReadMessage(context.Background())
	require.Nil(t, err)
	assert.Equal(t, KindRequest, msg.Kind())
	assert.Equal(t, len(wire), n)
}

func TestTracedStreamReaderPropagatesError(t *testing.T) {
	r := NewTracedStreamReader(NewStreamReader(strings.NewReader("no separator\r\n")))

	_, _, err := r.ReadFrame(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidRequest, err.Code)
}

func TestTracedWriter(t *testing.T) {
	req := NewRequest("ping").WithID(2)
	wire, encErr := req.Encode()
	require.Nil(t, encErr)

	var buf bytes.Buffer
	w := NewTracedWriter(NewWriter(&buf))

	n, err := w.WriteMessage(context.Background(), req)
	require.Nil(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, wire, buf.Bytes())
}

func TestTracedWriterPropagatesError(t *testing.T) {
	w := NewTracedWriter(NewWriter(&failingWriter{err: errors.New("broken pipe")}))

	_, err := w.WriteMessage(context.Background(), NewNotification("ping"))
	require.NotNil(t, err)
	assert.Equal(t, CodeParseError, err.Code)
	assert.Contains(t, err.Message, "broken pipe")
}
