package rpcwire

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	not := NewNotification("progress")
	assert.Equal(t, Version, not.JSONRPC)
	assert.Equal(t, "progress", not.Method)
	assert.Nil(t, not.Params)
}

func TestNotificationWithParams(t *testing.T) {
	not, err := NewNotification("progress").WithParams(map[string]int{"pct": 50})
	require.Nil(t, err)
	assert.Equal(t, `{"pct":50}`, string(not.Params))

	not = not.WithRawParams(json.RawMessage(`[1]`))
	assert.Equal(t, `[1]`, string(not.Params))
}

func TestNotificationEncode(t *testing.T) {
	not := NewNotification("shutdown")
	wire, err := not.Encode()
	require.Nil(t, err)

	payload := `{"jsonrpc":"2.0","method":"shutdown"}`
	want := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)
	assert.Equal(t, want, string(wire))
}

func TestNotificationRoundTrip(t *testing.T) {
	not, err := NewNotification("progress").WithParams([]string{"a", "b"})
	require.Nil(t, err)

	wire, encErr := not.Encode()
	require.Nil(t, encErr)

	parsed, remainder, parseErr := ParseNotification(wire)
	require.Nil(t, parseErr)
	assert.Empty(t, remainder)
	assert.Equal(t, not, parsed)
}

func TestNotificationNeverCarriesID(t *testing.T) {
	not, err := NewNotification("progress").WithParams(map[string]bool{"done": true})
	require.Nil(t, err)

	wire, encErr := not.Encode()
	require.Nil(t, encErr)
	assert.NotContains(t, string(wire), `"id"`)
}

func TestParsedNotificationStaysNotification(t *testing.T) {
	not := NewNotification("progress")
	wire, err := not.Encode()
	require.Nil(t, err)

	msg, _, parseErr := Parse(wire)
	require.Nil(t, parseErr)
	assert.Equal(t, KindNotification, msg.Kind())
}

func TestDecodeNotificationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "missing jsonrpc",
			payload: `{"method":"ping"}`,
		},
		{
			name:    "missing method",
			payload: `{"jsonrpc":"2.0"}`,
		},
		{
			name:    "method not a string",
			payload: `{"jsonrpc":"2.0","method":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(tt.payload), tt.payload)
			_, _, err := ParseNotification([]byte(input))
			require.NotNil(t, err)
			assert.Equal(t, CodeInvalidRequest, err.Code)
		})
	}
}

func TestDecodeNotificationIgnoresUnknownKeys(t *testing.T) {
	payload := `{"jsonrpc":"2.0","method":"ping","extra":true}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)

	not, _, err := ParseNotification([]byte(input))
	require.Nil(t, err)
	assert.Equal(t, "ping", not.Method)
}
