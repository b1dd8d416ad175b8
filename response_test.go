package rpcwire

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWithResult(t *testing.T) {
	res, err := NewResponse(NumberID(1)).WithResult(map[string]string{"status": "ok"})
	require.Nil(t, err)

	assert.Equal(t, Version, res.JSONRPC)
	assert.Equal(t, "1", string(res.ID))
	assert.Equal(t, `{"status":"ok"}`, string(res.Result))
	assert.Nil(t, res.Error)
}

func TestResponseWithError(t *testing.T) {
	res := NewResponse(StringID("r-9")).WithError(&Error{Code: -32601, Message: "method not found"})

	assert.Nil(t, res.Result)
	require.NotNil(t, res.Error)
	assert.Equal(t, -32601, res.Error.Code)
}

func TestResponseBuildersAreExclusive(t *testing.T) {
	res, err := NewResponse(NumberID(1)).WithResult("ok")
	require.Nil(t, err)

	res = res.WithError(&Error{Code: 1, Message: "boom"})
	assert.Nil(t, res.Result)
	require.NotNil(t, res.Error)

	res, err = res.WithResult("ok again")
	require.Nil(t, err)
	assert.Nil(t, res.Error)
	assert.Equal(t, `"ok again"`, string(res.Result))

	res = res.WithRawResult(json.RawMessage("42"))
	assert.Nil(t, res.Error)
	assert.Equal(t, "42", string(res.Result))
}

func TestResponseUnwrap(t *testing.T) {
	t.Run("result wins", func(t *testing.T) {
		res, err := NewResponse(NumberID(1)).WithResult(true)
		require.Nil(t, err)

		result, uerr := res.Unwrap()
		require.Nil(t, uerr)
		assert.Equal(t, "true", string(result))
	})

	t.Run("error is returned", func(t *testing.T) {
		wireErr := &Error{Code: -32601, Message: "method not found"}
		res := NewResponse(NumberID(1)).WithError(wireErr)

		result, uerr := res.Unwrap()
		assert.Nil(t, result)
		assert.Equal(t, wireErr, uerr)
	})

	t.Run("neither is invalid", func(t *testing.T) {
		res := NewResponse(NumberID(1))

		_, uerr := res.Unwrap()
		require.NotNil(t, uerr)
		assert.Equal(t, CodeInvalidRequest, uerr.Code)
	})
}

func TestResponseEncode(t *testing.T) {
	res, err := NewResponse(NumberID(1)).WithResult("pong")
	require.Nil(t, err)

	wire, encErr := res.Encode()
	require.Nil(t, encErr)

	payload := `{"jsonrpc":"2.0","result":"pong","id":1}`
	want := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)
	assert.Equal(t, want, string(wire))
}

func TestResponseRoundTrip(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		res, err := NewResponse(StringID("r-1")).WithResult([]int{1, 2})
		require.Nil(t, err)

		wire, encErr := res.Encode()
		require.Nil(t, encErr)

		parsed, remainder, parseErr := ParseResponse(wire)
		require.Nil(t, parseErr)
		assert.Empty(t, remainder)
		assert.Equal(t, res, parsed)
	})

	t.Run("error with data", func(t *testing.T) {
		res := NewResponse(NumberID(3)).WithError(&Error{
			Code:    -32000,
			Message: "upstream failed",
			Data:    json.RawMessage(`{"attempt":2}`),
		})

		wire, encErr := res.Encode()
		require.Nil(t, encErr)

		parsed, _, parseErr := ParseResponse(wire)
		require.Nil(t, parseErr)
		assert.Equal(t, res, parsed)
	})
}

func TestParseResponseAllowsNullID(t *testing.T) {
	payload := `{"jsonrpc":"2.0","error":{"code":-32700,"message":"parse error"},"id":null}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)

	res, _, err := ParseResponse([]byte(input))
	require.Nil(t, err)
	assert.Equal(t, "null", string(res.ID))
	require.NotNil(t, res.Error)
	assert.Equal(t, CodeParseError, res.Error.Code)
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "missing jsonrpc",
			payload: `{"result":1,"id":1}`,
		},
		{
			name:    "missing id",
			payload: `{"jsonrpc":"2.0","result":1}`,
		},
		{
			name:    "boolean id",
			payload: `{"jsonrpc":"2.0","result":1,"id":true}`,
		},
		{
			name:    "both result and error",
			payload: `{"jsonrpc":"2.0","result":1,"error":{"code":1,"message":"x"},"id":1}`,
		},
		{
			name:    "neither result nor error",
			payload: `{"jsonrpc":"2.0","id":1}`,
		},
		{
			name:    "null result and null error count as absent",
			payload: `{"jsonrpc":"2.0","result":null,"error":null,"id":1}`,
		},
		{
			name:    "error is not an object",
			payload: `{"jsonrpc":"2.0","error":"boom","id":1}`,
		},
		{
			name:    "error code is not an integer",
			payload: `{"jsonrpc":"2.0","error":{"code":"x","message":"y"},"id":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(tt.payload), tt.payload)
			_, _, err := ParseResponse([]byte(input))
			require.NotNil(t, err)
			assert.Equal(t, CodeInvalidRequest, err.Code)
		})
	}
}

func TestDecodeResponseSquashesNullResult(t *testing.T) {
	payload := `{"jsonrpc":"2.0","result":null,"error":{"code":1,"message":"x"},"id":1}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(payload), payload)

	res, _, err := ParseResponse([]byte(input))
	require.Nil(t, err)
	assert.Nil(t, res.Result)
	require.NotNil(t, res.Error)
}
