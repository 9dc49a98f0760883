package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	msg := Envelope{
		JSONRPC: JSONRPCVersion,
	}

	if msg.JSONRPC != "2.0" {
		t.Errorf("Expected JSONRPC version to be '2.0', got %q", msg.JSONRPC)
	}
}

func TestNewRequest(t *testing.T) {
	// Test with nil params
	req, err := NewRequest("req-1", "test.method", nil)
	if err != nil {
		t.Fatalf("Expected NewRequest with nil params to succeed, got error: %v", err)
	}

	if req.JSONRPC != JSONRPCVersion {
		t.Errorf("Expected JSONRPC version to be %q, got %q", JSONRPCVersion, req.JSONRPC)
	}

	if string(req.ID) != `"req-1"` {
		t.Errorf("Expected ID to be '\"req-1\"', got %s", string(req.ID))
	}

	if req.Method != "test.method" {
		t.Errorf("Expected Method to be 'test.method', got %q", req.Method)
	}

	if len(req.Params) != 0 {
		t.Errorf("Expected Params to be empty, got %s", string(req.Params))
	}

	// Test with params
	params := map[string]interface{}{
		"key": "value",
		"num": 42,
	}

	req, err = NewRequest(7, "test.method", params)
	require.NoError(t, err)
	assert.Equal(t, "7", string(req.ID))

	var decodedParams map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Params, &decodedParams))
	assert.Equal(t, "value", decodedParams["key"])
	assert.Equal(t, float64(42), decodedParams["num"])
}

func TestNewRequestOmitsAbsentFields(t *testing.T) {
	req, err := NewRequest(1, "ping", nil)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}`, string(data))
	assert.NotContains(t, string(data), "null")
}

func TestNewRequestRequiresID(t *testing.T) {
	for _, id := range []interface{}{nil, json.RawMessage("null"), json.RawMessage("")} {
		_, err := NewRequest(id, MethodPing, nil)
		var perr *ProtocolError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindProtocol, perr.Kind)
	}
}

func TestNewRequestCompactsRawParams(t *testing.T) {
	req, err := NewRequest(1, "test", json.RawMessage("{ \"a\" : 1 }"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(req.Params))

	req, err = NewRequest(1, "test", json.RawMessage("null"))
	require.NoError(t, err)
	assert.Nil(t, req.Params)
}

func TestNewRequestMarshalFailure(t *testing.T) {
	_, err := NewRequest(1, "test", make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal params")
}

func TestNewRequestID(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNewResponse(t *testing.T) {
	resp, err := NewResponse("resp-1", map[string]interface{}{"key": "value"})
	require.NoError(t, err)

	assert.Equal(t, JSONRPCVersion, resp.JSONRPC)
	assert.Equal(t, `"resp-1"`, string(resp.ID))
	assert.Nil(t, resp.Error)
	assert.JSONEq(t, `{"key":"value"}`, string(resp.Result))
	assert.NoError(t, resp.Validate())
}

func TestResponseOmitsErrorKey(t *testing.T) {
	resp, err := NewResponse(1, map[string]string{"ok": "yes"})
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var members map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &members))
	assert.Contains(t, members, "result")
	assert.NotContains(t, members, "error")
}

func TestNewResponseNilResult(t *testing.T) {
	resp, err := NewResponse(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(resp.Result))
	assert.NoError(t, resp.Validate())
}

func TestResponseValidate(t *testing.T) {
	tests := []struct {
		name    string
		resp    Response
		wantErr bool
	}{
		{"result only", Response{Result: json.RawMessage(`1`)}, false},
		{"error only", Response{Error: &ErrorData{Code: InternalError, Message: "x"}}, true},
		{"both", Response{Result: json.RawMessage(`1`), Error: &ErrorData{Code: InternalError}}, true},
		{"neither", Response{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				var perr *ProtocolError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, KindProtocol, perr.Kind)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	data, err := NewErrorData(MethodNotFound, "Method not found", map[string]interface{}{"details": "More information"})
	require.NoError(t, err)

	resp, err := NewErrorResponse("err-2", data)
	require.NoError(t, err)

	assert.Equal(t, JSONRPCVersion, resp.JSONRPC)
	assert.Equal(t, `"err-2"`, string(resp.ID))
	assert.Equal(t, MethodNotFound, resp.Error.Code)
	assert.Equal(t, "Method not found", resp.Error.Message)
	assert.JSONEq(t, `{"details":"More information"}`, string(resp.Error.Data))
}

func TestErrorDataOmitsData(t *testing.T) {
	data, err := NewErrorData(InvalidRequest, "Invalid request", nil)
	require.NoError(t, err)
	assert.Nil(t, data.Data)

	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":-32600,"message":"Invalid request"}`, string(encoded))
	assert.Equal(t, "rpc error: code = -32600 desc = Invalid request", data.Error())
}

func TestNewNotification(t *testing.T) {
	// Test with nil params
	notif, err := NewNotification("test.notification", nil)
	if err != nil {
		t.Fatalf("Expected NewNotification with nil params to succeed, got error: %v", err)
	}

	if notif.JSONRPC != JSONRPCVersion {
		t.Errorf("Expected JSONRPC version to be %q, got %q", JSONRPCVersion, notif.JSONRPC)
	}

	if notif.Method != "test.notification" {
		t.Errorf("Expected Method to be 'test.notification', got %q", notif.Method)
	}

	if len(notif.Params) != 0 {
		t.Errorf("Expected Params to be empty, got %s", string(notif.Params))
	}

	notif, err = NewNotification("test.notification", map[string]interface{}{"key": "value"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"value"}`, string(notif.Params))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, ErrorCode(-32700), ParseError)
	assert.Equal(t, ErrorCode(-32600), InvalidRequest)
	assert.Equal(t, ErrorCode(-32601), MethodNotFound)
	assert.Equal(t, ErrorCode(-32602), InvalidParams)
	assert.Equal(t, ErrorCode(-32603), InternalError)
}
