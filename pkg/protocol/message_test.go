package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, id interface{}, method string, params interface{}) *Request {
	t.Helper()
	req, err := NewRequest(id, method, params)
	require.NoError(t, err)
	return req
}

func TestParseMessageVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind MessageKind
	}{
		{"request", `{"jsonrpc":"2.0","id":1,"method":"ping"}`, KindRequest},
		{"request with string id", `{"jsonrpc":"2.0","id":"a","method":"prompts/list","params":{}}`, KindRequest},
		{"notification", `{"jsonrpc":"2.0","method":"notifications/initialized"}`, KindNotification},
		{"notification with null id", `{"jsonrpc":"2.0","id":null,"method":"notifications/initialized"}`, KindNotification},
		{"response", `{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`, KindResponse},
		{"response with null result", `{"jsonrpc":"2.0","id":1,"result":null}`, KindResponse},
		{"error", `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"foo"}}`, KindError},
		{"error without id", `{"jsonrpc":"2.0","error":{"code":-32700,"message":"bad"}}`, KindError},
		{"method wins over result", `{"jsonrpc":"2.0","id":1,"method":"x","result":1}`, KindRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, msg.Kind())
		})
	}
}

func TestParseMessageErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind ErrorKind
	}{
		{"malformed json", `{"jsonrpc":"2.0","id":1,"method"`, KindParse},
		{"garbage", `not json`, KindParse},
		{"empty", ``, KindParse},
		{"array", `[1,2]`, KindProtocol},
		{"scalar", `42`, KindProtocol},
		{"missing version", `{"id":1,"method":"ping"}`, KindProtocol},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`, KindProtocol},
		{"result and error", `{"jsonrpc":"2.0","id":1,"result":1,"error":{"code":-32603,"message":"x"}}`, KindProtocol},
		{"no discriminator", `{"jsonrpc":"2.0","id":1}`, KindProtocol},
		{"method not a string", `{"jsonrpc":"2.0","id":1,"method":5}`, KindProtocol},
		{"error not an object", `{"jsonrpc":"2.0","id":1,"error":"boom"}`, KindProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tt.data))
			assert.Nil(t, msg)
			require.Error(t, err)

			var perr *ProtocolError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	notif, err := NewNotification(MethodPromptsListChanged, nil)
	require.NoError(t, err)
	resp, err := NewResponse("r-1", NewInitializeResult(Implementation{Name: "srv", Version: "1.0"}, ServerCapabilities{}.WithPrompts(true)))
	require.NoError(t, err)
	errResp, err := NewErrorResponse(3, NewMethodNotImplementedError("foo").ErrorData())
	require.NoError(t, err)
	dataErr, err := NewErrorData(InvalidParams, "bad", map[string]string{"field": "uri"})
	require.NoError(t, err)
	errWithData, err := NewErrorResponse(nil, dataErr)
	require.NoError(t, err)

	messages := []Message{
		mustRequest(t, 1, MethodPing, nil),
		mustRequest(t, "abc", MethodGetPrompt, map[string]interface{}{"name": "greet"}),
		notif,
		resp,
		errResp,
		errWithData,
	}

	for _, msg := range messages {
		t.Run(string(msg.Kind()), func(t *testing.T) {
			data, err := MarshalMessage(msg)
			require.NoError(t, err)

			decoded, err := ParseMessage(data)
			require.NoError(t, err)
			assert.Equal(t, msg, decoded)
		})
	}
}

func TestMarshalMessageNil(t *testing.T) {
	data, err := MarshalMessage(Nil)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNilMessage)
	assert.True(t, IsNil(Nil))
	assert.Equal(t, KindNil, Nil.Kind())
	assert.False(t, IsNil(mustRequest(t, 1, MethodPing, nil)))
}

func TestMarshalMessageRejectsInvalidResponse(t *testing.T) {
	resp := &Response{
		Envelope: Envelope{JSONRPC: JSONRPCVersion},
		ID:       json.RawMessage(`1`),
		Result:   json.RawMessage(`{}`),
		Error:    &ErrorData{Code: InternalError, Message: "x"},
	}

	_, err := MarshalMessage(resp)
	assert.Error(t, err)
}

func TestMarshalMessageRejectsShapesOfOtherVariants(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"request without id", &Request{Envelope: Envelope{JSONRPC: JSONRPCVersion}, Method: MethodPing}},
		{"request with null id", &Request{Envelope: Envelope{JSONRPC: JSONRPCVersion}, ID: json.RawMessage("null"), Method: MethodPing}},
		{"response carrying only an error", &Response{
			Envelope: Envelope{JSONRPC: JSONRPCVersion},
			ID:       json.RawMessage(`1`),
			Error:    &ErrorData{Code: InternalError, Message: "x"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalMessage(tt.msg)
			assert.Nil(t, data)
			var perr *ProtocolError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, KindProtocol, perr.Kind)
		})
	}
}

func TestParseMessageNormalizesNullParams(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"jsonrpc":"2.0","id":1,"method":"ping","params":null}`))
	require.NoError(t, err)

	req := msg.(*Request)
	assert.Nil(t, req.Params)

	data, err := MarshalMessage(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "params")
}

func TestPeekID(t *testing.T) {
	assert.Equal(t, `7`, string(PeekID([]byte(`{"id":7,"method":5}`))))
	assert.Nil(t, PeekID([]byte(`{"method":"x"}`)))
	assert.Nil(t, PeekID([]byte(`{"id":null}`)))
	assert.Nil(t, PeekID([]byte(`{broken`)))
}

func TestIsRequest(t *testing.T) {
	req := mustRequest(t, "req-1", "test.method", json.RawMessage(`{}`))
	data, err := json.Marshal(req)
	require.NoError(t, err)

	if !IsRequest(data) {
		t.Error("Expected IsRequest to return true for valid request")
	}

	// Invalid JSON
	if IsRequest([]byte(`{"jsonrpc": "2.0", "id": 1, "method"`)) {
		t.Error("Expected IsRequest to return false for invalid JSON")
	}

	// Missing ID
	if IsRequest([]byte(`{"jsonrpc": "2.0", "method": "test"}`)) {
		t.Error("Expected IsRequest to return false for request without ID")
	}

	// Wrong JSON-RPC version
	if IsRequest([]byte(`{"jsonrpc": "1.0", "id": 1, "method": "test"}`)) {
		t.Error("Expected IsRequest to return false for request with wrong JSON-RPC version")
	}
}

func TestIsResponse(t *testing.T) {
	assert.True(t, IsResponse([]byte(`{"jsonrpc":"2.0","id":1,"result":{}}`)))
	assert.True(t, IsResponse([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"x"}}`)))
	assert.False(t, IsResponse([]byte(`{"jsonrpc":"2.0","id":1,"method":"x"}`)))
}

func TestIsNotification(t *testing.T) {
	assert.True(t, IsNotification([]byte(`{"jsonrpc":"2.0","method":"x"}`)))
	assert.False(t, IsNotification([]byte(`{"jsonrpc":"2.0","id":1,"method":"x"}`)))
}
